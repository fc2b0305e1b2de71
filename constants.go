package holdemtable

const (
	// General
	UnsetValue = -1

	// Table
	DefaultTableMaxSeatCount = 9
	DefaultActionTime        = 20 // seconds
	DefaultNextHandDelay     = 5  // seconds
	HoleCardsCount           = 2

	// RoomType
	RoomType_Degen    = "degen"
	RoomType_Green    = "green"
	RoomType_Morpheus = "morpheus"

	// Position
	Position_Unknown = "unknown"
	Position_Dealer  = "dealer"
	Position_SB      = "sb"
	Position_BB      = "bb"
	Position_UG      = "ug"
	Position_UG2     = "ug2"
	Position_MP      = "mp"
	Position_MP2     = "mp2"
	Position_HJ      = "hj"
	Position_CO      = "co"

	// Wager Action
	WagerAction_Fold  = "fold"
	WagerAction_Check = "check"
	WagerAction_Call  = "call"
	WagerAction_Raise = "raise"
	WagerAction_AllIn = "allin"

	// Betting Round
	BettingRound_PreFlop  = "PRE-FLOP"
	BettingRound_Flop     = "FLOP"
	BettingRound_Turn     = "TURN"
	BettingRound_River    = "RIVER"
	BettingRound_Showdown = "SHOWDOWN"
)
