package seat_manager

import (
	"errors"
)

var (
	ErrNotEnoughSeats        = errors.New("seat manager: no enough seats")
	ErrPlayerNotFound        = errors.New("seat manager: player not found")
	ErrPlayerIsAlreadyExist  = errors.New("seat manager: player is already exist")
	ErrUnavailableSeat       = errors.New("seat manager: seat is not available")
	ErrSeatAlreadyIsTaken    = errors.New("seat manager: seat is already taken")
	ErrUnableToInitPositions = errors.New("seat manager: unable to init positions")
)

type SeatManager interface {
	AssignSeat(playerID string) (int, error)
	AssignSeatAt(playerID string, seatID int) error
	RemoveSeat(playerID string) error
	GetSeatID(playerID string) (int, error)
	UpdatePlayerHasChips(playerID string, hasChips bool) error
	InitPositions(dealerPosition int) (*Positions, error)

	Seats() map[int]*SeatPlayer
	EmptySeatCount() int
	ListSeatedPlayers() []*SeatPlayer
	ListActivePlayers() []*SeatPlayer
	CurrentDealerSeatID() int
	CurrentSBSeatID() int
	CurrentBBSeatID() int
}

type SeatPlayer struct {
	ID       string `json:"id"`
	SeatID   int    `json:"seat_id"`
	HasChips bool   `json:"has_chips"`
}

func (sp *SeatPlayer) Active() bool {
	return sp.HasChips
}

// Positions describes the button and blinds of one hand.
type Positions struct {
	DealerPosition int           `json:"dealer_position"` // index into the seat-ordered active players
	DealerSeatID   int           `json:"dealer_seat_id"`
	SBSeatID       int           `json:"sb_seat_id"`
	BBSeatID       int           `json:"bb_seat_id"`
	FromDealer     []*SeatPlayer `json:"from_dealer"` // active players starting at the dealer
}

func NewSeatManager(maxSeats int) SeatManager {
	seats := make(map[int]*SeatPlayer)
	for i := 0; i < maxSeats; i++ {
		seats[i] = nil
	}

	return &seatManager{
		maxSeat:      maxSeats,
		seats:        seats,
		dealerSeatID: UnsetSeatID,
		sbSeatID:     UnsetSeatID,
		bbSeatID:     UnsetSeatID,
	}
}
