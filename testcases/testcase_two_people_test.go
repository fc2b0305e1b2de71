package testcases

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/weedbox/holdemtable"
)

func TestTableGame_TwoPeople_BlindsAndButton(t *testing.T) {
	te := NewTableEngine(t, NewDefaultTableMeta())
	JoinPlayers(t, te, NewJoinPlayers(10000, "Fred", "Jeffrey")...)

	// hand 1: Fred has the button and posts the small blind
	table := te.GetTable()
	DebugPrintTable(t, "hand 1 opened", table)
	assert.Equal(t, 0, table.State.DealerSeat)
	assert.Equal(t, 0, table.State.SBSeat)
	assert.Equal(t, 1, table.State.BBSeat)
	assert.Equal(t, "Fred", FindCurrentPlayerID(table))
	assert.Equal(t, []string{holdemtable.Position_Dealer, holdemtable.Position_SB}, table.FindPlayer("Fred").Positions)
	assert.Equal(t, []string{holdemtable.Position_BB}, table.FindPlayer("Jeffrey").Positions)

	_, err := te.PlayerFold("Fred")
	require.NoError(t, err)

	table = te.GetTable()
	assert.Equal(t, int64(9000), table.FindPlayer("Fred").Chips)
	assert.Equal(t, int64(11000), table.FindPlayer("Jeffrey").Chips)

	// hand 2: the button moves to Jeffrey
	table = FinishSettlement(t, te)
	DebugPrintTable(t, "hand 2 opened", table)
	require.Equal(t, 2, table.State.GameCount)
	assert.Equal(t, 1, table.State.DealerSeat)
	assert.Equal(t, 1, table.State.SBSeat)
	assert.Equal(t, 0, table.State.BBSeat)
	assert.Equal(t, "Jeffrey", FindCurrentPlayerID(table))

	_, err = te.PlayerFold("Jeffrey")
	require.NoError(t, err)

	table = te.GetTable()
	assert.Equal(t, int64(10000), table.FindPlayer("Fred").Chips)
	assert.Equal(t, int64(10000), table.FindPlayer("Jeffrey").Chips)

	// hand 3: back to Fred
	table = FinishSettlement(t, te)
	require.Equal(t, 3, table.State.GameCount)
	assert.Equal(t, 0, table.State.DealerSeat)
	assert.Equal(t, "Fred", FindCurrentPlayerID(table))
	assert.Equal(t, int64(20000), TotalChips(table))
}

func TestTableGame_TwoPeople_TurnOrderAfterFlop(t *testing.T) {
	te := NewTableEngine(t, NewDefaultTableMeta())
	JoinPlayers(t, te, NewJoinPlayers(10000, "Fred", "Jeffrey")...)

	_, err := te.PlayerCall("Fred")
	require.NoError(t, err)

	// the big blind keeps the option after a limp
	table := te.GetTable()
	assert.Equal(t, holdemtable.BettingRound_PreFlop, table.State.BettingRound)
	assert.Equal(t, "Jeffrey", FindCurrentPlayerID(table))

	_, err = te.PlayerCheck("Jeffrey")
	require.NoError(t, err)

	// out of position acts first after the flop
	table = te.GetTable()
	assert.Equal(t, holdemtable.BettingRound_Flop, table.State.BettingRound)
	assert.Len(t, table.State.CommunityCards, 3)
	assert.Equal(t, int64(4000), table.State.Pot)
	assert.Equal(t, int64(0), table.State.MinBet)
	assert.Equal(t, "Jeffrey", FindCurrentPlayerID(table))

	_, err = te.PlayerCheck("Fred")
	assert.ErrorIs(t, err, holdemtable.ErrNotYourTurn)

	_, err = te.PlayerCall("Jeffrey")
	require.NoError(t, err)
	assert.Equal(t, "Fred", FindCurrentPlayerID(te.GetTable()))
}
