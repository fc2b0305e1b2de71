package testcases

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/weedbox/holdemtable"
)

func TestTableGame_Turn_BetTakesItDown(t *testing.T) {
	actions := make([]holdemtable.TablePlayerGameAction, 0)
	te := NewTableEngine(t, NewDefaultTableMeta(), holdemtable.WithCallbacks(&holdemtable.TableEngineCallbacks{
		OnGamePlayerActionUpdated: func(action holdemtable.TablePlayerGameAction) {
			actions = append(actions, action)
		},
	}))
	JoinPlayers(t, te, NewJoinPlayers(10000, "Fred", "Jeffrey")...)

	_, err := te.PlayerCall("Fred")
	require.NoError(t, err)
	_, err = te.PlayerCheck("Jeffrey")
	require.NoError(t, err)

	// flop checks through
	_, err = te.PlayerCheck("Jeffrey")
	require.NoError(t, err)
	_, err = te.PlayerCheck("Fred")
	require.NoError(t, err)

	table := te.GetTable()
	assert.Equal(t, holdemtable.BettingRound_Turn, table.State.BettingRound)
	assert.Len(t, table.State.CommunityCards, 4)
	assert.Equal(t, "Jeffrey", FindCurrentPlayerID(table))

	_, err = te.PlayerRaise("Jeffrey", 3000)
	require.NoError(t, err)
	_, err = te.PlayerFold("Fred")
	require.NoError(t, err)

	table = te.GetTable()
	DebugPrintTable(t, "turn settled", table)
	assert.Equal(t, holdemtable.TableStateStatus_TableGameSettled, table.State.Status)
	assert.Len(t, table.State.CommunityCards, 4)
	assert.True(t, table.State.Result.IsFoldOut)
	assert.Equal(t, int64(8000), table.FindPlayer("Fred").Chips)
	assert.Equal(t, int64(12000), table.FindPlayer("Jeffrey").Chips)

	players := make(map[string]*holdemtable.TableGamePlayerResult)
	for _, r := range table.State.Result.Players {
		players[r.PlayerID] = r
	}
	require.Contains(t, players, "Fred")
	require.Contains(t, players, "Jeffrey")
	assert.Equal(t, int64(2000), players["Fred"].Bet)
	assert.Equal(t, int64(0), players["Fred"].Won)
	assert.Equal(t, int64(5000), players["Jeffrey"].Bet)
	assert.Equal(t, int64(7000), players["Jeffrey"].Won)

	// callbacks run before the engine call returns
	require.Len(t, actions, 6)
	assert.Equal(t, holdemtable.BettingRound_PreFlop, actions[0].Round)
	assert.Equal(t, holdemtable.WagerAction_Call, actions[0].Action)
	assert.Equal(t, holdemtable.BettingRound_Turn, actions[4].Round)
	assert.Equal(t, holdemtable.WagerAction_Raise, actions[4].Action)
	assert.Equal(t, int64(3000), actions[4].Chips)
	assert.Equal(t, holdemtable.WagerAction_Fold, actions[5].Action)
}
