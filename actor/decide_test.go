package actor

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/weedbox/holdemtable"
)

func newDecisionTable(chips, currentBet, minBet int64) *holdemtable.Table {
	return &holdemtable.Table{
		Meta: holdemtable.TableMeta{SmallBlind: 1000, BigBlind: 2000},
		State: &holdemtable.TableState{
			Status:          holdemtable.TableStateStatus_TableGamePlaying,
			MinBet:          minBet,
			CurrentPlayerID: "Jeffrey",
			PlayerStates: []*holdemtable.TablePlayerState{
				{PlayerID: "Jeffrey", Chips: chips, CurrentBet: currentBet, IsParticipated: true, IsActive: true},
				{PlayerID: "Fred", Chips: 0, IsParticipated: true, IsActive: false, IsFolded: true},
			},
		},
	}
}

func TestLegalActions(t *testing.T) {
	table := newDecisionTable(9000, 1000, 2000)
	assert.Equal(t, []string{"fold", "call", "raise", "allin"}, LegalActions(table, table.FindPlayer("Jeffrey")))

	table = newDecisionTable(8000, 2000, 2000)
	assert.Equal(t, []string{"check", "raise", "allin"}, LegalActions(table, table.FindPlayer("Jeffrey")))

	table = newDecisionTable(500, 1000, 2000)
	assert.Equal(t, []string{"fold", "call", "allin"}, LegalActions(table, table.FindPlayer("Jeffrey")))

	assert.Empty(t, LegalActions(table, table.FindPlayer("Fred")))
	assert.Empty(t, LegalActions(table, nil))
}

func TestDecideMove_AlwaysLegal(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	seen := make(map[string]bool)

	for i := 0; i < 500; i++ {
		table := newDecisionTable(9000, 1000, 2000)
		action, chips := DecideMove(table, "Jeffrey", r)
		seen[action] = true

		assert.Contains(t, LegalActions(table, table.FindPlayer("Jeffrey")), action)
		if action == holdemtable.WagerAction_Raise {
			assert.Greater(t, chips, table.State.MinBet)
			assert.LessOrEqual(t, chips, int64(10000))
		} else {
			assert.Zero(t, chips)
		}
	}

	assert.Len(t, seen, 4)

	action, _ := DecideMove(newDecisionTable(9000, 1000, 2000), "Fred", r)
	assert.Empty(t, action)
}
