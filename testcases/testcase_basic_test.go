package testcases

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/weedbox/holdemtable"
	"github.com/weedbox/holdemtable/actor"
)

func assertCardsUnique(t *testing.T, table *holdemtable.Table) {
	seen := make(map[holdemtable.Card]string)
	check := func(owner string, cards []holdemtable.Card) {
		for _, c := range cards {
			if prev, ok := seen[c]; ok {
				t.Errorf("hand %d: %s dealt to both %s and %s", table.State.GameCount, c, prev, owner)
			}
			seen[c] = owner
		}
	}

	check("board", table.State.CommunityCards)
	for _, p := range table.State.PlayerStates {
		check(p.PlayerID, p.HoleCards)
	}
}

func TestTableGame_Basic_RandomPlayConservesChips(t *testing.T) {
	r := rand.New(rand.NewSource(20231018))
	te := NewTableEngine(t, NewDefaultTableMeta(), holdemtable.WithRandomSource(rand.New(rand.NewSource(7))))

	players := NewJoinPlayers(10000, "Fred", "Jeffrey", "Chuck", "Wendy")
	JoinPlayers(t, te, players...)
	total := int64(10000 * len(players))

	hands := 0
	for steps := 0; steps < 5000 && hands < 20; steps++ {
		table := te.GetTable()
		require.Equal(t, total, TotalChips(table), "chips are conserved")
		assertCardsUnique(t, table)

		switch table.State.Status {
		case holdemtable.TableStateStatus_TableGamePlaying:
			playerID := FindCurrentPlayerID(table)
			require.NotEmpty(t, playerID, "someone holds the turn")

			current := table.FindPlayer(playerID)
			require.True(t, table.CanAct(current), fmt.Sprintf("%s cannot act", playerID))
			for _, p := range table.State.PlayerStates {
				if p.PlayerID != playerID {
					_, err := te.PlayerCheck(p.PlayerID)
					require.ErrorIs(t, err, holdemtable.ErrNotYourTurn, p.PlayerID)
				}
			}

			action, chips := actor.DecideMove(table, playerID, r)
			_, err := te.PlayerAction(playerID, action, chips)
			require.NoError(t, err, fmt.Sprintf("%s %s %d", playerID, action, chips))

		case holdemtable.TableStateStatus_TableGameSettled:
			require.NotNil(t, table.State.Result)
			assert.Equal(t, int64(0), table.State.Pot)

			var won int64
			for _, pot := range table.State.Result.Pots {
				for _, w := range pot.Winners {
					won += w.Chips
				}
			}
			var bet int64
			for _, pr := range table.State.Result.Players {
				bet += pr.Bet
			}
			assert.Equal(t, bet, won, "hand %d pays out what was bet", table.State.GameCount)

			hands++
			FinishSettlement(t, te)

		case holdemtable.TableStateStatus_TableGameStandby:
			// one player holds every chip
			require.Len(t, table.AlivePlayers(), 1)
			hands = 20

		default:
			t.Fatalf("unexpected status %s", table.State.Status)
		}
	}

	table := te.GetTable()
	logJSON(t, "final table", table.GetJSON)
	assert.Equal(t, total, TotalChips(table))
	assert.GreaterOrEqual(t, table.State.GameCount, 2)
}
