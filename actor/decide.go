package actor

import (
	"math/rand"

	"github.com/weedbox/holdemtable"
)

type ActionProbability struct {
	Action string
	Weight float64
}

var (
	actionProbabilities = []ActionProbability{
		{Action: holdemtable.WagerAction_Check, Weight: 0.3},
		{Action: holdemtable.WagerAction_Call, Weight: 0.3},
		{Action: holdemtable.WagerAction_Fold, Weight: 0.15},
		{Action: holdemtable.WagerAction_AllIn, Weight: 0.05},
		{Action: holdemtable.WagerAction_Raise, Weight: 0.2},
	}
)

/*
LegalActions 列出玩家當前可執行的動作
  - 需要補注時可 fold / call，否則可 check
  - 籌碼足以超過跟注額時可 raise
  - allin 永遠可用
*/
func LegalActions(table *holdemtable.Table, player *holdemtable.TablePlayerState) []string {
	if table == nil || player == nil || !table.CanAct(player) {
		return []string{}
	}

	actions := make([]string, 0, 4)
	if player.CurrentBet < table.State.MinBet {
		actions = append(actions, holdemtable.WagerAction_Fold, holdemtable.WagerAction_Call)
	} else {
		actions = append(actions, holdemtable.WagerAction_Check)
	}

	if player.Chips+player.CurrentBet > table.State.MinBet {
		actions = append(actions, holdemtable.WagerAction_Raise)
	}

	return append(actions, holdemtable.WagerAction_AllIn)
}

// DecideMove picks a weighted random legal move; chips is the raise target for raise.
func DecideMove(table *holdemtable.Table, playerID string, r *rand.Rand) (string, int64) {
	player := table.FindPlayer(playerID)
	actions := LegalActions(table, player)
	if len(actions) == 0 {
		return "", 0
	}

	action := pickAction(actions, r)
	if action != holdemtable.WagerAction_Raise {
		return action, 0
	}

	minChips := table.State.MinBet + table.Meta.BigBlind
	maxChips := player.Chips + player.CurrentBet
	if maxChips <= minChips {
		return action, maxChips
	}
	return action, minChips + r.Int63n(maxChips-minChips+1)
}

func pickAction(actions []string, r *rand.Rand) string {
	weights := make([]float64, 0, len(actions))
	total := 0.0
	for _, action := range actions {
		weight := 0.0
		for _, p := range actionProbabilities {
			if p.Action == action {
				weight = p.Weight
				break
			}
		}
		weights = append(weights, weight)
		total += weight
	}

	n := r.Float64() * total
	for idx, weight := range weights {
		if n < weight {
			return actions[idx]
		}
		n -= weight
	}
	return actions[len(actions)-1]
}
