package testcases

import (
	"fmt"
	"strings"
	"testing"

	"github.com/pterm/pterm"
	"github.com/weedbox/holdemtable"
)

func boolToString(value bool) string {
	if value {
		return "O"
	}
	return "X"
}

func cardsToString(cards []holdemtable.Card) string {
	symbols := make([]string, 0, len(cards))
	for _, c := range cards {
		symbols = append(symbols, c.String())
	}
	return strings.Join(symbols, " ")
}

// DebugPrintTable logs the table the way a dealer would read it out.
func DebugPrintTable(t *testing.T, msg string, table *holdemtable.Table) {
	state := table.State

	data := pterm.TableData{{"Seat", "Player", "Positions", "Chips", "Bet", "Total", "In", "Active", "AllIn", "Last", "Cards"}}
	for _, p := range table.SeatedPlayers() {
		data = append(data, []string{
			fmt.Sprintf("%d", p.Seat),
			p.PlayerID,
			strings.Join(p.Positions, ","),
			fmt.Sprintf("%d", p.Chips),
			fmt.Sprintf("%d", p.CurrentBet),
			fmt.Sprintf("%d", p.TotalBet),
			boolToString(p.IsParticipated),
			boolToString(p.IsActive),
			boolToString(p.IsAllIn),
			p.LastAction,
			cardsToString(p.HoleCards),
		})
	}

	rendered, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		t.Logf("[%s] render error: %v", msg, err)
		return
	}

	t.Logf("\n---------- [%s] 第 (%d) 手 ----------\n[Status] %s [Round] %s [Pot] %d [MinBet] %d\n[Board] %s\n[Current] %s\n%s",
		msg,
		state.GameCount,
		state.Status,
		state.BettingRound,
		state.Pot,
		state.MinBet,
		cardsToString(state.CommunityCards),
		state.CurrentPlayerID,
		rendered,
	)

	if state.Result != nil {
		for idx, pot := range state.Result.Pots {
			winners := make([]string, 0, len(pot.Winners))
			for _, w := range pot.Winners {
				winners = append(winners, fmt.Sprintf("%s+%d", w.PlayerID, w.Chips))
			}
			t.Logf("[Pot %d] %d eligible=%v winners=%v", idx, pot.Amount, pot.EligiblePlayerIDs, winners)
		}
	}
}
