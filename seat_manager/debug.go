package seat_manager

import (
	"fmt"

	"github.com/pterm/pterm"
)

// RenderSeats draws the seat map as a table followed by a seated/active summary.
func RenderSeats(sm SeatManager) (string, error) {
	data := pterm.TableData{{"Seat", "Player", "Chips", "Button"}}

	seats := sm.Seats()
	for seatID := 0; seatID < len(seats); seatID++ {
		seatPlayer := seats[seatID]
		if seatPlayer == nil {
			data = append(data, []string{fmt.Sprint(seatID), "-", "", ""})
			continue
		}

		button := ""
		switch seatID {
		case sm.CurrentDealerSeatID():
			button = "D"
			if seatID == sm.CurrentSBSeatID() {
				button = "D/SB"
			}
		case sm.CurrentSBSeatID():
			button = "SB"
		case sm.CurrentBBSeatID():
			button = "BB"
		}

		data = append(data, []string{fmt.Sprint(seatID), seatPlayer.ID, fmt.Sprint(seatPlayer.HasChips), button})
	}

	out, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%s\n%d seated, %d active", out, len(sm.ListSeatedPlayers()), len(sm.ListActivePlayers())), nil
}
