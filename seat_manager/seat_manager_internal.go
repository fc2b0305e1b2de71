package seat_manager

import (
	"sort"

	"github.com/thoas/go-funk"
)

func (sm *seatManager) newSeatPlayer(playerID string, seatID int) *SeatPlayer {
	return &SeatPlayer{
		ID:       playerID,
		SeatID:   seatID,
		HasChips: true,
	}
}

func (sm *seatManager) getEmptySeatIDs() []int {
	emptySeatIDs := make([]int, 0)
	for seatID, seatPlayer := range sm.seats {
		if seatPlayer == nil {
			emptySeatIDs = append(emptySeatIDs, seatID)
		}
	}
	sort.Ints(emptySeatIDs)
	return emptySeatIDs
}

func (sm *seatManager) getSeatedPlayers() []*SeatPlayer {
	seatPlayers := make([]*SeatPlayer, 0)
	for seatID := 0; seatID < sm.maxSeat; seatID++ {
		if seatPlayer := sm.seats[seatID]; seatPlayer != nil {
			copied := *seatPlayer
			seatPlayers = append(seatPlayers, &copied)
		}
	}
	return seatPlayers
}

func (sm *seatManager) getActiveSeatPlayers() []*SeatPlayer {
	seatPlayers := make([]*SeatPlayer, 0)
	for seatID := 0; seatID < sm.maxSeat; seatID++ {
		seatPlayers = append(seatPlayers, sm.seats[seatID])
	}

	return funk.Filter(seatPlayers, func(sp *SeatPlayer) bool {
		return sp != nil && sp.Active()
	}).([]*SeatPlayer)
}

func (sm *seatManager) getSeatPlayer(playerID string) (*SeatPlayer, int, error) {
	for seatID, seatPlayer := range sm.seats {
		if seatPlayer != nil && seatPlayer.ID == playerID {
			return seatPlayer, seatID, nil
		}
	}
	return nil, UnsetSeatID, ErrPlayerNotFound
}
