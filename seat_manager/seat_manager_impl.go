package seat_manager

import (
	"sync"

	"github.com/thoas/go-funk"
)

type seatManager struct {
	maxSeat      int
	seats        map[int]*SeatPlayer // key: seat_id (from 0 to MaxSeat - 1), value: seat (nil by default)
	dealerSeatID int                 // UnsetSeatID by default
	sbSeatID     int                 // UnsetSeatID by default
	bbSeatID     int                 // UnsetSeatID by default
	mu           sync.RWMutex
}

func (sm *seatManager) GetSeatID(playerID string) (int, error) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	_, seatID, err := sm.getSeatPlayer(playerID)
	return seatID, err
}

// AssignSeat seats the player at the lowest free seat.
func (sm *seatManager) AssignSeat(playerID string) (int, error) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if _, _, err := sm.getSeatPlayer(playerID); err == nil {
		return UnsetSeatID, ErrPlayerIsAlreadyExist
	}

	emptySeatIDs := sm.getEmptySeatIDs()
	if len(emptySeatIDs) == 0 {
		return UnsetSeatID, ErrNotEnoughSeats
	}

	seatID := emptySeatIDs[0]
	sm.seats[seatID] = sm.newSeatPlayer(playerID, seatID)
	return seatID, nil
}

func (sm *seatManager) AssignSeatAt(playerID string, seatID int) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	seatPlayer, exist := sm.seats[seatID]
	if !exist {
		return ErrUnavailableSeat
	}

	if seatPlayer != nil {
		return ErrSeatAlreadyIsTaken
	}

	if _, _, err := sm.getSeatPlayer(playerID); err == nil {
		return ErrPlayerIsAlreadyExist
	}

	sm.seats[seatID] = sm.newSeatPlayer(playerID, seatID)
	return nil
}

func (sm *seatManager) RemoveSeat(playerID string) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	_, seatID, err := sm.getSeatPlayer(playerID)
	if err != nil {
		return err
	}

	sm.seats[seatID] = nil
	return nil
}

func (sm *seatManager) UpdatePlayerHasChips(playerID string, hasChips bool) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	seatPlayer, _, err := sm.getSeatPlayer(playerID)
	if err != nil {
		return err
	}

	seatPlayer.HasChips = hasChips
	return nil
}

/*
InitPositions 計算本手 Dealer, SB, BB 座位
  - dealerPosition: 依座位排序的有籌碼玩家中 Dealer 的索引 (自動取餘數)
  - 2 人: Dealer 同時為 SB，另一位為 BB
  - 3 人以上: SB = Dealer + 1, BB = Dealer + 2
*/
func (sm *seatManager) InitPositions(dealerPosition int) (*Positions, error) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	actives := sm.getActiveSeatPlayers()
	count := len(actives)
	if count < 2 {
		return nil, ErrUnableToInitPositions
	}

	dealerIdx := ((dealerPosition % count) + count) % count
	fromDealer := funk.Map(append(actives[dealerIdx:], actives[:dealerIdx]...), func(sp *SeatPlayer) *SeatPlayer {
		copied := *sp
		return &copied
	}).([]*SeatPlayer)

	positions := &Positions{
		DealerPosition: dealerIdx,
		DealerSeatID:   fromDealer[0].SeatID,
		FromDealer:     fromDealer,
	}

	if count == 2 {
		positions.SBSeatID = fromDealer[0].SeatID
		positions.BBSeatID = fromDealer[1].SeatID
	} else {
		positions.SBSeatID = fromDealer[1].SeatID
		positions.BBSeatID = fromDealer[2].SeatID
	}

	sm.dealerSeatID = positions.DealerSeatID
	sm.sbSeatID = positions.SBSeatID
	sm.bbSeatID = positions.BBSeatID

	return positions, nil
}

func (sm *seatManager) Seats() map[int]*SeatPlayer {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	seats := make(map[int]*SeatPlayer, len(sm.seats))
	for seatID, seatPlayer := range sm.seats {
		if seatPlayer == nil {
			seats[seatID] = nil
			continue
		}
		sp := *seatPlayer
		seats[seatID] = &sp
	}
	return seats
}

func (sm *seatManager) EmptySeatCount() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	return len(sm.getEmptySeatIDs())
}

func (sm *seatManager) ListSeatedPlayers() []*SeatPlayer {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	return sm.getSeatedPlayers()
}

func (sm *seatManager) ListActivePlayers() []*SeatPlayer {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	return funk.Map(sm.getActiveSeatPlayers(), func(sp *SeatPlayer) *SeatPlayer {
		copied := *sp
		return &copied
	}).([]*SeatPlayer)
}

func (sm *seatManager) CurrentDealerSeatID() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.dealerSeatID
}

func (sm *seatManager) CurrentSBSeatID() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.sbSeatID
}

func (sm *seatManager) CurrentBBSeatID() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.bbSeatID
}
