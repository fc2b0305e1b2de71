package holdemtable

import (
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/weedbox/timebank"
)

// turnClock counts down the turn holder's action time. Guarded by tableEngine.lock.
type turnClock struct {
	tb     *timebank.TimeBank
	serial int64
}

func newTurnClock() *turnClock {
	return &turnClock{
		tb: timebank.NewTimeBank(),
	}
}

// arm replaces any running countdown, returning the serial that identifies this turn.
func (tc *turnClock) arm(deadline time.Time, fn func(serial int64)) (int64, error) {
	tc.serial++
	serial := tc.serial
	tc.tb.Cancel()

	return serial, tc.tb.NewTaskWithDeadline(deadline, func(isCancelled bool) {
		if isCancelled {
			return
		}
		go fn(serial)
	})
}

func (tc *turnClock) cancel() {
	tc.serial++
	tc.tb.Cancel()
}

func (tc *turnClock) isCurrent(serial int64) bool {
	return tc.serial == serial
}

func (te *tableEngine) setTurn(p *TablePlayerState) {
	state := te.table.State
	state.CurrentPlayerID = p.PlayerID
	state.CurrentPlayerSeat = p.Seat

	actionTime := te.table.Meta.ActionTime
	if actionTime <= 0 {
		te.clock.cancel()
		state.TurnTimeLeft = 0
		state.TurnDeadline = 0
		return
	}

	deadline := time.Now().Add(time.Duration(actionTime) * time.Second)
	state.TurnTimeLeft = actionTime
	state.TurnDeadline = deadline.Unix()

	playerID := p.PlayerID
	if _, err := te.clock.arm(deadline, func(serial int64) {
		te.onTurnExpired(serial, playerID)
	}); err != nil {
		te.emitErrorEvent("ArmTurnClock", playerID, err)
	}
}

func (te *tableEngine) clearTurn() {
	te.clock.cancel()
	te.table.State.CurrentPlayerID = ""
	te.table.State.CurrentPlayerSeat = UnsetValue
	te.table.State.TurnTimeLeft = 0
	te.table.State.TurnDeadline = 0
}

// onTurnExpired folds the player whose turn ran out; stale expirations are ignored.
func (te *tableEngine) onTurnExpired(serial int64, playerID string) {
	te.lock.Lock()
	defer te.lock.Unlock()

	if !te.clock.isCurrent(serial) ||
		te.table.State.Status != TableStateStatus_TableGamePlaying ||
		te.table.State.CurrentPlayerID != playerID {
		te.logger.WithFields(log.Fields{
			"player_id": playerID,
			"serial":    serial,
		}).Debug("stale turn expiration ignored")
		return
	}

	player := te.table.FindPlayer(playerID)
	if player == nil {
		return
	}
	te.timeout(player)
}
