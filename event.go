package holdemtable

import (
	log "github.com/sirupsen/logrus"
)

// emitEvent publishes a fresh snapshot and notifies listeners. Must be called with te.lock held.
func (te *tableEngine) emitEvent(eventName string, playerID string) {
	te.table.RefreshUpdateAt()

	snapshot := te.publish()

	te.logger.WithFields(log.Fields{
		"serial":     te.table.UpdateSerial,
		"game_count": te.table.State.GameCount,
		"player_id":  playerID,
		"round":      te.table.State.BettingRound,
		"status":     te.table.State.Status,
	}).Debugf("emit event: %s", eventName)

	te.callbacks.OnTableUpdated(snapshot)
}

func (te *tableEngine) emitErrorEvent(eventName string, playerID string, err error) {
	te.logger.WithFields(log.Fields{
		"serial":     te.table.UpdateSerial,
		"game_count": te.table.State.GameCount,
		"player_id":  playerID,
	}).WithError(err).Warnf("emit error event: %s", eventName)

	te.callbacks.OnTableErrorUpdated(te.snapshot.Load(), err)
}

func (te *tableEngine) emitGamePlayerActionEvent(gameAction TablePlayerGameAction) {
	te.logger.WithFields(log.Fields{
		"game_count": gameAction.GameCount,
		"player_id":  gameAction.PlayerID,
		"round":      gameAction.Round,
		"chips":      gameAction.Chips,
	}).Infof("player action: %s", gameAction.Action)

	te.callbacks.OnGamePlayerActionUpdated(gameAction)
}

func (te *tableEngine) emitSettledEvent() {
	snapshot := te.snapshot.Load()
	if result := te.table.State.Result; result != nil {
		for _, pot := range result.Pots {
			for _, w := range pot.Winners {
				te.logger.WithFields(log.Fields{
					"game_count": result.GameCount,
					"player_id":  w.PlayerID,
					"chips":      w.Chips,
					"fold_out":   result.IsFoldOut,
				}).Info("pot awarded")
			}
		}
	}

	te.callbacks.OnTableSettled(snapshot)
}
