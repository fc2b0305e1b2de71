package actor

import (
	"math/rand"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/weedbox/holdemtable"
	"github.com/weedbox/timebank"
)

const (
	botReactionDelay   = 20 * time.Millisecond
	botSettlementDelay = 100 * time.Millisecond
)

type TableGameWagerActionUpdatedFunc func(tableID string, gameCount int, round string, action string, chips int64)

type botRunner struct {
	mu                            sync.Mutex
	actor                         Actor
	playerID                      string
	isHumanized                   bool
	lastUpdateSerial              int64
	lastSettledGameCount          int
	timebank                      *timebank.TimeBank
	settlementTimebank            *timebank.TimeBank
	rng                           *rand.Rand
	logger                        *log.Entry
	onTableGameWagerActionUpdated TableGameWagerActionUpdatedFunc
}

func NewBotRunner(playerID string) *botRunner {
	return &botRunner{
		playerID:                      playerID,
		timebank:                      timebank.NewTimeBank(),
		settlementTimebank:            timebank.NewTimeBank(),
		rng:                           rand.New(rand.NewSource(time.Now().UnixNano())),
		logger:                        log.WithField("bot", playerID),
		onTableGameWagerActionUpdated: func(string, int, string, string, int64) {},
	}
}

func (br *botRunner) SetActor(a Actor) {
	br.actor = a
}

func (br *botRunner) SetSeed(seed int64) {
	br.mu.Lock()
	defer br.mu.Unlock()
	br.rng = rand.New(rand.NewSource(seed))
}

func (br *botRunner) Humanized(enabled bool) {
	br.isHumanized = enabled
}

func (br *botRunner) OnTableGameWagerActionUpdated(fn TableGameWagerActionUpdatedFunc) error {
	br.onTableGameWagerActionUpdated = fn
	return nil
}

/*
UpdateTableState 依桌次狀態決定 Bot 行為
  - 結算後自動確認結果
  - 輪到自己時排程動作
  - 舊的或重複的狀態不處理
*/
func (br *botRunner) UpdateTableState(table *holdemtable.Table) error {
	br.mu.Lock()
	defer br.mu.Unlock()

	// The state remains unchanged or is outdated
	if table.UpdateSerial <= br.lastUpdateSerial {
		return nil
	}
	br.lastUpdateSerial = table.UpdateSerial

	if table.FindPlayer(br.playerID) == nil {
		return nil
	}

	switch table.State.Status {
	case holdemtable.TableStateStatus_TableGameSettled:
		if table.State.GameCount == br.lastSettledGameCount {
			return nil
		}
		br.lastSettledGameCount = table.State.GameCount
		return br.settlementTimebank.NewTask(botSettlementDelay, func(isCancelled bool) {
			if isCancelled {
				return
			}
			if err := br.actor.GetTable().SettlementFinish(); err != nil {
				br.logger.WithError(err).Debug("settlement finish rejected")
			}
		})
	case holdemtable.TableStateStatus_TableGamePlaying:
		if table.State.CurrentPlayerID != br.playerID {
			return nil
		}
		return br.requestMove(table)
	}

	return nil
}

func (br *botRunner) requestMove(table *holdemtable.Table) error {
	action, chips := DecideMove(table, br.playerID, br.rng)
	if action == "" {
		return nil
	}

	delay := botReactionDelay

	// For simulating human-like behavior, to incorporate random delays when performing actions.
	if br.isHumanized && table.Meta.ActionTime > 1 {
		delay += time.Duration(br.rng.Intn(table.Meta.ActionTime/2*1000)) * time.Millisecond
	}

	tableID := table.ID
	gameCount := table.State.GameCount
	round := table.State.BettingRound
	return br.timebank.NewTask(delay, func(isCancelled bool) {
		if isCancelled {
			return
		}

		if err := br.move(action, chips); err != nil {
			br.logger.WithFields(log.Fields{
				"table_id": tableID,
				"action":   action,
				"chips":    chips,
			}).WithError(err).Debug("move rejected")
			return
		}

		br.onTableGameWagerActionUpdated(tableID, gameCount, round, action, chips)
	})
}

func (br *botRunner) move(action string, chips int64) error {
	adapter := br.actor.GetTable()
	switch action {
	case holdemtable.WagerAction_Check:
		return adapter.Check()
	case holdemtable.WagerAction_Call:
		return adapter.Call()
	case holdemtable.WagerAction_Raise:
		return adapter.Raise(chips)
	case holdemtable.WagerAction_AllIn:
		return adapter.Allin()
	}
	return adapter.Fold()
}
