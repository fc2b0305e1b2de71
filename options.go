package holdemtable

import (
	"time"

	log "github.com/sirupsen/logrus"
)

type TableEngineCallbacks struct {
	OnTableUpdated            func(t *Table)
	OnTableErrorUpdated       func(t *Table, err error)
	OnGamePlayerActionUpdated func(action TablePlayerGameAction)
	OnTableSettled            func(t *Table)
}

func NewTableEngineCallbacks() *TableEngineCallbacks {
	return &TableEngineCallbacks{
		OnTableUpdated:            func(*Table) {},
		OnTableErrorUpdated:       func(*Table, error) {},
		OnGamePlayerActionUpdated: func(TablePlayerGameAction) {},
		OnTableSettled:            func(*Table) {},
	}
}

type TableEngineOptions struct {
	NextHandDelay int           // 結算後等待開下一手的秒數, 0 表示只等待玩家確認
	LedgerTimeout time.Duration // 每次呼叫 Ledger 的逾時
	LedgerRetries int           // Ledger 失敗後的重試次數
}

func NewTableEngineOptions() *TableEngineOptions {
	return &TableEngineOptions{
		NextHandDelay: DefaultNextHandDelay,
		LedgerTimeout: 3 * time.Second,
		LedgerRetries: 2,
	}
}

type TableEngineOpt func(*tableEngine)

func WithLedger(ledger Ledger) TableEngineOpt {
	return func(te *tableEngine) {
		te.ledger = ledger
	}
}

func WithRandomSource(rng RandomSource) TableEngineOpt {
	return func(te *tableEngine) {
		te.rng = rng
	}
}

// WithDeckFactory replaces the per-hand shuffled deck, e.g. to replay a recorded hand.
func WithDeckFactory(fn func() *Deck) TableEngineOpt {
	return func(te *tableEngine) {
		te.newDeck = fn
	}
}

func WithLogger(logger *log.Entry) TableEngineOpt {
	return func(te *tableEngine) {
		te.logger = logger
	}
}

func WithCallbacks(callbacks *TableEngineCallbacks) TableEngineOpt {
	return func(te *tableEngine) {
		defaults := NewTableEngineCallbacks()
		if callbacks.OnTableUpdated == nil {
			callbacks.OnTableUpdated = defaults.OnTableUpdated
		}
		if callbacks.OnTableErrorUpdated == nil {
			callbacks.OnTableErrorUpdated = defaults.OnTableErrorUpdated
		}
		if callbacks.OnGamePlayerActionUpdated == nil {
			callbacks.OnGamePlayerActionUpdated = defaults.OnGamePlayerActionUpdated
		}
		if callbacks.OnTableSettled == nil {
			callbacks.OnTableSettled = defaults.OnTableSettled
		}
		te.callbacks = callbacks
	}
}
