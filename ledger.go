package holdemtable

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

// Ledger holds players' off-table balances.
type Ledger interface {
	// VerifyBalance returns ErrInsufficientBalance when the player cannot cover amount.
	VerifyBalance(ctx context.Context, playerID string, amount int64) error
	// Credit pays chips back to the player's balance.
	Credit(ctx context.Context, playerID string, amount int64) error
}

// nopLedger accepts every buy-in and drops every credit.
type nopLedger struct{}

func (nopLedger) VerifyBalance(context.Context, string, int64) error { return nil }

func (nopLedger) Credit(context.Context, string, int64) error { return nil }

type MemoryLedger struct {
	mu       sync.Mutex
	balances map[string]int64
}

func NewMemoryLedger(balances map[string]int64) *MemoryLedger {
	l := &MemoryLedger{
		balances: make(map[string]int64, len(balances)),
	}
	for id, b := range balances {
		l.balances[id] = b
	}
	return l
}

func (l *MemoryLedger) VerifyBalance(ctx context.Context, playerID string, amount int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.balances[playerID] < amount {
		return ErrInsufficientBalance
	}
	return nil
}

func (l *MemoryLedger) Credit(ctx context.Context, playerID string, amount int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.balances[playerID] += amount
	return nil
}

func (l *MemoryLedger) Balance(playerID string) int64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.balances[playerID]
}

func (l *MemoryLedger) SetBalance(playerID string, amount int64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.balances[playerID] = amount
}

/*
callLedger 呼叫 Ledger 並處理逾時與重試
  - ErrInsufficientBalance 不重試
  - 重試用盡後回傳 ErrLedgerUnavailable
*/
func callLedger(ctx context.Context, timeout time.Duration, retries int, fn func(ctx context.Context) error) error {
	var lastErr error
	for attempt := 0; attempt <= retries; attempt++ {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("%w: %v", ErrLedgerUnavailable, err)
		}

		callCtx, cancel := ctx, context.CancelFunc(func() {})
		if timeout > 0 {
			callCtx, cancel = context.WithTimeout(ctx, timeout)
		}
		err := fn(callCtx)
		cancel()

		if err == nil {
			return nil
		}
		if errors.Is(err, ErrInsufficientBalance) {
			return err
		}
		lastErr = err
	}

	return fmt.Errorf("%w: %v", ErrLedgerUnavailable, lastErr)
}
