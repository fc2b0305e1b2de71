package holdemtable

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager() Manager {
	options := NewTableEngineOptions()
	options.NextHandDelay = 0
	return NewManager(WithEngineOptions(options))
}

// gateLedger holds the first buy-in check until release is closed.
type gateLedger struct {
	once    sync.Once
	entered chan struct{}
	release chan struct{}
}

func newGateLedger() *gateLedger {
	return &gateLedger{
		entered: make(chan struct{}),
		release: make(chan struct{}),
	}
}

func (l *gateLedger) VerifyBalance(ctx context.Context, playerID string, amount int64) error {
	first := false
	l.once.Do(func() { first = true })
	if !first {
		return nil
	}

	close(l.entered)
	select {
	case <-l.release:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (l *gateLedger) Credit(ctx context.Context, playerID string, amount int64) error {
	return nil
}

func (l *gateLedger) waitEntered(t *testing.T) {
	select {
	case <-l.entered:
	case <-time.After(3 * time.Second):
		t.Fatal("buy-in check never started")
	}
}

func newGatedManager(ledger Ledger) Manager {
	options := NewTableEngineOptions()
	options.NextHandDelay = 0
	options.LedgerTimeout = 5 * time.Second
	return NewManager(WithEngineOptions(options), WithEngineOpts(WithLedger(ledger)))
}

func TestManager_CreateTable(t *testing.T) {
	m := newTestManager()
	defer m.Stop()

	_, err := m.CreateTable("nowhere")
	assert.ErrorIs(t, err, ErrRoomNotFound)

	table, err := m.CreateTable(RoomType_Green)
	require.NoError(t, err)
	assert.Equal(t, RoomType_Green, table.Meta.RoomType)
	assert.Equal(t, int64(5000), table.Meta.SmallBlind)
	assert.Equal(t, int64(10000), table.Meta.BigBlind)
	assert.Equal(t, "INTERMEDIATE", table.Meta.Level)

	tableEngine, err := m.GetTableEngine(table.ID)
	require.NoError(t, err)
	assert.Equal(t, table.ID, tableEngine.GetTable().ID)

	_, err = m.GetTableEngine("unknown")
	assert.ErrorIs(t, err, ErrGameNotFound)
}

func TestManager_PlayerJoinFillsTablesInOrder(t *testing.T) {
	m := newTestManager()
	defer m.Stop()

	ctx := context.Background()
	tableIDs := make(map[string]int)
	for i := 0; i < 10; i++ {
		table, err := m.PlayerJoin(ctx, RoomType_Degen, JoinPlayer{PlayerID: fmt.Sprintf("P%d", i), Chips: 50000})
		require.NoError(t, err)
		tableIDs[table.ID]++
	}

	assert.Len(t, tableIDs, 2)
	assert.Equal(t, 10, m.RoomCounts()[RoomType_Degen])
	assert.Equal(t, 0, m.RoomCounts()[RoomType_Morpheus])

	_, err := m.PlayerJoin(ctx, RoomType_Degen, JoinPlayer{PlayerID: "P0", Chips: 50000})
	assert.ErrorIs(t, err, ErrPlayerAlreadySeated)

	_, err = m.PlayerJoin(ctx, "nowhere", JoinPlayer{PlayerID: "X", Chips: 50000})
	assert.ErrorIs(t, err, ErrRoomNotFound)
}

func TestManager_PlayerJoinReservesPlayer(t *testing.T) {
	ledger := newGateLedger()
	m := newGatedManager(ledger)
	defer m.Stop()

	ctx := context.Background()
	joined := make(chan error, 1)
	go func() {
		_, err := m.PlayerJoin(ctx, RoomType_Degen, JoinPlayer{PlayerID: "dup", Chips: 50000})
		joined <- err
	}()
	ledger.waitEntered(t)

	// the first join is still waiting on the ledger
	_, err := m.PlayerJoin(ctx, RoomType_Green, JoinPlayer{PlayerID: "dup", Chips: 50000})
	assert.ErrorIs(t, err, ErrPlayerAlreadySeated)
	_, err = m.GetPlayerTable("dup")
	assert.ErrorIs(t, err, ErrPlayerNotFound)
	_, err = m.PlayerAction("dup", WagerAction_Fold, 0)
	assert.ErrorIs(t, err, ErrPlayerNotFound)

	close(ledger.release)
	require.NoError(t, <-joined)

	table, err := m.GetPlayerTable("dup")
	require.NoError(t, err)
	assert.Equal(t, RoomType_Degen, table.Meta.RoomType)
	assert.Equal(t, 1, m.RoomCounts()[RoomType_Degen])
	assert.Equal(t, 0, m.RoomCounts()[RoomType_Green])
}

func TestManager_PlayerJoinConcurrentSamePlayer(t *testing.T) {
	m := newTestManager()
	defer m.Stop()

	ctx := context.Background()
	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i, roomType := range []string{RoomType_Degen, RoomType_Green} {
		wg.Add(1)
		go func(i int, roomType string) {
			defer wg.Done()
			_, errs[i] = m.PlayerJoin(ctx, roomType, JoinPlayer{PlayerID: "dup", Chips: 50000})
		}(i, roomType)
	}
	wg.Wait()

	seated := 0
	for _, err := range errs {
		if err == nil {
			seated++
			continue
		}
		assert.ErrorIs(t, err, ErrPlayerAlreadySeated)
	}
	assert.Equal(t, 1, seated)

	counts := m.RoomCounts()
	assert.Equal(t, 1, counts[RoomType_Degen]+counts[RoomType_Green])
}

func TestManager_PlayerJoinFailureReleasesPlayer(t *testing.T) {
	m := newTestManager()
	defer m.Stop()

	ctx := context.Background()
	_, err := m.PlayerJoin(ctx, RoomType_Degen, JoinPlayer{PlayerID: "P0", Chips: 1})
	assert.ErrorIs(t, err, ErrInvalidBuyIn)

	_, err = m.GetPlayerTable("P0")
	assert.ErrorIs(t, err, ErrPlayerNotFound)

	table, err := m.PlayerJoin(ctx, RoomType_Degen, JoinPlayer{PlayerID: "P0", Chips: 50000})
	require.NoError(t, err)
	assert.NotNil(t, table.FindPlayer("P0"))
}

func TestManager_PlayerJoinSurvivesSweep(t *testing.T) {
	ledger := newGateLedger()
	m := newGatedManager(ledger)
	defer m.Stop()

	type joinResult struct {
		table *Table
		err   error
	}
	joined := make(chan joinResult, 1)
	go func() {
		table, err := m.PlayerJoin(context.Background(), RoomType_Degen, JoinPlayer{PlayerID: "P0", Chips: 50000})
		joined <- joinResult{table, err}
	}()
	ledger.waitEntered(t)

	// the freshly created table is still empty
	evicted := m.Sweep()
	require.Len(t, evicted, 1)

	close(ledger.release)
	result := <-joined
	require.NoError(t, result.err)
	assert.NotEqual(t, evicted[0], result.table.ID)

	tableEngine, err := m.GetTableEngine(result.table.ID)
	require.NoError(t, err)
	assert.NotNil(t, tableEngine.GetTable().FindPlayer("P0"))

	view, err := m.GetPlayerTable("P0")
	require.NoError(t, err)
	assert.Equal(t, result.table.ID, view.ID)
}

func TestManager_RoutesPlayerActions(t *testing.T) {
	m := newTestManager()
	defer m.Stop()

	ctx := context.Background()
	_, err := m.PlayerJoin(ctx, RoomType_Degen, JoinPlayer{PlayerID: "P0", Chips: 50000})
	require.NoError(t, err)
	table, err := m.PlayerJoin(ctx, RoomType_Degen, JoinPlayer{PlayerID: "P1", Chips: 50000})
	require.NoError(t, err)

	assert.Equal(t, TableStateStatus_TableGamePlaying, table.State.Status)
	assert.Equal(t, "P0", table.State.CurrentPlayerID)

	_, err = m.PlayerAction("nobody", WagerAction_Fold, 0)
	assert.ErrorIs(t, err, ErrPlayerNotFound)

	_, err = m.PlayerAction("P1", WagerAction_Check, 0)
	assert.ErrorIs(t, err, ErrNotYourTurn)

	table, err = m.PlayerAction("P0", WagerAction_Fold, 0)
	require.NoError(t, err)
	assert.Equal(t, TableStateStatus_TableGameSettled, table.State.Status)

	view, err := m.GetPlayerTable("P0")
	require.NoError(t, err)
	assert.Equal(t, table.ID, view.ID)

	require.NoError(t, m.PlayerSettlementFinish("P0"))
	require.NoError(t, m.PlayerSettlementFinish("P1"))
	require.Eventually(t, func() bool {
		table, err := m.GetPlayerTable("P1")
		return err == nil && table.State.GameCount == 2
	}, 3*time.Second, 10*time.Millisecond)

	_, err = m.PlayerTimeout("P1")
	require.NoError(t, err)

	chips, err := m.PlayerLeave("P0")
	require.NoError(t, err)
	assert.Equal(t, int64(50000), chips)

	_, err = m.PlayerLeave("P0")
	assert.ErrorIs(t, err, ErrPlayerNotFound)
}

func TestManager_CashOutCreditsLedger(t *testing.T) {
	ledger := NewMemoryLedger(map[string]int64{"P0": 100000})
	options := NewTableEngineOptions()
	options.NextHandDelay = 0
	m := NewManager(WithEngineOptions(options), WithEngineOpts(WithLedger(ledger)))
	defer m.Stop()

	_, err := m.PlayerJoin(context.Background(), RoomType_Degen, JoinPlayer{PlayerID: "P0", Chips: 40000})
	require.NoError(t, err)

	chips, err := m.PlayerCashOut(context.Background(), "P0")
	require.NoError(t, err)
	assert.Equal(t, int64(40000), chips)
	assert.Equal(t, int64(140000), ledger.Balance("P0"))
	require.NoError(t, m.RetryPendingPayouts(context.Background()))
}

func TestManager_SweepEvictsEmptyTables(t *testing.T) {
	m := newTestManager()
	defer m.Stop()

	ctx := context.Background()
	occupied, err := m.PlayerJoin(ctx, RoomType_Degen, JoinPlayer{PlayerID: "P0", Chips: 50000})
	require.NoError(t, err)
	empty, err := m.CreateTable(RoomType_Degen)
	require.NoError(t, err)

	evicted := m.Sweep()
	assert.Equal(t, []string{empty.ID}, evicted)

	_, err = m.GetTableEngine(empty.ID)
	assert.ErrorIs(t, err, ErrGameNotFound)
	_, err = m.GetTableEngine(occupied.ID)
	assert.NoError(t, err)

	_, err = m.PlayerLeave("P0")
	require.NoError(t, err)
	assert.Equal(t, []string{occupied.ID}, m.Sweep())
	assert.Empty(t, m.ListTables())
}

func TestManager_SweeperRunsPeriodically(t *testing.T) {
	m := newTestManager()

	_, err := m.CreateTable(RoomType_Morpheus)
	require.NoError(t, err)

	assert.Error(t, m.StartSweeper(0))
	require.NoError(t, m.StartSweeper(50*time.Millisecond))

	require.Eventually(t, func() bool {
		return len(m.ListTables()) == 0
	}, 2*time.Second, 10*time.Millisecond)

	m.Stop()
	assert.ErrorIs(t, m.StartSweeper(time.Second), ErrManagerStopped)
}

func TestManager_StopHaltsSweeper(t *testing.T) {
	m := newTestManager()

	_, err := m.CreateTable(RoomType_Morpheus)
	require.NoError(t, err)
	require.NoError(t, m.StartSweeper(10*time.Millisecond))

	require.Eventually(t, func() bool {
		return len(m.ListTables()) == 0
	}, 2*time.Second, 5*time.Millisecond)

	m.Stop()

	table, err := m.CreateTable(RoomType_Morpheus)
	require.NoError(t, err)
	time.Sleep(100 * time.Millisecond)

	_, err = m.GetTableEngine(table.ID)
	assert.NoError(t, err)
	assert.ErrorIs(t, m.StartSweeper(10*time.Millisecond), ErrManagerStopped)
}

func TestManager_CloseTable(t *testing.T) {
	m := newTestManager()
	defer m.Stop()

	table, err := m.PlayerJoin(context.Background(), RoomType_Degen, JoinPlayer{PlayerID: "P0", Chips: 50000})
	require.NoError(t, err)

	require.NoError(t, m.CloseTable(table.ID))
	assert.ErrorIs(t, m.CloseTable(table.ID), ErrGameNotFound)

	_, err = m.PlayerAction("P0", WagerAction_Fold, 0)
	assert.ErrorIs(t, err, ErrPlayerNotFound)
}
