package holdemtable

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"github.com/weedbox/timebank"
)

var (
	ErrManagerTableNotFound = fmt.Errorf("manager: %w", ErrGameNotFound)
	ErrManagerStopped       = errors.New("manager: stopped")
)

const managerJoinAttempts = 3

// pendingSeat marks a player whose join is still in flight.
const pendingSeat = ""

type Manager interface {
	Reset()

	// TableEngine Actions
	GetTableEngine(tableID string) (TableEngine, error)
	CreateTable(roomType string) (*Table, error)
	FindOrCreateTable(roomType string) (TableEngine, error)
	CloseTable(tableID string) error
	ListTables() []*Table
	RoomCounts() map[string]int
	Sweep() []string
	StartSweeper(interval time.Duration) error
	Stop()

	// Player Table Actions
	PlayerJoin(ctx context.Context, roomType string, joinPlayer JoinPlayer) (*Table, error)
	PlayerLeave(playerID string) (int64, error)
	PlayerCashOut(ctx context.Context, playerID string) (int64, error)
	RetryPendingPayouts(ctx context.Context) error
	GetPlayerTable(playerID string) (*Table, error)

	// Player Game Actions
	PlayerAction(playerID string, action string, chips int64) (*Table, error)
	PlayerTimeout(playerID string) (*Table, error)
	PlayerSettlementFinish(playerID string) error
}

type ManagerOpt func(*manager)

// WithEngineOptions sets the options shared by every table the manager creates.
func WithEngineOptions(options *TableEngineOptions) ManagerOpt {
	return func(m *manager) {
		m.engineOptions = options
	}
}

func WithEngineOpts(opts ...TableEngineOpt) ManagerOpt {
	return func(m *manager) {
		m.engineOpts = append(m.engineOpts, opts...)
	}
}

func WithManagerLogger(logger *log.Entry) ManagerOpt {
	return func(m *manager) {
		m.logger = logger
	}
}

type manager struct {
	mu            sync.Mutex // serialises find-or-create, sweeps and the sweeper timer
	engineOptions *TableEngineOptions
	engineOpts    []TableEngineOpt
	logger        *log.Entry
	tableEngines  sync.Map // key: table id, value: TableEngine
	playerTables  sync.Map // key: player id, value: table id or pendingSeat
	sweeper       *timebank.TimeBank
	sweepInterval time.Duration
	isStopped     bool
}

func NewManager(opts ...ManagerOpt) Manager {
	m := &manager{
		engineOptions: NewTableEngineOptions(),
		logger:        log.WithField("component", "manager"),
		sweeper:       timebank.NewTimeBank(),
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

func (m *manager) Reset() {
	m.Stop()

	m.mu.Lock()
	defer m.mu.Unlock()

	m.tableEngines.Range(func(key, value any) bool {
		_ = value.(TableEngine).CloseTable()
		return true
	})
	m.tableEngines = sync.Map{}
	m.playerTables = sync.Map{}
	m.sweeper = timebank.NewTimeBank()
	m.isStopped = false
}

func (m *manager) GetTableEngine(tableID string) (TableEngine, error) {
	tableEngine, exist := m.tableEngines.Load(tableID)
	if !exist {
		return nil, ErrManagerTableNotFound
	}
	return tableEngine.(TableEngine), nil
}

func (m *manager) CreateTable(roomType string) (*Table, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	tableEngine, err := m.createTable(roomType)
	if err != nil {
		return nil, err
	}
	return tableEngine.GetTable(), nil
}

func (m *manager) createTable(roomType string) (TableEngine, error) {
	rc, err := GetRoomConfig(roomType)
	if err != nil {
		return nil, err
	}

	tableID := uuid.New().String()
	opts := append([]TableEngineOpt{WithLogger(m.logger)}, m.engineOpts...)
	tableEngine := NewTableEngine(m.engineOptions, opts...)

	name := fmt.Sprintf("%s #%d", rc.RoomType, m.countTables(roomType)+1)
	if _, err := tableEngine.CreateTable(tableID, rc.TableMeta(name)); err != nil {
		return nil, err
	}

	m.tableEngines.Store(tableID, tableEngine)
	m.logger.WithFields(log.Fields{
		"table_id":  tableID,
		"room_type": roomType,
	}).Info("table created")

	return tableEngine, nil
}

func (m *manager) countTables(roomType string) int {
	count := 0
	m.tableEngines.Range(func(key, value any) bool {
		if table := value.(TableEngine).GetTable(); table != nil && table.Meta.RoomType == roomType {
			count++
		}
		return true
	})
	return count
}

/*
FindOrCreateTable 找出房間內可入座的桌次
  - 優先選擇人數最多且未滿的桌次
  - 沒有可用桌次時建立新桌
*/
func (m *manager) FindOrCreateTable(roomType string) (TableEngine, error) {
	if _, err := GetRoomConfig(roomType); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	var found TableEngine
	foundCount := -1
	m.tableEngines.Range(func(key, value any) bool {
		tableEngine := value.(TableEngine)
		table := tableEngine.GetTable()
		if table == nil || table.Meta.RoomType != roomType || table.IsFull() ||
			table.State.Status == TableStateStatus_TableClosed {
			return true
		}

		if count := len(table.State.PlayerStates); count > foundCount {
			found = tableEngine
			foundCount = count
		}
		return true
	})

	if found != nil {
		return found, nil
	}

	return m.createTable(roomType)
}

func (m *manager) CloseTable(tableID string) error {
	tableEngine, err := m.GetTableEngine(tableID)
	if err != nil {
		return err
	}

	if err := tableEngine.CloseTable(); err != nil && !errors.Is(err, ErrTableClosed) {
		return err
	}

	m.tableEngines.Delete(tableID)
	m.playerTables.Range(func(key, value any) bool {
		if value.(string) == tableID {
			m.playerTables.Delete(key)
		}
		return true
	})
	return nil
}

func (m *manager) ListTables() []*Table {
	tables := make([]*Table, 0)
	m.tableEngines.Range(func(key, value any) bool {
		if table := value.(TableEngine).GetTable(); table != nil {
			tables = append(tables, table)
		}
		return true
	})

	sort.Slice(tables, func(i, j int) bool {
		if tables[i].Meta.RoomType != tables[j].Meta.RoomType {
			return tables[i].Meta.RoomType < tables[j].Meta.RoomType
		}
		return tables[i].Meta.Name < tables[j].Meta.Name
	})
	return tables
}

// RoomCounts returns the number of seated players per room type.
func (m *manager) RoomCounts() map[string]int {
	counts := make(map[string]int)
	for roomType := range RoomConfigs {
		counts[roomType] = 0
	}

	for _, table := range m.ListTables() {
		if table.State.Status == TableStateStatus_TableClosed {
			continue
		}
		counts[table.Meta.RoomType] += len(table.State.PlayerStates)
	}
	return counts
}

/*
Sweep 關閉並移除沒有玩家的桌次
  - 仍有待兌現款項的桌次保留
  - 回傳被移除的桌次 ID
*/
func (m *manager) Sweep() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	evicted := make([]string, 0)
	m.tableEngines.Range(func(key, value any) bool {
		tableID := key.(string)
		tableEngine := value.(TableEngine)

		table := tableEngine.GetTable()
		if table == nil || len(table.State.PlayerStates) > 0 || len(tableEngine.PendingPayouts()) > 0 {
			return true
		}

		if err := tableEngine.CloseTable(); err != nil && !errors.Is(err, ErrTableClosed) {
			m.logger.WithField("table_id", tableID).WithError(err).Warn("close empty table failed")
			return true
		}

		m.tableEngines.Delete(tableID)
		evicted = append(evicted, tableID)
		return true
	})

	if len(evicted) > 0 {
		m.logger.WithField("tables", evicted).Info("empty tables evicted")
	}
	return evicted
}

func (m *manager) StartSweeper(interval time.Duration) error {
	if interval <= 0 {
		return fmt.Errorf("manager: invalid sweep interval %s", interval)
	}

	m.mu.Lock()
	if m.isStopped {
		m.mu.Unlock()
		return ErrManagerStopped
	}
	m.sweepInterval = interval
	m.mu.Unlock()

	return m.scheduleSweep()
}

func (m *manager) scheduleSweep() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.isStopped {
		return ErrManagerStopped
	}

	return m.sweeper.NewTask(m.sweepInterval, func(isCancelled bool) {
		if isCancelled {
			return
		}

		m.Sweep()

		go func() {
			if err := m.scheduleSweep(); err != nil && !errors.Is(err, ErrManagerStopped) {
				m.logger.WithError(err).Error("re-arm sweeper failed")
			}
		}()
	})
}

func (m *manager) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.isStopped = true
	m.sweeper.Cancel()
}

/*
PlayerJoin 玩家加入房間
  - 先保留玩家，同一玩家同時只能有一筆入座進行中
  - 找出或建立可入座的桌次後入座
  - 桌次在競爭中被坐滿或被清除時改找其他桌
*/
func (m *manager) PlayerJoin(ctx context.Context, roomType string, joinPlayer JoinPlayer) (*Table, error) {
	if _, exist := m.playerTables.LoadOrStore(joinPlayer.PlayerID, pendingSeat); exist {
		return nil, ErrPlayerAlreadySeated
	}

	table, err := m.seatPlayer(ctx, roomType, joinPlayer)
	if err != nil {
		m.playerTables.Delete(joinPlayer.PlayerID)
		return nil, err
	}

	m.playerTables.Store(joinPlayer.PlayerID, table.ID)
	return table, nil
}

func (m *manager) seatPlayer(ctx context.Context, roomType string, joinPlayer JoinPlayer) (*Table, error) {
	var lastErr error
	for attempt := 0; attempt < managerJoinAttempts; attempt++ {
		tableEngine, err := m.FindOrCreateTable(roomType)
		if err != nil {
			return nil, err
		}

		table, err := tableEngine.PlayerJoin(ctx, joinPlayer)
		if errors.Is(err, ErrTableFull) || errors.Is(err, ErrTableClosed) {
			lastErr = err
			continue
		}
		if err != nil {
			return nil, err
		}

		return table, nil
	}

	return nil, lastErr
}

func (m *manager) playerTableEngine(playerID string) (TableEngine, error) {
	tableID, exist := m.playerTables.Load(playerID)
	if !exist || tableID.(string) == pendingSeat {
		return nil, ErrPlayerNotFound
	}

	tableEngine, err := m.GetTableEngine(tableID.(string))
	if err != nil {
		m.playerTables.Delete(playerID)
		return nil, ErrPlayerNotFound
	}
	return tableEngine, nil
}

func (m *manager) PlayerLeave(playerID string) (int64, error) {
	tableEngine, err := m.playerTableEngine(playerID)
	if err != nil {
		return 0, err
	}

	chips, err := tableEngine.PlayerLeave(playerID)
	m.playerTables.Delete(playerID)
	return chips, err
}

func (m *manager) PlayerCashOut(ctx context.Context, playerID string) (int64, error) {
	tableEngine, err := m.playerTableEngine(playerID)
	if err != nil {
		return 0, err
	}

	// the seat is released even when the credit is left pending
	chips, err := tableEngine.PlayerCashOut(ctx, playerID)
	m.playerTables.Delete(playerID)
	return chips, err
}

func (m *manager) RetryPendingPayouts(ctx context.Context) error {
	var errs []error
	m.tableEngines.Range(func(key, value any) bool {
		if err := value.(TableEngine).RetryPendingPayouts(ctx); err != nil {
			errs = append(errs, err)
		}
		return true
	})
	return errors.Join(errs...)
}

func (m *manager) GetPlayerTable(playerID string) (*Table, error) {
	tableEngine, err := m.playerTableEngine(playerID)
	if err != nil {
		return nil, err
	}
	return tableEngine.GetTableForPlayer(playerID), nil
}

func (m *manager) PlayerAction(playerID string, action string, chips int64) (*Table, error) {
	tableEngine, err := m.playerTableEngine(playerID)
	if err != nil {
		return nil, err
	}
	return tableEngine.PlayerAction(playerID, action, chips)
}

func (m *manager) PlayerTimeout(playerID string) (*Table, error) {
	tableEngine, err := m.playerTableEngine(playerID)
	if err != nil {
		return nil, err
	}
	return tableEngine.PlayerTimeout(playerID)
}

func (m *manager) PlayerSettlementFinish(playerID string) error {
	tableEngine, err := m.playerTableEngine(playerID)
	if err != nil {
		return err
	}
	return tableEngine.PlayerSettlementFinish(playerID)
}
