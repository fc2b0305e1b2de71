package holdemtable

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	log "github.com/sirupsen/logrus"
	"github.com/weedbox/holdemtable/open_game_manager"
	"github.com/weedbox/holdemtable/seat_manager"
)

var (
	ErrTableFull                 = errors.New("table: no empty seats available")
	ErrInsufficientBalance       = errors.New("table: insufficient balance")
	ErrNotYourTurn               = errors.New("table: not your turn")
	ErrIllegalCheck              = errors.New("table: illegal check")
	ErrIllegalRaise              = errors.New("table: illegal raise")
	ErrPlayerNotFound            = errors.New("table: player not found")
	ErrGameNotFound              = errors.New("table: game not found")
	ErrInvalidAction             = errors.New("table: invalid action")
	ErrInvalidBuyIn              = errors.New("table: invalid buy-in amount")
	ErrPlayerAlreadySeated       = errors.New("table: player already seated")
	ErrLedgerUnavailable         = errors.New("table: ledger unavailable")
	ErrTableClosed               = errors.New("table: table closed")
	ErrTableInvalidCreateSetting = errors.New("table: invalid create table setting")
	ErrTableNotCreated           = errors.New("table: table not created")
)

type TableEngine interface {
	// Events
	OnTableUpdated(fn func(*Table))                           // 桌次更新事件監聽器
	OnTableErrorUpdated(fn func(*Table, error))               // 錯誤更新事件監聽器
	OnGamePlayerActionUpdated(fn func(TablePlayerGameAction)) // 玩家動作事件監聽器
	OnTableSettled(fn func(*Table))                           // 結算事件監聽器

	// Table Actions
	GetTable() *Table                                          // 取得桌次 (完整快照)
	GetTableForPlayer(playerID string) *Table                  // 取得玩家視角桌次 (隱藏他人手牌)
	CreateTable(tableID string, meta TableMeta) (*Table, error) // 建立桌
	CloseTable() error                                         // 關閉桌

	// Player Table Actions
	PlayerJoin(ctx context.Context, joinPlayer JoinPlayer) (*Table, error) // 玩家買入入座
	PlayerLeave(playerID string) (int64, error)                           // 玩家離桌
	PlayerCashOut(ctx context.Context, playerID string) (int64, error)    // 玩家離桌並兌現籌碼
	RetryPendingPayouts(ctx context.Context) error                        // 重新兌現失敗的款項
	PendingPayouts() map[string]int64                                     // 尚未兌現的款項

	// Player Game Actions
	PlayerAction(playerID string, action string, chips int64) (*Table, error) // 玩家動作
	PlayerFold(playerID string) (*Table, error)                               // 玩家棄牌
	PlayerCheck(playerID string) (*Table, error)                              // 玩家過牌
	PlayerCall(playerID string) (*Table, error)                               // 玩家跟注
	PlayerRaise(playerID string, chips int64) (*Table, error)                 // 玩家加注
	PlayerAllin(playerID string) (*Table, error)                              // 玩家全下
	PlayerTimeout(playerID string) (*Table, error)                            // 玩家動作逾時
	PlayerSettlementFinish(playerID string) error                             // 玩家確認結算結果
}

type tableEngine struct {
	lock           sync.Mutex
	options        *TableEngineOptions
	callbacks      *TableEngineCallbacks
	table          *Table
	snapshot       atomic.Pointer[Table]
	deck           *Deck
	newDeck        func() *Deck
	rng            RandomSource
	ledger         Ledger
	logger         *log.Entry
	sm             seat_manager.SeatManager
	ogm            open_game_manager.OpenGameManager
	clock          *turnClock
	pendingPayouts map[string]int64
	isSettled      bool // 本次操作是否完成結算
}

func NewTableEngine(options *TableEngineOptions, opts ...TableEngineOpt) TableEngine {
	if options == nil {
		options = NewTableEngineOptions()
	}

	te := &tableEngine{
		options:        options,
		callbacks:      NewTableEngineCallbacks(),
		rng:            NewTimeSeededRandomSource(),
		ledger:         nopLedger{},
		logger:         log.NewEntry(log.StandardLogger()),
		clock:          newTurnClock(),
		pendingPayouts: make(map[string]int64),
	}

	for _, opt := range opts {
		opt(te)
	}

	if te.newDeck == nil {
		te.newDeck = func() *Deck {
			return NewShuffledDeck(te.rng)
		}
	}

	te.ogm = open_game_manager.NewOpenGameManager(open_game_manager.OpenGameOption{
		Timeout: options.NextHandDelay,
		OnOpenGameReady: func(state open_game_manager.OpenGameState) {
			// ready group may complete inside a locked call
			go te.openNextHand(state.GameCount)
		},
	})

	return te
}

func (te *tableEngine) OnTableUpdated(fn func(*Table)) {
	te.callbacks.OnTableUpdated = fn
}

func (te *tableEngine) OnTableErrorUpdated(fn func(*Table, error)) {
	te.callbacks.OnTableErrorUpdated = fn
}

func (te *tableEngine) OnGamePlayerActionUpdated(fn func(TablePlayerGameAction)) {
	te.callbacks.OnGamePlayerActionUpdated = fn
}

func (te *tableEngine) OnTableSettled(fn func(*Table)) {
	te.callbacks.OnTableSettled = fn
}

func (te *tableEngine) GetTable() *Table {
	snapshot := te.snapshot.Load()
	if snapshot == nil {
		return nil
	}

	cloned, err := snapshot.Clone()
	if err != nil {
		te.logger.WithError(err).Error("clone table snapshot failed")
		return nil
	}
	return cloned
}

/*
GetTableForPlayer 取得玩家視角桌次
  - 自己的手牌永遠可見
  - 其他玩家手牌只在比牌結算後可見
*/
func (te *tableEngine) GetTableForPlayer(playerID string) *Table {
	table := te.GetTable()
	if table == nil {
		return nil
	}

	revealed := table.State.Status == TableStateStatus_TableGameSettled &&
		table.State.BettingRound == BettingRound_Showdown &&
		table.State.Result != nil && !table.State.Result.IsFoldOut

	for _, p := range table.State.PlayerStates {
		if p.PlayerID == playerID {
			continue
		}
		if revealed && p.IsParticipated && p.IsActive {
			continue
		}
		p.HoleCards = nil
	}
	return table
}

func (te *tableEngine) CreateTable(tableID string, meta TableMeta) (*Table, error) {
	te.lock.Lock()
	defer te.lock.Unlock()

	if meta.TableMaxSeatCount <= 0 {
		meta.TableMaxSeatCount = DefaultTableMaxSeatCount
	}

	// validate meta
	if tableID == "" || meta.SmallBlind <= 0 || meta.BigBlind < meta.SmallBlind || meta.MinBuyIn > meta.MaxBuyIn {
		return nil, ErrTableInvalidCreateSetting
	}

	if te.table != nil {
		return nil, ErrTableInvalidCreateSetting
	}

	te.table = &Table{
		ID:   tableID,
		Meta: meta,
		State: &TableState{
			Status:            TableStateStatus_TableGameStandby,
			GameCount:         0,
			SeatMap:           NewDefaultSeatMap(meta.TableMaxSeatCount),
			PlayerStates:      make([]*TablePlayerState, 0),
			CommunityCards:    make([]Card, 0),
			CurrentPlayerSeat: UnsetValue,
			DealerPosition:    0,
			DealerSeat:        UnsetValue,
			SBSeat:            UnsetValue,
			BBSeat:            UnsetValue,
		},
	}
	te.sm = seat_manager.NewSeatManager(meta.TableMaxSeatCount)
	te.logger = te.logger.WithFields(log.Fields{
		"table_id":  tableID,
		"room_type": meta.RoomType,
	})

	te.emitEvent("CreateTable", "")
	return te.GetTable(), nil
}

/*
CloseTable 關閉桌次
  - 進行中的牌局退回存活玩家已投入的籌碼
*/
func (te *tableEngine) CloseTable() error {
	te.lock.Lock()
	defer te.lock.Unlock()

	if te.table == nil {
		return ErrTableNotCreated
	}

	if te.table.State.Status == TableStateStatus_TableClosed {
		return ErrTableClosed
	}

	if te.table.State.Status == TableStateStatus_TableGamePlaying {
		te.refundHand()
	}

	te.clearTurn()
	te.ogm.Stop()
	te.table.State.Status = TableStateStatus_TableClosed
	te.table.State.IsGameActive = false

	te.emitEvent("CloseTable", "")
	return nil
}

/*
PlayerJoin 玩家買入入座
  - 先於鎖外向 Ledger 確認餘額
  - 入座於最小的空位
  - 兩位以上有籌碼玩家且沒有進行中的牌局時自動開局
*/
func (te *tableEngine) PlayerJoin(ctx context.Context, joinPlayer JoinPlayer) (*Table, error) {
	if snapshot := te.snapshot.Load(); snapshot != nil {
		if err := validateJoin(snapshot, joinPlayer); err != nil {
			return nil, err
		}
	}

	err := callLedger(ctx, te.options.LedgerTimeout, te.options.LedgerRetries, func(ctx context.Context) error {
		return te.ledger.VerifyBalance(ctx, joinPlayer.PlayerID, joinPlayer.Chips)
	})
	if err != nil {
		te.logger.WithField("player_id", joinPlayer.PlayerID).WithError(err).Warn("buy-in rejected by ledger")
		return nil, err
	}

	te.lock.Lock()
	defer te.lock.Unlock()

	if te.table == nil {
		return nil, ErrTableNotCreated
	}

	if err := validateJoin(te.table, joinPlayer); err != nil {
		return nil, err
	}

	seat, err := te.sm.AssignSeat(joinPlayer.PlayerID)
	if err != nil {
		if errors.Is(err, seat_manager.ErrNotEnoughSeats) {
			return nil, ErrTableFull
		}
		if errors.Is(err, seat_manager.ErrPlayerIsAlreadyExist) {
			return nil, ErrPlayerAlreadySeated
		}
		return nil, err
	}

	player := &TablePlayerState{
		PlayerID:  joinPlayer.PlayerID,
		Nickname:  joinPlayer.Nickname,
		Avatar:    joinPlayer.Avatar,
		Seat:      seat,
		Positions: []string{Position_Unknown},
		Chips:     joinPlayer.Chips,
		HoleCards: make([]Card, 0),
	}
	te.table.State.PlayerStates = append(te.table.State.PlayerStates, player)
	te.table.RebuildSeatMap()

	te.emitEvent("PlayerJoin", joinPlayer.PlayerID)

	if !te.table.State.IsGameActive && len(te.table.AlivePlayers()) >= 2 {
		if err := te.startNewHand(); err != nil {
			te.emitErrorEvent("StartNewHand", joinPlayer.PlayerID, err)
		} else {
			te.flushEvents("GameStarted", "")
		}
	}

	return te.GetTable(), nil
}

/*
PlayerLeave 玩家離桌
  - 任何階段皆可離桌
  - 牌局中離桌視為棄牌，已投入的籌碼留在底池
  - 回傳玩家帶走的籌碼
*/
func (te *tableEngine) PlayerLeave(playerID string) (int64, error) {
	te.lock.Lock()
	defer te.lock.Unlock()

	return te.leave(playerID)
}

// PlayerCashOut removes the player and credits the remaining chips to the ledger.
func (te *tableEngine) PlayerCashOut(ctx context.Context, playerID string) (int64, error) {
	te.lock.Lock()
	chips, err := te.leave(playerID)
	te.lock.Unlock()

	if err != nil {
		return 0, err
	}

	if chips <= 0 {
		return 0, nil
	}

	err = callLedger(ctx, te.options.LedgerTimeout, te.options.LedgerRetries, func(ctx context.Context) error {
		return te.ledger.Credit(ctx, playerID, chips)
	})
	if err != nil {
		te.lock.Lock()
		te.pendingPayouts[playerID] += chips
		te.lock.Unlock()

		te.logger.WithFields(log.Fields{
			"player_id": playerID,
			"chips":     chips,
		}).WithError(err).Error("cash out credit failed, payout kept pending")
		return chips, err
	}

	te.logger.WithFields(log.Fields{
		"player_id": playerID,
		"chips":     chips,
	}).Info("cash out credited")
	return chips, nil
}

func (te *tableEngine) RetryPendingPayouts(ctx context.Context) error {
	pending := te.PendingPayouts()

	var errs []error
	for playerID, chips := range pending {
		playerID, chips := playerID, chips
		err := callLedger(ctx, te.options.LedgerTimeout, te.options.LedgerRetries, func(ctx context.Context) error {
			return te.ledger.Credit(ctx, playerID, chips)
		})
		if err != nil {
			errs = append(errs, err)
			continue
		}

		te.lock.Lock()
		te.pendingPayouts[playerID] -= chips
		if te.pendingPayouts[playerID] <= 0 {
			delete(te.pendingPayouts, playerID)
		}
		te.lock.Unlock()
	}

	return errors.Join(errs...)
}

func (te *tableEngine) PendingPayouts() map[string]int64 {
	te.lock.Lock()
	defer te.lock.Unlock()

	pending := make(map[string]int64, len(te.pendingPayouts))
	for playerID, chips := range te.pendingPayouts {
		pending[playerID] = chips
	}
	return pending
}

func (te *tableEngine) PlayerAction(playerID string, action string, chips int64) (*Table, error) {
	te.lock.Lock()
	defer te.lock.Unlock()

	if err := te.validateGameMove(playerID); err != nil {
		return nil, err
	}

	player := te.table.FindPlayer(playerID)
	if err := te.applyAction(player, action, chips); err != nil {
		return nil, err
	}

	te.flushEvents("PlayerAction", playerID)
	return te.GetTable(), nil
}

func (te *tableEngine) PlayerFold(playerID string) (*Table, error) {
	return te.PlayerAction(playerID, WagerAction_Fold, 0)
}

func (te *tableEngine) PlayerCheck(playerID string) (*Table, error) {
	return te.PlayerAction(playerID, WagerAction_Check, 0)
}

func (te *tableEngine) PlayerCall(playerID string) (*Table, error) {
	return te.PlayerAction(playerID, WagerAction_Call, 0)
}

func (te *tableEngine) PlayerRaise(playerID string, chips int64) (*Table, error) {
	return te.PlayerAction(playerID, WagerAction_Raise, chips)
}

func (te *tableEngine) PlayerAllin(playerID string) (*Table, error) {
	return te.PlayerAction(playerID, WagerAction_AllIn, 0)
}

// PlayerTimeout folds the turn holder, same as an explicit fold.
func (te *tableEngine) PlayerTimeout(playerID string) (*Table, error) {
	te.lock.Lock()
	defer te.lock.Unlock()

	if err := te.validateGameMove(playerID); err != nil {
		return nil, err
	}

	te.timeout(te.table.FindPlayer(playerID))
	return te.GetTable(), nil
}

/*
PlayerSettlementFinish 玩家確認結算結果
  - 所有玩家確認或等待逾時後開下一手
*/
func (te *tableEngine) PlayerSettlementFinish(playerID string) error {
	te.lock.Lock()
	defer te.lock.Unlock()

	if te.table == nil {
		return ErrTableNotCreated
	}

	if te.table.FindPlayerIdx(playerID) == UnsetValue {
		return ErrPlayerNotFound
	}

	if te.table.State.Status != TableStateStatus_TableGameSettled {
		return ErrInvalidAction
	}

	if err := te.ogm.Ready(playerID); err != nil {
		if errors.Is(err, open_game_manager.ErrParticipantNotFound) {
			return ErrPlayerNotFound
		}
		return err
	}

	te.logger.WithField("player_id", playerID).Debug("settlement acknowledged")
	return nil
}
