package holdemtable

import (
	"encoding/json"
	"sort"
	"time"

	"github.com/thoas/go-funk"
)

type TableStateStatus string

const (
	TableStateStatus_TableGameStandby TableStateStatus = "table_game_standby" // 桌次內遊戲尚未開始
	TableStateStatus_TableGamePlaying TableStateStatus = "table_game_playing" // 桌次內遊戲開打中
	TableStateStatus_TableGameSettled TableStateStatus = "table_game_settled" // 桌次內遊戲已結算
	TableStateStatus_TableClosed      TableStateStatus = "table_closed"       // 桌次已結束
)

type Table struct {
	ID           string      `json:"id"`
	Meta         TableMeta   `json:"meta"`
	State        *TableState `json:"state"`
	UpdateAt     int64       `json:"update_at"`     // 更新時間 (Seconds)
	UpdateSerial int64       `json:"update_serial"` // 更新序列號 (數字越大越晚發生)
}

type TableMeta struct {
	RoomType          string `json:"room_type"`            // 房間類型 (degen, green, morpheus)
	Name              string `json:"name"`                 // 桌次名稱
	Level             string `json:"level"`                // 房間等級說明
	SmallBlind        int64  `json:"small_blind"`          // 小盲籌碼量
	BigBlind          int64  `json:"big_blind"`            // 大盲籌碼量
	MinBuyIn          int64  `json:"min_buy_in"`           // 最小買入
	MaxBuyIn          int64  `json:"max_buy_in"`           // 最大買入
	TableMaxSeatCount int    `json:"table_max_seat_count"` // 每桌人數上限
	ActionTime        int    `json:"action_time"`          // 玩家動作思考時間 (Seconds), 0 表示不計時
}

type TableState struct {
	Status               TableStateStatus       `json:"status"`                  // 當前桌次狀態
	GameCount            int                    `json:"game_count"`              // 執行牌局遊戲次數 (遊戲跑幾輪)
	SeatMap              []int                  `json:"seat_map"`                // 座位入座狀況，index: seat index (0-8), value: TablePlayerState index (-1 by default)
	PlayerStates         []*TablePlayerState    `json:"player_states"`           // 桌上玩家狀態
	Pot                  int64                  `json:"pot"`                     // 本手投入總籌碼 (含本輪下注)
	DeadChips            int64                  `json:"dead_chips"`              // 已離桌玩家留在池中的籌碼
	CommunityCards       []Card                 `json:"community_cards"`         // 公牌
	CurrentPlayerID      string                 `json:"current_player_id"`       // 當前動作玩家
	CurrentPlayerSeat    int                    `json:"current_player_seat"`     // 當前動作玩家座位
	BettingRound         string                 `json:"betting_round"`           // 當前回合
	MinBet               int64                  `json:"min_bet"`                 // 本輪跟注額
	DealerPosition       int                    `json:"dealer_position"`         // Dealer 在本手玩家 (依座位排序) 中的索引
	DealerSeat           int                    `json:"dealer_seat"`             // 當前 Dealer 座位編號
	SBSeat               int                    `json:"sb_seat"`                 // 當前 SB 座位編號
	BBSeat               int                    `json:"bb_seat"`                 // 當前 BB 座位編號
	TurnTimeLeft         int                    `json:"turn_time_left"`          // 動作時間 (Seconds)
	TurnDeadline         int64                  `json:"turn_deadline"`           // 動作截止時間 (Unix Seconds)
	IsGameActive         bool                   `json:"is_game_active"`          // 本手是否進行中 (含結算後等待)
	LastPlayerGameAction *TablePlayerGameAction `json:"last_player_game_action"` // 最後一個玩家動作
	Result               *TableGameResult       `json:"result"`                  // 本手結算結果
}

type TablePlayerState struct {
	PlayerID       string                    `json:"player_id"`       // 玩家 ID
	Nickname       string                    `json:"nickname"`        // 暱稱
	Avatar         string                    `json:"avatar"`          // 頭像
	Seat           int                       `json:"seat"`            // 座位編號 0 ~ 8
	Positions      []string                  `json:"positions"`       // 場上位置
	Chips          int64                     `json:"chips"`           // 玩家桌上籌碼
	HoleCards      []Card                    `json:"hole_cards"`      // 手牌
	CurrentBet     int64                     `json:"current_bet"`     // 本輪下注
	TotalBet       int64                     `json:"total_bet"`       // 先前回合下注總和
	IsParticipated bool                      `json:"is_participated"` // 是否參與本手
	IsActive       bool                      `json:"is_active"`       // 本手仍在爭奪底池 (未棄牌)
	IsFolded       bool                      `json:"is_folded"`
	IsAllIn        bool                      `json:"is_all_in"`
	IsDealer       bool                      `json:"is_dealer"`
	IsSmallBlind   bool                      `json:"is_small_blind"`
	IsBigBlind     bool                      `json:"is_big_blind"`
	HasActed       bool                      `json:"has_acted"` // 本輪是否已動作
	LastAction     string                    `json:"last_action"`
	GameStatistics TablePlayerGameStatistics `json:"game_statistics"`
}

type TablePlayerGameStatistics struct {
	ActionTimes int    `json:"action_times"`
	RaiseTimes  int    `json:"raise_times"`
	CallTimes   int    `json:"call_times"`
	CheckTimes  int    `json:"check_times"`
	IsFold      bool   `json:"is_fold"`
	FoldRound   string `json:"fold_round"`
}

type TablePlayerGameAction struct {
	TableID    string   `json:"table_id"`
	GameCount  int      `json:"game_count"`
	PlayerID   string   `json:"player_id"`
	Seat       int      `json:"seat"`
	Positions  []string `json:"positions"`
	Round      string   `json:"round"`
	Action     string   `json:"action"`
	Chips      int64    `json:"chips"`
	CurrentBet int64    `json:"current_bet"`
	Pot        int64    `json:"pot"`
	UpdateAt   int64    `json:"update_at"`
}

type TableGameResult struct {
	GameCount int                      `json:"game_count"`
	IsFoldOut bool                     `json:"is_fold_out"` // 其他玩家皆棄牌
	Pots      []*TableGamePotResult    `json:"pots"`
	Hands     []*TableGamePlayerHand   `json:"hands"`
	Players   []*TableGamePlayerResult `json:"players"`
}

type TableGamePotResult struct {
	Amount            int64              `json:"amount"`
	EligiblePlayerIDs []string           `json:"eligible_player_ids"`
	Winners           []*TableGameWinner `json:"winners"`
}

type TableGameWinner struct {
	PlayerID string `json:"player_id"`
	Chips    int64  `json:"chips"`
}

type TableGamePlayerHand struct {
	PlayerID    string `json:"player_id"`
	HoleCards   []Card `json:"hole_cards"`
	Category    string `json:"category"`
	Description string `json:"description"`
}

type TableGamePlayerResult struct {
	PlayerID string `json:"player_id"`
	Bet      int64  `json:"bet"`   // 本手投入
	Won      int64  `json:"won"`   // 本手贏得
	Final    int64  `json:"final"` // 結算後籌碼
}

func NewDefaultSeatMap(seatCount int) []int {
	seatMap := make([]int, seatCount)
	for seatIdx := 0; seatIdx < seatCount; seatIdx++ {
		seatMap[seatIdx] = UnsetValue
	}
	return seatMap
}

// Setters
func (t *Table) RefreshUpdateAt() {
	t.UpdateAt = time.Now().Unix()
	t.UpdateSerial++
}

// RebuildSeatMap refreshes SeatMap after PlayerStates changed.
func (t *Table) RebuildSeatMap() {
	t.State.SeatMap = NewDefaultSeatMap(t.Meta.TableMaxSeatCount)
	for playerIdx, player := range t.State.PlayerStates {
		t.State.SeatMap[player.Seat] = playerIdx
	}
}

// Table Getters
func (t Table) GetJSON() (*string, error) {
	encoded, err := json.Marshal(t)
	if err != nil {
		return nil, err
	}
	str := string(encoded)
	return &str, nil
}

// Clone deep copies the table through a JSON round trip.
func (t Table) Clone() (*Table, error) {
	encoded, err := json.Marshal(t)
	if err != nil {
		return nil, err
	}

	var cloned Table
	if err := json.Unmarshal(encoded, &cloned); err != nil {
		return nil, err
	}
	return &cloned, nil
}

func (t Table) FindPlayerIdx(playerID string) int {
	for idx, player := range t.State.PlayerStates {
		if player.PlayerID == playerID {
			return idx
		}
	}
	return UnsetValue
}

func (t Table) FindPlayer(playerID string) *TablePlayerState {
	idx := t.FindPlayerIdx(playerID)
	if idx == UnsetValue {
		return nil
	}
	return t.State.PlayerStates[idx]
}

func (t Table) PlayerBySeat(seat int) *TablePlayerState {
	if seat < 0 || seat >= len(t.State.SeatMap) {
		return nil
	}

	playerIdx := t.State.SeatMap[seat]
	if playerIdx == UnsetValue {
		return nil
	}
	return t.State.PlayerStates[playerIdx]
}

// SeatedPlayers returns players ordered by seat.
func (t Table) SeatedPlayers() []*TablePlayerState {
	players := append([]*TablePlayerState{}, t.State.PlayerStates...)
	sort.Slice(players, func(i, j int) bool { return players[i].Seat < players[j].Seat })
	return players
}

// PlayersFromSeat returns seated players in seat order, starting at the first seat after the given one.
func (t Table) PlayersFromSeat(seat int) []*TablePlayerState {
	seated := t.SeatedPlayers()
	start := 0
	for idx, p := range seated {
		if p.Seat > seat {
			start = idx
			break
		}
	}
	return append(seated[start:], seated[:start]...)
}

func (t Table) AlivePlayers() []*TablePlayerState {
	return funk.Filter(t.State.PlayerStates, func(player *TablePlayerState) bool {
		return player.Chips > 0
	}).([]*TablePlayerState)
}

// ContestingPlayers are dealt into the hand and have not folded.
func (t Table) ContestingPlayers() []*TablePlayerState {
	return funk.Filter(t.State.PlayerStates, func(player *TablePlayerState) bool {
		return player.IsParticipated && player.IsActive
	}).([]*TablePlayerState)
}

func (t Table) ParticipatedPlayers() []*TablePlayerState {
	return funk.Filter(t.State.PlayerStates, func(player *TablePlayerState) bool {
		return player.IsParticipated
	}).([]*TablePlayerState)
}

// TotalChips sums every stack plus the pot.
func (t Table) TotalChips() int64 {
	total := t.State.Pot
	for _, p := range t.State.PlayerStates {
		total += p.Chips
	}
	return total
}

func (t Table) IsFull() bool {
	return len(t.State.PlayerStates) >= t.Meta.TableMaxSeatCount
}

func (t Table) CanAct(p *TablePlayerState) bool {
	return p.IsParticipated && p.IsActive && !p.IsAllIn
}
