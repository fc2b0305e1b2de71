package holdemtable

type JoinPlayer struct {
	PlayerID string `json:"player_id"`
	Nickname string `json:"nickname"`
	Avatar   string `json:"avatar"`
	Chips    int64  `json:"chips"` // 買入籌碼
}
