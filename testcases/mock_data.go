package testcases

import (
	"github.com/thoas/go-funk"
	"github.com/weedbox/holdemtable"
)

func NewDefaultTableMeta() holdemtable.TableMeta {
	return holdemtable.TableMeta{
		RoomType:          holdemtable.RoomType_Degen,
		Name:              "table name",
		Level:             "test",
		SmallBlind:        1000,
		BigBlind:          2000,
		MinBuyIn:          500,
		MaxBuyIn:          100000,
		TableMaxSeatCount: 9,
		ActionTime:        0,
	}
}

func NewJoinPlayer(playerID string, chips int64) holdemtable.JoinPlayer {
	return holdemtable.JoinPlayer{
		PlayerID: playerID,
		Nickname: playerID,
		Avatar:   "https://avatar.example/" + playerID,
		Chips:    chips,
	}
}

func NewJoinPlayers(chips int64, playerIDs ...string) []holdemtable.JoinPlayer {
	return funk.Map(playerIDs, func(playerID string) holdemtable.JoinPlayer {
		return NewJoinPlayer(playerID, chips)
	}).([]holdemtable.JoinPlayer)
}
