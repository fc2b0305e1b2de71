package holdemtable

import (
	"errors"
	"fmt"
)

var (
	ErrRoomNotFound = errors.New("room: room type not found")
)

type RoomConfig struct {
	RoomType   string `json:"room_type"`
	Level      string `json:"level"`
	SmallBlind int64  `json:"small_blind"`
	BigBlind   int64  `json:"big_blind"`
	MinBuyIn   int64  `json:"min_buy_in"`
	MaxBuyIn   int64  `json:"max_buy_in"`
	MaxSeats   int    `json:"max_seats"`
	ActionTime int    `json:"action_time"`
}

var (
	RoomConfigs = map[string]RoomConfig{
		RoomType_Degen: {
			RoomType:   RoomType_Degen,
			Level:      "ENTRY LEVEL",
			SmallBlind: 1000,
			BigBlind:   2000,
			MinBuyIn:   2000,
			MaxBuyIn:   100000,
			MaxSeats:   DefaultTableMaxSeatCount,
			ActionTime: DefaultActionTime,
		},
		RoomType_Green: {
			RoomType:   RoomType_Green,
			Level:      "INTERMEDIATE",
			SmallBlind: 5000,
			BigBlind:   10000,
			MinBuyIn:   10000,
			MaxBuyIn:   500000,
			MaxSeats:   DefaultTableMaxSeatCount,
			ActionTime: DefaultActionTime,
		},
		RoomType_Morpheus: {
			RoomType:   RoomType_Morpheus,
			Level:      "ELITE",
			SmallBlind: 10000,
			BigBlind:   20000,
			MinBuyIn:   20000,
			MaxBuyIn:   1000000,
			MaxSeats:   DefaultTableMaxSeatCount,
			ActionTime: DefaultActionTime,
		},
	}
)

func GetRoomConfig(roomType string) (RoomConfig, error) {
	rc, exist := RoomConfigs[roomType]
	if !exist {
		return RoomConfig{}, fmt.Errorf("%w: %s", ErrRoomNotFound, roomType)
	}
	return rc, nil
}

func (rc RoomConfig) TableMeta(name string) TableMeta {
	return TableMeta{
		RoomType:          rc.RoomType,
		Name:              name,
		Level:             rc.Level,
		SmallBlind:        rc.SmallBlind,
		BigBlind:          rc.BigBlind,
		MinBuyIn:          rc.MinBuyIn,
		MaxBuyIn:          rc.MaxBuyIn,
		TableMaxSeatCount: rc.MaxSeats,
		ActionTime:        rc.ActionTime,
	}
}
