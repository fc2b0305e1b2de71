package holdemtable

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoomConfigs(t *testing.T) {
	cases := []struct {
		roomType   string
		level      string
		smallBlind int64
		bigBlind   int64
		maxBuyIn   int64
	}{
		{RoomType_Degen, "ENTRY LEVEL", 1000, 2000, 100000},
		{RoomType_Green, "INTERMEDIATE", 5000, 10000, 500000},
		{RoomType_Morpheus, "ELITE", 10000, 20000, 1000000},
	}

	for _, c := range cases {
		rc, err := GetRoomConfig(c.roomType)
		require.NoError(t, err)

		meta := rc.TableMeta("table")
		assert.Equal(t, c.roomType, meta.RoomType)
		assert.Equal(t, c.level, meta.Level)
		assert.Equal(t, c.smallBlind, meta.SmallBlind)
		assert.Equal(t, c.bigBlind, meta.BigBlind)
		assert.Equal(t, c.bigBlind, meta.MinBuyIn)
		assert.Equal(t, c.maxBuyIn, meta.MaxBuyIn)
		assert.Equal(t, DefaultTableMaxSeatCount, meta.TableMaxSeatCount)
	}

	_, err := GetRoomConfig("nowhere")
	assert.ErrorIs(t, err, ErrRoomNotFound)
}

func TestNewPositions(t *testing.T) {
	assert.Equal(t, [][]string{{Position_Dealer, Position_SB}, {Position_BB}}, newPositions(2))
	for count := 3; count <= 9; count++ {
		positions := newPositions(count)
		require.Len(t, positions, count)
		assert.Equal(t, []string{Position_Dealer}, positions[0])
		assert.Equal(t, []string{Position_SB}, positions[1])
		assert.Equal(t, []string{Position_BB}, positions[2])
	}
	assert.Equal(t, [][]string{{Position_Unknown}}, newPositions(1))
}
