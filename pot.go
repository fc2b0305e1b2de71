package holdemtable

import (
	"sort"

	"github.com/thoas/go-funk"
)

// PotContribution is what one player put into the pot during a hand.
type PotContribution struct {
	PlayerID     string
	Seat         int
	Amount       int64
	IsContesting bool
}

type Pot struct {
	Amount            int64    `json:"amount"`
	EligiblePlayerIDs []string `json:"eligible_player_ids"`
}

/*
BuildPots 依投入籌碼級距拆分主池與邊池
  - 每個級距由仍在爭奪的玩家投入量決定
  - 棄牌或離桌玩家的籌碼會計入池中，但不具資格
  - deadChips 併入主池
  - 超過最高級距的籌碼併入最後一個池
*/
func BuildPots(contributions []PotContribution, deadChips int64) []Pot {
	levels := make([]int64, 0)
	for _, c := range contributions {
		if c.IsContesting && c.Amount > 0 && !funk.ContainsInt64(levels, c.Amount) {
			levels = append(levels, c.Amount)
		}
	}
	sort.Slice(levels, func(i, j int) bool { return levels[i] < levels[j] })

	total := deadChips
	for _, c := range contributions {
		total += c.Amount
	}

	if len(levels) == 0 {
		if total == 0 {
			return []Pot{}
		}
		return []Pot{{Amount: total, EligiblePlayerIDs: contestingIDs(contributions, 0)}}
	}

	pots := make([]Pot, 0, len(levels))
	prev := int64(0)
	for _, level := range levels {
		amount := int64(0)
		for _, c := range contributions {
			amount += min64(c.Amount, level) - min64(c.Amount, prev)
		}

		eligible := contestingIDs(contributions, level)
		if len(pots) > 0 && funk.Equal(pots[len(pots)-1].EligiblePlayerIDs, eligible) {
			pots[len(pots)-1].Amount += amount
		} else {
			pots = append(pots, Pot{Amount: amount, EligiblePlayerIDs: eligible})
		}
		prev = level
	}

	// chips above the top contesting level
	for _, c := range contributions {
		if c.Amount > prev {
			pots[len(pots)-1].Amount += c.Amount - prev
		}
	}

	pots[0].Amount += deadChips

	return pots
}

/*
SplitPot 平分底池
  - winnerIDs 需依座位順序 (從 Dealer 左手邊開始) 排列
  - 無法整除的零頭依序每人 1 枚
*/
func SplitPot(amount int64, winnerIDs []string) map[string]int64 {
	shares := make(map[string]int64, len(winnerIDs))
	if len(winnerIDs) == 0 {
		return shares
	}

	n := int64(len(winnerIDs))
	share := amount / n
	remainder := amount % n
	for i, id := range winnerIDs {
		shares[id] += share
		if int64(i) < remainder {
			shares[id]++
		}
	}
	return shares
}

func contestingIDs(contributions []PotContribution, level int64) []string {
	eligible := funk.Filter(contributions, func(c PotContribution) bool {
		return c.IsContesting && c.Amount >= level
	}).([]PotContribution)

	sort.Slice(eligible, func(i, j int) bool { return eligible[i].Seat < eligible[j].Seat })

	return funk.Map(eligible, func(c PotContribution) string {
		return c.PlayerID
	}).([]string)
}

func min64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}
