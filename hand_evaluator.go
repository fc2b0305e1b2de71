package holdemtable

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/paulhankin/poker"
)

var (
	ErrHandInvalidCardCount = errors.New("evaluator: hand needs 5 to 7 cards")
	ErrHandDuplicateCard    = errors.New("evaluator: duplicate card")
)

type HandCategory int

const (
	HandCategory_HighCard HandCategory = iota + 1
	HandCategory_Pair
	HandCategory_TwoPair
	HandCategory_ThreeOfAKind
	HandCategory_Straight
	HandCategory_Flush
	HandCategory_FullHouse
	HandCategory_FourOfAKind
	HandCategory_StraightFlush
)

func (hc HandCategory) String() string {
	switch hc {
	case HandCategory_HighCard:
		return "High Card"
	case HandCategory_Pair:
		return "Pair"
	case HandCategory_TwoPair:
		return "Two Pair"
	case HandCategory_ThreeOfAKind:
		return "Three of a Kind"
	case HandCategory_Straight:
		return "Straight"
	case HandCategory_Flush:
		return "Flush"
	case HandCategory_FullHouse:
		return "Full House"
	case HandCategory_FourOfAKind:
		return "Four of a Kind"
	case HandCategory_StraightFlush:
		return "Straight Flush"
	default:
		return "Unknown"
	}
}

type HandResult struct {
	Category    HandCategory `json:"category"`
	CardCount   int          `json:"card_count"`
	Score       int16        `json:"score"`    // 7 張牌時由 Eval7 計算，數字越大越好
	Strength    int          `json:"strength"` // 最佳 5 張牌的牌型強度
	BestCards   []Card       `json:"best_cards"`
	Description string       `json:"description"`
}

/*
EvaluateHand 計算 5 ~ 7 張牌中的最佳牌型
  - Score: 7 張牌時使用 paulhankin/poker 的 Eval7
  - Category & BestCards: 由 21 種 5 張牌組合中取最佳者
*/
func EvaluateHand(cards []Card) (HandResult, error) {
	if len(cards) < 5 || len(cards) > 7 {
		return HandResult{}, ErrHandInvalidCardCount
	}

	seen := make(map[Card]bool, len(cards))
	for _, c := range cards {
		if !c.Rank.Valid() {
			return HandResult{}, fmt.Errorf("%w: %v", ErrInvalidCard, c)
		}
		if seen[c] {
			return HandResult{}, fmt.Errorf("%w: %s", ErrHandDuplicateCard, c)
		}
		seen[c] = true
	}

	result := HandResult{CardCount: len(cards), Strength: -1}
	forEachFiveCardCombo(cards, func(five [5]Card) {
		category, strength := classifyFive(five)
		if strength > result.Strength {
			result.Category = category
			result.Strength = strength
			result.BestCards = orderBestCards(five, category)
		}
	})
	result.Description = describeHand(result.Category, result.BestCards)

	if len(cards) == 7 {
		score, err := eval7(cards)
		if err != nil {
			return HandResult{}, err
		}
		result.Score = score
	}

	return result, nil
}

/*
CompareHands 比較兩手牌
  - 回傳 1: a 較大, -1: b 較大, 0: 平手
*/
func CompareHands(a, b HandResult) int {
	if a.CardCount == 7 && b.CardCount == 7 {
		switch {
		case a.Score > b.Score:
			return 1
		case a.Score < b.Score:
			return -1
		default:
			return 0
		}
	}

	switch {
	case a.Strength > b.Strength:
		return 1
	case a.Strength < b.Strength:
		return -1
	default:
		return 0
	}
}

func eval7(cards []Card) (int16, error) {
	var hand [7]poker.Card
	for i, c := range cards {
		pc, err := toPokerCard(c)
		if err != nil {
			return 0, err
		}
		hand[i] = pc
	}
	return poker.Eval7(&hand), nil
}

// toPokerCard maps to paulhankin/poker where suits run club, diamond, heart, spade and ace is 1.
func toPokerCard(c Card) (pc poker.Card, err error) {
	var suit int
	switch c.Suit {
	case Suit_Clubs:
		suit = 0
	case Suit_Diamonds:
		suit = 1
	case Suit_Hearts:
		suit = 2
	case Suit_Spades:
		suit = 3
	default:
		return pc, fmt.Errorf("%w: suit %q", ErrInvalidCard, c.Suit)
	}

	rank := int(c.Rank)
	if c.Rank == Rank_Ace {
		rank = 1
	}

	pc, err = poker.MakeCard(poker.Suit(suit), poker.Rank(rank))
	if err != nil {
		return pc, fmt.Errorf("%w: %v", ErrInvalidCard, err)
	}
	return pc, nil
}

func forEachFiveCardCombo(cards []Card, fn func([5]Card)) {
	n := len(cards)
	var five [5]Card
	for a := 0; a < n-4; a++ {
		for b := a + 1; b < n-3; b++ {
			for c := b + 1; c < n-2; c++ {
				for d := c + 1; d < n-1; d++ {
					for e := d + 1; e < n; e++ {
						five[0], five[1], five[2], five[3], five[4] = cards[a], cards[b], cards[c], cards[d], cards[e]
						fn(five)
					}
				}
			}
		}
	}
}

// classifyFive returns the category and a strength where the category occupies the top bits
// and the five tie-break ranks follow, 4 bits each.
func classifyFive(five [5]Card) (HandCategory, int) {
	counts := make(map[Rank]int, 5)
	isFlush := true
	for i, c := range five {
		counts[c.Rank]++
		if i > 0 && c.Suit != five[0].Suit {
			isFlush = false
		}
	}

	// ranks ordered by (count desc, rank desc)
	ranks := make([]Rank, 0, len(counts))
	for r := range counts {
		ranks = append(ranks, r)
	}
	sort.Slice(ranks, func(i, j int) bool {
		if counts[ranks[i]] != counts[ranks[j]] {
			return counts[ranks[i]] > counts[ranks[j]]
		}
		return ranks[i] > ranks[j]
	})

	straightHigh := Rank(0)
	if len(ranks) == 5 {
		if ranks[0]-ranks[4] == 4 {
			straightHigh = ranks[0]
		} else if ranks[0] == Rank_Ace && ranks[1] == 5 && ranks[4] == Rank_Two {
			// wheel
			straightHigh = 5
		}
	}

	var category HandCategory
	switch {
	case straightHigh > 0 && isFlush:
		category = HandCategory_StraightFlush
	case counts[ranks[0]] == 4:
		category = HandCategory_FourOfAKind
	case counts[ranks[0]] == 3 && counts[ranks[1]] == 2:
		category = HandCategory_FullHouse
	case isFlush:
		category = HandCategory_Flush
	case straightHigh > 0:
		category = HandCategory_Straight
	case counts[ranks[0]] == 3:
		category = HandCategory_ThreeOfAKind
	case counts[ranks[0]] == 2 && counts[ranks[1]] == 2:
		category = HandCategory_TwoPair
	case counts[ranks[0]] == 2:
		category = HandCategory_Pair
	default:
		category = HandCategory_HighCard
	}

	strength := int(category)
	if straightHigh > 0 {
		strength = strength<<4 | int(straightHigh)
		strength <<= 16
		return category, strength
	}

	written := 0
	for _, r := range ranks {
		strength = strength<<4 | int(r)
		written++
	}
	for ; written < 5; written++ {
		strength <<= 4
	}

	return category, strength
}

// orderBestCards sorts the five cards for display: grouped ranks first, wheel ace last.
func orderBestCards(five [5]Card, category HandCategory) []Card {
	counts := make(map[Rank]int, 5)
	for _, c := range five {
		counts[c.Rank]++
	}

	cards := five[:]
	ordered := append([]Card{}, cards...)
	isWheel := (category == HandCategory_Straight || category == HandCategory_StraightFlush) &&
		counts[Rank_Ace] == 1 && counts[5] == 1 && counts[Rank_King] == 0

	sort.SliceStable(ordered, func(i, j int) bool {
		ri, rj := ordered[i].Rank, ordered[j].Rank
		if isWheel {
			if ri == Rank_Ace {
				ri = 1
			}
			if rj == Rank_Ace {
				rj = 1
			}
		}
		if counts[ordered[i].Rank] != counts[ordered[j].Rank] {
			return counts[ordered[i].Rank] > counts[ordered[j].Rank]
		}
		return ri > rj
	})

	return ordered
}

func describeHand(category HandCategory, best []Card) string {
	if len(best) == 0 {
		return category.String()
	}

	symbols := make([]string, 0, len(best))
	for _, c := range best {
		symbols = append(symbols, c.String())
	}
	return fmt.Sprintf("%s (%s)", category, strings.Join(symbols, " "))
}
