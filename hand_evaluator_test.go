package holdemtable

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func evaluate(t *testing.T, symbols ...string) HandResult {
	t.Helper()
	result, err := EvaluateHand(MustParseCards(symbols...))
	require.NoError(t, err)
	return result
}

func TestEvaluateHand_Categories(t *testing.T) {
	cases := []struct {
		name     string
		cards    []string
		category HandCategory
	}{
		{"high card", []string{"As", "Jd", "9c", "6h", "3s", "2d", "8c"}, HandCategory_HighCard},
		{"pair", []string{"As", "Ad", "9c", "6h", "3s", "2d", "8c"}, HandCategory_Pair},
		{"two pair", []string{"As", "Ad", "9c", "9h", "3s", "2d", "8c"}, HandCategory_TwoPair},
		{"trips", []string{"As", "Ad", "Ac", "9h", "3s", "2d", "8c"}, HandCategory_ThreeOfAKind},
		{"straight", []string{"9s", "Td", "Jc", "Qh", "Ks", "2d", "2c"}, HandCategory_Straight},
		{"wheel", []string{"As", "2d", "3c", "4h", "5s", "Kd", "Kc"}, HandCategory_Straight},
		{"flush", []string{"As", "Js", "9s", "6s", "3s", "2d", "8c"}, HandCategory_Flush},
		{"full house", []string{"As", "Ad", "Ac", "9h", "9s", "2d", "8c"}, HandCategory_FullHouse},
		{"quads", []string{"As", "Ad", "Ac", "Ah", "9s", "2d", "8c"}, HandCategory_FourOfAKind},
		{"straight flush", []string{"9s", "Ts", "Js", "Qs", "Ks", "2d", "2c"}, HandCategory_StraightFlush},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result := evaluate(t, tc.cards...)
			assert.Equal(t, tc.category, result.Category)
			assert.Len(t, result.BestCards, 5)
			assert.NotEmpty(t, result.Description)
		})
	}
}

func TestEvaluateHand_CategoryOrdering(t *testing.T) {
	hands := [][]string{
		{"As", "Jd", "9c", "6h", "3s", "2d", "8c"},
		{"As", "Ad", "9c", "6h", "3s", "2d", "8c"},
		{"As", "Ad", "9c", "9h", "3s", "2d", "8c"},
		{"As", "Ad", "Ac", "9h", "3s", "2d", "8c"},
		{"9s", "Td", "Jc", "Qh", "Ks", "2d", "2c"},
		{"As", "Js", "9s", "6s", "3s", "2d", "8c"},
		{"As", "Ad", "Ac", "9h", "9s", "2d", "8c"},
		{"As", "Ad", "Ac", "Ah", "9s", "2d", "8c"},
		{"9s", "Ts", "Js", "Qs", "Ks", "2d", "2c"},
	}

	for i := 1; i < len(hands); i++ {
		weaker := evaluate(t, hands[i-1]...)
		stronger := evaluate(t, hands[i]...)
		assert.Equal(t, 1, CompareHands(stronger, weaker), "%s should beat %s", stronger.Category, weaker.Category)
		assert.Greater(t, stronger.Strength, weaker.Strength)
	}
}

func TestEvaluateHand_WheelLosesToSixHighStraight(t *testing.T) {
	wheel := evaluate(t, "As", "2d", "3c", "4h", "5s", "Kd", "Jc")
	sixHigh := evaluate(t, "6s", "2d", "3c", "4h", "5s", "Kd", "Jc")

	assert.Equal(t, HandCategory_Straight, wheel.Category)
	assert.Equal(t, HandCategory_Straight, sixHigh.Category)
	assert.Equal(t, -1, CompareHands(wheel, sixHigh))
	assert.Equal(t, Rank(5), wheel.BestCards[0].Rank)
	assert.Equal(t, Rank_Ace, wheel.BestCards[4].Rank)
}

func TestEvaluateHand_KickerDecides(t *testing.T) {
	board := []string{"Ah", "Kc", "8s", "7d", "2c"}
	a := evaluate(t, append([]string{"Ad", "Qs"}, board...)...)
	b := evaluate(t, append([]string{"As", "Js"}, board...)...)

	assert.Equal(t, HandCategory_Pair, a.Category)
	assert.Equal(t, HandCategory_Pair, b.Category)
	assert.Equal(t, 1, CompareHands(a, b))
}

func TestEvaluateHand_BestTwoPairFromThreePairs(t *testing.T) {
	result := evaluate(t, "Ks", "Kd", "Qc", "Qh", "2s", "2d", "9c")
	assert.Equal(t, HandCategory_TwoPair, result.Category)
	assert.Equal(t, Rank_King, result.BestCards[0].Rank)
	assert.Equal(t, Rank_Queen, result.BestCards[2].Rank)
	assert.Equal(t, Rank(9), result.BestCards[4].Rank)
}

func TestEvaluateHand_StraightBeatsTrips(t *testing.T) {
	board := []string{"Kc", "Qs", "Jh", "Td", "2c"}
	a := evaluate(t, append([]string{"As", "Ks"}, board...)...)
	b := evaluate(t, append([]string{"Qh", "Qd"}, board...)...)

	assert.Equal(t, HandCategory_Straight, a.Category)
	assert.Equal(t, HandCategory_ThreeOfAKind, b.Category)
	assert.Equal(t, 1, CompareHands(a, b))
}

func TestEvaluateHand_BroadwayBoardIsShared(t *testing.T) {
	// both players play the straight on the board
	board := []string{"Ah", "Kc", "Qs", "Jh", "Td"}
	a := evaluate(t, append([]string{"As", "Ks"}, board...)...)
	b := evaluate(t, append([]string{"Qh", "Qd"}, board...)...)

	assert.Equal(t, HandCategory_Straight, a.Category)
	assert.Equal(t, HandCategory_Straight, b.Category)
	assert.Equal(t, 0, CompareHands(a, b))
}

func TestEvaluateHand_ScoreAgreesWithStrength(t *testing.T) {
	a := evaluate(t, "As", "Ad", "Ac", "9h", "9s", "2d", "8c")
	b := evaluate(t, "As", "Js", "9s", "6s", "3s", "2d", "8c")

	assert.Equal(t, 7, a.CardCount)
	assert.Greater(t, a.Score, b.Score)
	assert.Greater(t, a.Strength, b.Strength)
}

func TestEvaluateHand_FiveCards(t *testing.T) {
	result := evaluate(t, "As", "Ks", "Qs", "Js", "Ts")
	assert.Equal(t, HandCategory_StraightFlush, result.Category)
	assert.Equal(t, int16(0), result.Score)
}

func TestEvaluateHand_Invalid(t *testing.T) {
	_, err := EvaluateHand(MustParseCards("As", "Ks", "Qs"))
	assert.ErrorIs(t, err, ErrHandInvalidCardCount)

	_, err = EvaluateHand(MustParseCards("As", "As", "Qs", "Js", "Ts"))
	assert.ErrorIs(t, err, ErrHandDuplicateCard)
}
