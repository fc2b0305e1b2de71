package holdemtable

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func sumPots(pots []Pot) int64 {
	total := int64(0)
	for _, p := range pots {
		total += p.Amount
	}
	return total
}

func TestBuildPots_SinglePot(t *testing.T) {
	pots := BuildPots([]PotContribution{
		{PlayerID: "A", Seat: 0, Amount: 2000, IsContesting: true},
		{PlayerID: "B", Seat: 1, Amount: 2000, IsContesting: true},
		{PlayerID: "C", Seat: 2, Amount: 1000, IsContesting: false},
	}, 0)

	assert.Len(t, pots, 1)
	assert.Equal(t, int64(5000), pots[0].Amount)
	assert.Equal(t, []string{"A", "B"}, pots[0].EligiblePlayerIDs)
}

func TestBuildPots_SidePots(t *testing.T) {
	contributions := []PotContribution{
		{PlayerID: "A", Seat: 0, Amount: 500, IsContesting: true},
		{PlayerID: "B", Seat: 3, Amount: 2000, IsContesting: true},
		{PlayerID: "C", Seat: 5, Amount: 5000, IsContesting: true},
		{PlayerID: "D", Seat: 7, Amount: 5000, IsContesting: true},
		{PlayerID: "E", Seat: 8, Amount: 300, IsContesting: false},
	}
	pots := BuildPots(contributions, 0)

	assert.Len(t, pots, 3)
	assert.Equal(t, int64(500*4+300), pots[0].Amount)
	assert.Equal(t, []string{"A", "B", "C", "D"}, pots[0].EligiblePlayerIDs)
	assert.Equal(t, int64(1500*3), pots[1].Amount)
	assert.Equal(t, []string{"B", "C", "D"}, pots[1].EligiblePlayerIDs)
	assert.Equal(t, int64(3000*2), pots[2].Amount)
	assert.Equal(t, []string{"C", "D"}, pots[2].EligiblePlayerIDs)
	assert.Equal(t, int64(500+2000+5000+5000+300), sumPots(pots))
}

func TestBuildPots_FoldedOverContributionAndDeadChips(t *testing.T) {
	pots := BuildPots([]PotContribution{
		{PlayerID: "A", Seat: 0, Amount: 500, IsContesting: true},
		{PlayerID: "B", Seat: 1, Amount: 500, IsContesting: true},
		{PlayerID: "C", Seat: 2, Amount: 3000, IsContesting: false},
	}, 1200)

	assert.Len(t, pots, 1)
	assert.Equal(t, int64(500+500+3000+1200), pots[0].Amount)
	assert.Equal(t, []string{"A", "B"}, pots[0].EligiblePlayerIDs)
}

func TestBuildPots_MergesEqualEligibility(t *testing.T) {
	// C folded with a contribution between the two contesting levels
	pots := BuildPots([]PotContribution{
		{PlayerID: "A", Seat: 0, Amount: 1000, IsContesting: true},
		{PlayerID: "B", Seat: 1, Amount: 1000, IsContesting: true},
		{PlayerID: "C", Seat: 2, Amount: 400, IsContesting: false},
	}, 0)

	assert.Len(t, pots, 1)
	assert.Equal(t, int64(2400), pots[0].Amount)
}

func TestSplitPot_OddChips(t *testing.T) {
	shares := SplitPot(1001, []string{"B", "A"})
	assert.Equal(t, int64(501), shares["B"])
	assert.Equal(t, int64(500), shares["A"])

	shares = SplitPot(1000, []string{"A", "B", "C"})
	assert.Equal(t, int64(334), shares["A"])
	assert.Equal(t, int64(333), shares["B"])
	assert.Equal(t, int64(333), shares["C"])

	assert.Empty(t, SplitPot(100, nil))
}
