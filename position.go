package holdemtable

/*
newPositions 依本手人數產生位置標籤
  - 陣列 index 0 為 Dealer，依序往左
*/
func newPositions(playerCount int) [][]string {
	switch playerCount {
	case 9:
		return [][]string{
			{Position_Dealer},
			{Position_SB},
			{Position_BB},
			{Position_UG},
			{Position_UG2},
			{Position_MP},
			{Position_MP2},
			{Position_HJ},
			{Position_CO},
		}
	case 8:
		return [][]string{
			{Position_Dealer},
			{Position_SB},
			{Position_BB},
			{Position_UG},
			{Position_UG2},
			{Position_MP},
			{Position_HJ},
			{Position_CO},
		}
	case 7:
		return [][]string{
			{Position_Dealer},
			{Position_SB},
			{Position_BB},
			{Position_UG},
			{Position_MP},
			{Position_HJ},
			{Position_CO},
		}
	case 6:
		return [][]string{
			{Position_Dealer},
			{Position_SB},
			{Position_BB},
			{Position_UG},
			{Position_HJ},
			{Position_CO},
		}
	case 5:
		return [][]string{
			{Position_Dealer},
			{Position_SB},
			{Position_BB},
			{Position_UG},
			{Position_CO},
		}
	case 4:
		return [][]string{
			{Position_Dealer},
			{Position_SB},
			{Position_BB},
			{Position_UG},
		}
	case 3:
		return [][]string{
			{Position_Dealer},
			{Position_SB},
			{Position_BB},
		}
	case 2:
		return [][]string{
			{Position_Dealer, Position_SB},
			{Position_BB},
		}
	default:
		positions := make([][]string, playerCount)
		for i := range positions {
			positions[i] = []string{Position_Unknown}
		}
		return positions
	}
}
