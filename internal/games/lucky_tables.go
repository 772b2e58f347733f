package games

// luckyPayouts maps spots -> matches -> multiplier. The table is sparse:
// any (spots, matches) pair not listed pays 0. Top prize is 10 spots with
// all 10 matched at 10000x.
var luckyPayouts = map[int]map[int]float64{
	1:  {1: 3.8},
	2:  {1: 1, 2: 9},
	3:  {2: 2, 3: 27},
	4:  {2: 1.7, 3: 10, 4: 100},
	5:  {3: 2.5, 4: 20, 5: 450},
	6:  {3: 2, 4: 6.8, 5: 90, 6: 1600},
	7:  {4: 3.5, 5: 14, 6: 200, 7: 4000},
	8:  {4: 2, 5: 12, 6: 75, 7: 1000, 8: 5000},
	9:  {4: 1.5, 5: 6, 6: 44, 7: 235, 8: 2500, 9: 8000},
	10: {5: 4.5, 6: 22, 7: 100, 8: 500, 9: 2000, 10: 10000},
}

// luckyMultiplier looks up the payout for a (spots, matches) pair.
// Unlisted pairs, including 0 or 1 matches for most spot counts,
// return 0 rather than erroring.
func luckyMultiplier(spots, matches int) float64 {
	row, ok := luckyPayouts[spots]
	if !ok {
		return 0
	}
	return row[matches]
}
