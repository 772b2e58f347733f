package games

import "fmt"

// plinkoPayouts maps risk -> rows -> per-bucket multipliers (rows+1 buckets).
// Higher risk shifts value to the edges; the 16-row high table tops out at
// 1000x on either edge with a 0.2x center band.
var plinkoPayouts = map[string]map[int][]float64{
	"low": {
		8: {5.6, 2.1, 1.1, 1, 0.5, 1, 1.1, 2.1, 5.6},
		12: {10, 3, 1.6, 1.4, 1.1, 1, 0.5, 1, 1.1, 1.4, 1.6, 3, 10},
		16: {16, 9, 2, 1.4, 1.4, 1.2, 1.1, 1, 0.5, 1, 1.1, 1.2, 1.4, 1.4, 2, 9, 16},
	},
	"medium": {
		8: {13, 3, 1.3, 0.7, 0.4, 0.7, 1.3, 3, 13},
		12: {33, 11, 4, 2, 1.1, 0.6, 0.3, 0.6, 1.1, 2, 4, 11, 33},
		16: {110, 41, 10, 5, 3, 1.5, 1, 0.5, 0.3, 0.5, 1, 1.5, 3, 5, 10, 41, 110},
	},
	"high": {
		8: {29, 4, 1.5, 0.3, 0.2, 0.3, 1.5, 4, 29},
		12: {170, 24, 8.1, 2, 0.7, 0.2, 0.2, 0.2, 0.7, 2, 8.1, 24, 170},
		16: {1000, 130, 26, 9, 4, 2, 0.2, 0.2, 0.2, 0.2, 0.2, 2, 4, 9, 26, 130, 1000},
	},
}

func plinkoTable(risk string, rows int) ([]float64, error) {
	riskTables, ok := plinkoPayouts[risk]
	if !ok {
		return nil, fmt.Errorf("%w: unknown plinko risk %q", ErrUnknownSelection, risk)
	}
	table, ok := riskTables[rows]
	if !ok {
		return nil, fmt.Errorf("%w: no plinko table for %d rows", ErrUnknownSelection, rows)
	}
	return table, nil
}

func init() {
	// Table shape is load-bearing: a bucket count that disagrees with the
	// row count would silently mispay.
	for risk, byRows := range plinkoPayouts {
		for rows, table := range byRows {
			if len(table) != rows+1 {
				panic(fmt.Sprintf("plinko table %s/%d: expected %d buckets, got %d", risk, rows, rows+1, len(table)))
			}
		}
	}
}
