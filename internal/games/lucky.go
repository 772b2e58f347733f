package games

import (
	"fmt"
	"sort"

	"github.com/tashanwin/club-settle-go/internal/engine"
)

// LuckyNumbersGame draws 20 unique numbers from 1..80 without replacement.
// The player picks 1..10 spots; the multiplier depends jointly on the spot
// count and how many picks land among the draw. Pairs absent from the
// paytable resolve to a loss without error.
type LuckyNumbersGame struct{}

const (
	luckyPoolSize  = 80
	luckyDrawCount = 20
	luckyMinSpots  = 1
	luckyMaxSpots  = 10
)

func (g *LuckyNumbersGame) Spec() Spec {
	return Spec{ID: LuckyNumbersDraw, Name: "Lucky Numbers", OutcomeLabel: "drawn"}
}

func (g *LuckyNumbersGame) ValidateSelection(sel Selection) error {
	spots := len(sel.Picks)
	if spots < luckyMinSpots || spots > luckyMaxSpots {
		return fmt.Errorf("%w: lucky numbers takes %d..%d picks, got %d", ErrUnknownSelection, luckyMinSpots, luckyMaxSpots, spots)
	}
	seen := make(map[int]bool, spots)
	for _, p := range sel.Picks {
		if p < 1 || p > luckyPoolSize {
			return fmt.Errorf("%w: pick %d outside 1..%d", ErrUnknownSelection, p, luckyPoolSize)
		}
		if seen[p] {
			return fmt.Errorf("%w: duplicate pick %d", ErrUnknownSelection, p)
		}
		seen[p] = true
	}
	return nil
}

// Generate draws via Fisher-Yates selection over the shrinking pool, so
// every 20-number combination is equally likely. The draw is returned
// sorted; draw order carries no settlement meaning.
func (g *LuckyNumbersGame) Generate(src engine.Source, sel Selection) (Outcome, error) {
	pool := make([]int, luckyPoolSize)
	for i := range pool {
		pool[i] = i + 1
	}

	drawn := make([]int, luckyDrawCount)
	for i := 0; i < luckyDrawCount; i++ {
		idx := src.Intn(len(pool))
		drawn[i] = pool[idx]
		pool = append(pool[:idx], pool[idx+1:]...)
	}
	sort.Ints(drawn)

	return Outcome{Kind: LuckyNumbersDraw, Drawn: drawn}, nil
}

func (g *LuckyNumbersGame) Resolve(out Outcome, sel Selection) (Resolution, error) {
	if err := g.ValidateSelection(sel); err != nil {
		return Resolution{}, err
	}
	if len(out.Drawn) != luckyDrawCount {
		return Resolution{}, fmt.Errorf("%w: lucky numbers outcome has %d drawn, want %d", ErrUnknownSelection, len(out.Drawn), luckyDrawCount)
	}

	matches := countMatches(sel.Picks, out.Drawn)
	mult := luckyMultiplier(len(sel.Picks), matches)
	if mult == 0 {
		return Resolution{Won: false, Multiplier: 0}, nil
	}
	return Resolution{Won: wonFor(mult), Multiplier: mult}, nil
}

func countMatches(picks, drawn []int) int {
	drawnSet := make(map[int]bool, len(drawn))
	for _, d := range drawn {
		drawnSet[d] = true
	}
	matches := 0
	for _, p := range picks {
		if drawnSet[p] {
			matches++
		}
	}
	return matches
}
