package games

import (
	"errors"
	"testing"

	"github.com/tashanwin/club-settle-go/internal/engine"
)

func TestLuckyDrawShape(t *testing.T) {
	game := &LuckyNumbersGame{}
	src := engine.NewSeedSource("lucky_server", "lucky_client", 1)

	out, err := game.Generate(src, Selection{Picks: []int{1, 2, 3}})
	if err != nil {
		t.Fatal(err)
	}
	if len(out.Drawn) != 20 {
		t.Fatalf("expected 20 drawn numbers, got %d", len(out.Drawn))
	}
	seen := make(map[int]bool)
	for i, n := range out.Drawn {
		if n < 1 || n > 80 {
			t.Errorf("drawn %d outside 1..80", n)
		}
		if seen[n] {
			t.Errorf("duplicate drawn number %d", n)
		}
		seen[n] = true
		if i > 0 && out.Drawn[i-1] > n {
			t.Errorf("draw not sorted at index %d", i)
		}
	}
}

func TestLuckyTopPrize(t *testing.T) {
	// 10 spots, all 10 matched: exactly 10000x.
	if m := luckyMultiplier(10, 10); m != 10000 {
		t.Errorf("10/10 multiplier = %f, want 10000", m)
	}
	// 10 spots, 4 matches is below the table's minimum listed count.
	if m := luckyMultiplier(10, 4); m != 0 {
		t.Errorf("10/4 multiplier = %f, want 0", m)
	}
}

func TestLuckyLowMatchesResolveToLoss(t *testing.T) {
	game := &LuckyNumbersGame{}
	// Picks that miss the draw entirely must resolve, not error.
	out := Outcome{Kind: LuckyNumbersDraw, Drawn: []int{
		1, 2, 3, 4, 5, 6, 7, 8, 9, 10,
		11, 12, 13, 14, 15, 16, 17, 18, 19, 20,
	}}
	res, err := game.Resolve(out, Selection{Picks: []int{71, 72, 73, 74, 75}})
	if err != nil {
		t.Fatalf("zero matches should not error: %v", err)
	}
	if res.Won || res.Multiplier != 0 {
		t.Errorf("zero matches = %+v, want loss", res)
	}
}

func TestLuckyFullMatchResolve(t *testing.T) {
	game := &LuckyNumbersGame{}
	drawn := []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17, 18, 19, 20}
	out := Outcome{Kind: LuckyNumbersDraw, Drawn: drawn}

	res, err := game.Resolve(out, Selection{Picks: []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}})
	if err != nil {
		t.Fatal(err)
	}
	if !res.Won || res.Multiplier != 10000 {
		t.Errorf("10/10 = %+v, want won at 10000x", res)
	}
}

func TestLuckySelectionValidation(t *testing.T) {
	game := &LuckyNumbersGame{}

	tooMany := make([]int, 11)
	for i := range tooMany {
		tooMany[i] = i + 1
	}
	if err := game.ValidateSelection(Selection{Picks: tooMany}); !errors.Is(err, ErrUnknownSelection) {
		t.Errorf("11 picks should be rejected, got %v", err)
	}
	if err := game.ValidateSelection(Selection{Picks: nil}); !errors.Is(err, ErrUnknownSelection) {
		t.Errorf("0 picks should be rejected, got %v", err)
	}
	if err := game.ValidateSelection(Selection{Picks: []int{5, 5}}); !errors.Is(err, ErrUnknownSelection) {
		t.Errorf("duplicate picks should be rejected, got %v", err)
	}
	if err := game.ValidateSelection(Selection{Picks: []int{81}}); !errors.Is(err, ErrUnknownSelection) {
		t.Errorf("pick 81 should be rejected, got %v", err)
	}
}

func TestLuckyPayoutTableShape(t *testing.T) {
	for spots := 1; spots <= 10; spots++ {
		row, ok := luckyPayouts[spots]
		if !ok {
			t.Fatalf("no paytable row for %d spots", spots)
		}
		for matches, mult := range row {
			if matches > spots {
				t.Errorf("spots %d lists impossible match count %d", spots, matches)
			}
			if mult <= 0 {
				t.Errorf("spots %d matches %d has non-positive multiplier", spots, matches)
			}
		}
	}
}
