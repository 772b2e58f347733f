package games

import (
	"errors"
	"math"
	"testing"

	"github.com/tashanwin/club-settle-go/internal/engine"
)

func TestPlinkoEdgeAndCenterPayouts(t *testing.T) {
	game := &PlinkoGame{}
	sel := Selection{Risk: "high", Rows: 16}

	// Edge slot on the 16-row high table pays 1000x.
	res, err := game.Resolve(Outcome{Kind: Plinko, Slot: 0, Rows: 16}, sel)
	if err != nil {
		t.Fatal(err)
	}
	if res.Multiplier != 1000 || !res.Won {
		t.Errorf("edge slot = %+v, want won at 1000x", res)
	}

	// Center slot pays 0.2x: a partial payout flagged as a loss.
	res, err = game.Resolve(Outcome{Kind: Plinko, Slot: 8, Rows: 16}, sel)
	if err != nil {
		t.Fatal(err)
	}
	if res.Multiplier != 0.2 || res.Won {
		t.Errorf("center slot = %+v, want 0.2x flagged as loss", res)
	}
}

func TestPlinkoWalk(t *testing.T) {
	game := &PlinkoGame{}

	// All-left walk lands in slot 0.
	lefts := make([]int, 8)
	out, err := game.Generate(&scriptedSource{ints: lefts}, Selection{Risk: "low", Rows: 8})
	if err != nil {
		t.Fatal(err)
	}
	if out.Slot != 0 || out.Rows != 8 {
		t.Errorf("all-left walk = %+v, want slot 0", out)
	}

	// All-right walk lands in the last slot.
	rights := []int{1, 1, 1, 1, 1, 1, 1, 1}
	out, _ = game.Generate(&scriptedSource{ints: rights}, Selection{Risk: "low", Rows: 8})
	if out.Slot != 8 {
		t.Errorf("all-right walk slot = %d, want 8", out.Slot)
	}
}

func TestPlinkoBinomialCenterBias(t *testing.T) {
	// Slot frequencies follow rows-choose-k; the center must dominate the
	// edges by orders of magnitude.
	game := &PlinkoGame{}
	src := engine.NewSeedSource("plinko_server", "plinko_client", 1)

	const n = 20000
	counts := make([]int, 9)
	for i := 0; i < n; i++ {
		out, err := game.Generate(src, Selection{Risk: "medium", Rows: 8})
		if err != nil {
			t.Fatal(err)
		}
		counts[out.Slot]++
	}

	center := float64(counts[4]) / n
	// Binomial(8, 0.5) center mass is C(8,4)/256 ≈ 0.273.
	if math.Abs(center-0.273) > 0.02 {
		t.Errorf("center slot frequency %f deviates from 0.273", center)
	}
	edge := float64(counts[0]+counts[8]) / n
	// Each edge is 1/256 ≈ 0.0039.
	if edge > 0.02 {
		t.Errorf("edge slots too frequent: %f", edge)
	}
}

func TestPlinkoInvalidParameters(t *testing.T) {
	game := &PlinkoGame{}
	_, err := game.Generate(&scriptedSource{}, Selection{Risk: "high", Rows: 9})
	if !errors.Is(err, ErrInvalidParameters) {
		t.Errorf("rows 9 should fail generation, got %v", err)
	}
	if err := game.ValidateSelection(Selection{Risk: "extreme", Rows: 8}); !errors.Is(err, ErrUnknownSelection) {
		t.Errorf("risk extreme should be rejected, got %v", err)
	}
}

func TestPlinkoRowMismatch(t *testing.T) {
	game := &PlinkoGame{}
	_, err := game.Resolve(Outcome{Kind: Plinko, Slot: 3, Rows: 8}, Selection{Risk: "low", Rows: 12})
	if !errors.Is(err, ErrUnknownSelection) {
		t.Errorf("row mismatch should be rejected, got %v", err)
	}
}
