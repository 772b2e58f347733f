package games

import (
	"errors"
	"math"
	"testing"
)

func TestOverUnderAlgebraicPayout(t *testing.T) {
	game := &DiceOverUnderGame{}

	// threshold 50 Over: win chance 50%, multiplier 0.95/0.5 = 1.9.
	if wc := overUnderWinChance("over", 50); wc != 0.5 {
		t.Fatalf("win chance for over 50 = %f, want 0.5", wc)
	}
	res, err := game.Resolve(Outcome{Kind: DiceOverUnder, Roll: 51}, Selection{Side: "over", Target: 50})
	if err != nil {
		t.Fatal(err)
	}
	if !res.Won || res.Multiplier != 1.9 {
		t.Errorf("over 50 with roll 51 = %+v, want won at 1.9x", res)
	}

	// Roll exactly at the threshold loses for Over.
	res, _ = game.Resolve(Outcome{Kind: DiceOverUnder, Roll: 50}, Selection{Side: "over", Target: 50})
	if res.Won || res.Multiplier != 0 {
		t.Errorf("over 50 with roll 50 = %+v, want loss", res)
	}

	// Rarer thresholds pay more: over 90 has a 10% win chance.
	res, _ = game.Resolve(Outcome{Kind: DiceOverUnder, Roll: 95}, Selection{Side: "over", Target: 90})
	want := math.Floor(0.95/0.10*100) / 100
	if res.Multiplier != want {
		t.Errorf("over 90 multiplier = %f, want %f", res.Multiplier, want)
	}
}

func TestOverUnderMultiplierExactAcrossThresholds(t *testing.T) {
	// Cases where 95/wins is exact at 2 decimals must not lose the last
	// cent to float division, and repeating quotients floor downward.
	cases := []struct {
		wins int
		want float64
	}{
		{10, 9.5},   // 95/10, exact
		{50, 1.9},   // 95/50, exact
		{95, 1.0},   // 95/95, exact
		{7, 13.57},  // 95/7 = 13.5714..., floored
		{8, 11.87},  // 95/8 = 11.875, floored
		{97, 0.97},  // 95/97 = 0.9793..., floored
	}
	for _, tc := range cases {
		if got := overUnderMultiplier(tc.wins); got != tc.want {
			t.Errorf("multiplier for %d winning rolls = %f, want %f", tc.wins, got, tc.want)
		}
	}
}

func TestOverUnderBoundaryRejected(t *testing.T) {
	game := &DiceOverUnderGame{}

	for _, target := range []int{0, 1, 99, 100} {
		err := game.ValidateSelection(Selection{Side: "over", Target: target})
		if !errors.Is(err, ErrUnknownSelection) {
			t.Errorf("threshold %d: expected rejection, got %v", target, err)
		}
	}
	if err := game.ValidateSelection(Selection{Side: "over", Target: 2}); err != nil {
		t.Errorf("threshold 2 should be valid: %v", err)
	}
	if err := game.ValidateSelection(Selection{Side: "under", Target: 98}); err != nil {
		t.Errorf("threshold 98 should be valid: %v", err)
	}
}

func TestOverUnderGenerateRange(t *testing.T) {
	game := &DiceOverUnderGame{}
	src := &scriptedSource{ints: []int{0, 99, 42}}
	for _, want := range []int{1, 100, 43} {
		out, err := game.Generate(src, Selection{Side: "over", Target: 50})
		if err != nil {
			t.Fatal(err)
		}
		if out.Roll != want {
			t.Errorf("roll = %d, want %d", out.Roll, want)
		}
	}
}

func TestDiceSumProbabilityDerivedPayout(t *testing.T) {
	// Two dice, sum 7: 6/36 ways, multiplier floor(0.95*6*100)/100 = 5.7.
	if ways := sumWays(2, 7); ways != 6 {
		t.Fatalf("sumWays(2,7) = %d, want 6", ways)
	}
	if m := diceSumMultiplier(2, 7); m != 5.7 {
		t.Errorf("two-dice sum 7 multiplier = %f, want 5.7", m)
	}
	// Three dice, sum 3: a single ordering, so the top multiplier.
	if ways := sumWays(3, 3); ways != 1 {
		t.Fatalf("sumWays(3,3) = %d, want 1", ways)
	}
	if m := diceSumMultiplier(3, 3); m != math.Floor(0.95*216*100)/100 {
		t.Errorf("three-dice sum 3 multiplier = %f", m)
	}
}

func TestDiceSumResolve(t *testing.T) {
	game := &DiceSumGame{}

	res, err := game.Resolve(Outcome{Kind: DiceSum, Dice: []int{3, 4}}, Selection{DiceCount: 2, Target: 7})
	if err != nil {
		t.Fatal(err)
	}
	if !res.Won || res.Multiplier != 5.7 {
		t.Errorf("sum 7 hit = %+v, want won at 5.7x", res)
	}

	res, _ = game.Resolve(Outcome{Kind: DiceSum, Dice: []int{3, 3}}, Selection{DiceCount: 2, Target: 7})
	if res.Won || res.Multiplier != 0 {
		t.Errorf("sum 6 vs target 7 = %+v, want loss", res)
	}
}

func TestDiceSumInvalidParameters(t *testing.T) {
	game := &DiceSumGame{}
	_, err := game.Generate(&scriptedSource{}, Selection{DiceCount: 4, Target: 12})
	if !errors.Is(err, ErrInvalidParameters) {
		t.Errorf("expected ErrInvalidParameters for 4 dice, got %v", err)
	}
	if err := game.ValidateSelection(Selection{DiceCount: 2, Target: 13}); !errors.Is(err, ErrUnknownSelection) {
		t.Errorf("target 13 with 2 dice should be rejected, got %v", err)
	}
}
