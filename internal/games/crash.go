package games

import (
	"fmt"
	"math"

	"github.com/tashanwin/club-settle-go/internal/engine"
)

// CrashGame draws the crash point for a live multiplier round. The crash
// point is deliberately not uniform: a weighted tier table biases rounds
// toward low multipliers while leaving room for rare large ones. The tiers
// are the house edge, so they live in one explicit, testable table.
//
// Resolution is time-dependent relative to the other kinds: the live
// session records the multiplier in effect when the player cashed out
// (Selection.CashoutAt) and the resolver pays that value only if it was
// strictly below the crash point. CashoutAt zero means the ramp ran out.
type CrashGame struct{}

type crashTier struct {
	Weight float64 // probability mass of this tier
	Lo     float64 // inclusive
	Hi     float64 // exclusive
}

// crashTiers must sum to 1.0. Checked at init.
var crashTiers = []crashTier{
	{Weight: 0.50, Lo: 1.00, Hi: 2.00},
	{Weight: 0.25, Lo: 2.00, Hi: 5.00},
	{Weight: 0.17, Lo: 5.00, Hi: 15.00},
	{Weight: 0.08, Lo: 15.00, Hi: 50.00},
}

func init() {
	total := 0.0
	for _, tier := range crashTiers {
		total += tier.Weight
	}
	if math.Abs(total-1.0) > 1e-9 {
		panic(fmt.Sprintf("crash tier weights sum to %f, want 1.0", total))
	}
}

func (g *CrashGame) Spec() Spec {
	return Spec{ID: CrashMultiplier, Name: "Crash", OutcomeLabel: "crash_point"}
}

func (g *CrashGame) ValidateSelection(sel Selection) error {
	// The only player choice is when to cash out, which happens during the
	// live phase; there is no up-front selection shape to reject.
	if sel.CashoutAt < 0 {
		return fmt.Errorf("%w: negative cash-out multiplier", ErrUnknownSelection)
	}
	return nil
}

// Generate draws the crash point: first float picks the tier by weight,
// second places the point uniformly inside it, floored to 2 decimals.
func (g *CrashGame) Generate(src engine.Source, sel Selection) (Outcome, error) {
	point := CrashPoint(src)
	return Outcome{Kind: CrashMultiplier, CrashPoint: point}, nil
}

// CrashPoint draws a crash point from the tier table. The point is built
// in integer hundredths so the result is always a whole number of cents;
// math.Floor(v*100)/100 on a float64 can yield values like 1.1299...
// that are not representable at 2 decimals.
func CrashPoint(src engine.Source) float64 {
	f := src.Float64()
	for _, tier := range crashTiers {
		if f < tier.Weight {
			return float64(tierHundredths(tier, src.Float64())) / 100
		}
		f -= tier.Weight
	}
	// Float rounding can leave a sliver past the last tier boundary.
	last := crashTiers[len(crashTiers)-1]
	return float64(tierHundredths(last, src.Float64())) / 100
}

// tierHundredths places f in [0,1) uniformly across the tier's hundredth
// steps, returning the crash point in cents.
func tierHundredths(tier crashTier, f float64) int {
	lo := int(math.Round(tier.Lo * 100))
	hi := int(math.Round(tier.Hi * 100))
	h := lo + int(f*float64(hi-lo))
	if h >= hi {
		h = hi - 1
	}
	return h
}

func (g *CrashGame) Resolve(out Outcome, sel Selection) (Resolution, error) {
	if err := g.ValidateSelection(sel); err != nil {
		return Resolution{}, err
	}
	if out.CrashPoint < 1.0 {
		return Resolution{}, fmt.Errorf("%w: crash point %f below 1.00", ErrUnknownSelection, out.CrashPoint)
	}

	if sel.CashoutAt == 0 || sel.CashoutAt >= out.CrashPoint {
		// Never cashed out, or the ramp reached the crash point first.
		return Resolution{Won: false, Multiplier: 0}, nil
	}
	return Resolution{Won: wonFor(sel.CashoutAt), Multiplier: sel.CashoutAt}, nil
}
