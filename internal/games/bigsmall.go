package games

import (
	"fmt"

	"github.com/tashanwin/club-settle-go/internal/engine"
)

// BigSmallGame rolls three d6. Sums 11..17 are Big, 4..10 are Small, both
// paying 1.95x. Any triple (three equal faces) pays 150x against a Triple
// bet and forces a loss for Big and Small bets regardless of the sum; the
// exclusion is explicit here, not an accident of the sum ranges.
type BigSmallGame struct{}

const (
	bigSmallPayout = 1.95
	triplePayout   = 150.0
)

func (g *BigSmallGame) Spec() Spec {
	return Spec{ID: BigSmallTriple, Name: "Big Small", OutcomeLabel: "dice"}
}

func (g *BigSmallGame) ValidateSelection(sel Selection) error {
	switch sel.Side {
	case "big", "small", "triple":
		return nil
	default:
		return fmt.Errorf("%w: big-small side must be big, small or triple, got %q", ErrUnknownSelection, sel.Side)
	}
}

func (g *BigSmallGame) Generate(src engine.Source, sel Selection) (Outcome, error) {
	dice := []int{src.Intn(6) + 1, src.Intn(6) + 1, src.Intn(6) + 1}
	return Outcome{Kind: BigSmallTriple, Dice: dice}, nil
}

func (g *BigSmallGame) Resolve(out Outcome, sel Selection) (Resolution, error) {
	if err := g.ValidateSelection(sel); err != nil {
		return Resolution{}, err
	}
	if len(out.Dice) != 3 {
		return Resolution{}, fmt.Errorf("%w: big-small outcome needs 3 dice, got %d", ErrUnknownSelection, len(out.Dice))
	}

	triple := out.Dice[0] == out.Dice[1] && out.Dice[1] == out.Dice[2]
	if triple {
		if sel.Side == "triple" {
			return Resolution{Won: wonFor(triplePayout), Multiplier: triplePayout}, nil
		}
		// Triple overrides Big/Small: those bets lose even when the sum
		// lands inside their range.
		return Resolution{Won: false, Multiplier: 0}, nil
	}
	if sel.Side == "triple" {
		return Resolution{Won: false, Multiplier: 0}, nil
	}

	sum := out.Dice[0] + out.Dice[1] + out.Dice[2]
	hit := (sel.Side == "big" && sum >= 11 && sum <= 17) ||
		(sel.Side == "small" && sum >= 4 && sum <= 10)
	if !hit {
		return Resolution{Won: false, Multiplier: 0}, nil
	}
	return Resolution{Won: wonFor(bigSmallPayout), Multiplier: bigSmallPayout}, nil
}
