package games

import (
	"fmt"

	"github.com/tashanwin/club-settle-go/internal/engine"
)

// CoinFlipGame implements the two-sided coin flip. Even-money game: a
// matched side pays 2.00x the stake.
type CoinFlipGame struct{}

const coinFlipPayout = 2.0

var coinFaces = []string{"heads", "tails"}

func (g *CoinFlipGame) Spec() Spec {
	return Spec{ID: CoinFlip, Name: "Coin Flip", OutcomeLabel: "face"}
}

func (g *CoinFlipGame) ValidateSelection(sel Selection) error {
	switch sel.Side {
	case "heads", "tails":
		return nil
	default:
		return fmt.Errorf("%w: coinflip side must be heads or tails, got %q", ErrUnknownSelection, sel.Side)
	}
}

func (g *CoinFlipGame) Generate(src engine.Source, sel Selection) (Outcome, error) {
	return Outcome{Kind: CoinFlip, Face: coinFaces[src.Intn(2)]}, nil
}

func (g *CoinFlipGame) Resolve(out Outcome, sel Selection) (Resolution, error) {
	if err := g.ValidateSelection(sel); err != nil {
		return Resolution{}, err
	}
	if out.Face != sel.Side {
		return Resolution{Won: false, Multiplier: 0}, nil
	}
	return Resolution{Won: wonFor(coinFlipPayout), Multiplier: coinFlipPayout}, nil
}
