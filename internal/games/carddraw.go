package games

import (
	"fmt"

	"github.com/tashanwin/club-settle-go/internal/engine"
)

// CardDrawGame draws a single uniform card from the 52-card rank×suit space.
// The player bets either on the color (red/black, near even money) or on an
// exact rank (13 ways, scaled by the same house factor).
type CardDrawGame struct{}

const (
	cardColorPayout = 1.95  // 0.975 / (1/2)
	cardRankPayout  = 12.35 // 0.95 / (1/13)
)

func (g *CardDrawGame) Spec() Spec {
	return Spec{ID: CardColorOrRank, Name: "Card Draw", OutcomeLabel: "card"}
}

func (g *CardDrawGame) ValidateSelection(sel Selection) error {
	hasColor := sel.Color != ""
	hasRank := sel.Rank != ""
	if hasColor == hasRank {
		return fmt.Errorf("%w: card bet needs exactly one of color or rank", ErrUnknownSelection)
	}
	if hasColor && sel.Color != "red" && sel.Color != "black" {
		return fmt.Errorf("%w: card color must be red or black, got %q", ErrUnknownSelection, sel.Color)
	}
	if hasRank && !validCardRank(sel.Rank) {
		return fmt.Errorf("%w: unknown card rank %q", ErrUnknownSelection, sel.Rank)
	}
	return nil
}

func (g *CardDrawGame) Generate(src engine.Source, sel Selection) (Outcome, error) {
	card := cardDeck[src.Intn(52)]
	return Outcome{Kind: CardColorOrRank, Card: &card}, nil
}

func (g *CardDrawGame) Resolve(out Outcome, sel Selection) (Resolution, error) {
	if err := g.ValidateSelection(sel); err != nil {
		return Resolution{}, err
	}
	if out.Card == nil {
		return Resolution{}, fmt.Errorf("%w: card outcome missing card", ErrUnknownSelection)
	}

	if sel.Color != "" {
		if out.Card.Color() != sel.Color {
			return Resolution{Won: false, Multiplier: 0}, nil
		}
		return Resolution{Won: wonFor(cardColorPayout), Multiplier: cardColorPayout}, nil
	}

	if out.Card.Rank != sel.Rank {
		return Resolution{Won: false, Multiplier: 0}, nil
	}
	return Resolution{Won: wonFor(cardRankPayout), Multiplier: cardRankPayout}, nil
}
