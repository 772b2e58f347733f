package games

import (
	"fmt"

	"github.com/tashanwin/club-settle-go/internal/engine"
)

// PlinkoGame simulates a ball falling through a board of pegs: one
// independent left/right decision per row, with the terminal bucket index as
// the outcome. Bucket probabilities are binomial: mass concentrates in the
// center, which is why center buckets carry sub-1.0 multipliers and edges
// carry the large ones.
type PlinkoGame struct{}

var plinkoValidRows = map[int]bool{8: true, 12: true, 16: true}

const plinkoDefaultRisk = "medium"

func (g *PlinkoGame) Spec() Spec {
	return Spec{ID: Plinko, Name: "Plinko", OutcomeLabel: "slot"}
}

func (g *PlinkoGame) ValidateSelection(sel Selection) error {
	if !plinkoValidRows[sel.Rows] {
		return fmt.Errorf("%w: plinko rows must be 8, 12 or 16, got %d", ErrUnknownSelection, sel.Rows)
	}
	switch sel.Risk {
	case "low", "medium", "high":
		return nil
	case "":
		return nil // defaulted at resolve
	default:
		return fmt.Errorf("%w: plinko risk must be low, medium or high, got %q", ErrUnknownSelection, sel.Risk)
	}
}

func (g *PlinkoGame) Generate(src engine.Source, sel Selection) (Outcome, error) {
	if !plinkoValidRows[sel.Rows] {
		return Outcome{}, fmt.Errorf("%w: plinko rows %d", ErrInvalidParameters, sel.Rows)
	}
	slot := 0
	for i := 0; i < sel.Rows; i++ {
		slot += src.Intn(2) // 1 = right
	}
	return Outcome{Kind: Plinko, Slot: slot, Rows: sel.Rows}, nil
}

func (g *PlinkoGame) Resolve(out Outcome, sel Selection) (Resolution, error) {
	if err := g.ValidateSelection(sel); err != nil {
		return Resolution{}, err
	}
	if out.Rows != sel.Rows {
		return Resolution{}, fmt.Errorf("%w: outcome rows %d do not match selection rows %d", ErrUnknownSelection, out.Rows, sel.Rows)
	}
	risk := sel.Risk
	if risk == "" {
		risk = plinkoDefaultRisk
	}

	table, err := plinkoTable(risk, out.Rows)
	if err != nil {
		return Resolution{}, err
	}
	if out.Slot < 0 || out.Slot >= len(table) {
		return Resolution{}, fmt.Errorf("%w: slot %d out of bounds for %d rows", ErrUnknownSelection, out.Slot, out.Rows)
	}

	mult := table[out.Slot]
	return Resolution{Won: wonFor(mult), Multiplier: mult}, nil
}
