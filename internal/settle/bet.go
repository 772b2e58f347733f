package settle

import (
	"errors"
	"fmt"

	"github.com/tashanwin/club-settle-go/internal/games"
)

// ErrInvalidBet indicates the bet amount or selection is outside the kind's
// configured domain. Rejected before any randomness is consumed, so a
// corrected retry always yields a fresh, independent outcome.
var ErrInvalidBet = errors.New("settle: invalid bet")

// Bet is a player's wager for one round. Amount is in minor currency units
// (paise) to keep ledger math exact.
type Bet struct {
	Player    string          `json:"player"`
	Amount    int64           `json:"amount"`
	Selection games.Selection `json:"selection"`
}

// Limits bound the stake for one game kind, in paise.
type Limits struct {
	Min int64 `json:"min"`
	Max int64 `json:"max"`
}

// DefaultLimits returns the stake bounds per kind. Most games take
// ₹10–₹50,000; the number draw starts at ₹100, crash at ₹500.
func DefaultLimits() map[games.Kind]Limits {
	std := Limits{Min: 10_00, Max: 50_000_00}
	return map[games.Kind]Limits{
		games.CoinFlip:         std,
		games.DiceSum:          std,
		games.DiceOverUnder:    std,
		games.CardColorOrRank:  std,
		games.BigSmallTriple:   std,
		games.Plinko:           std,
		games.LuckyNumbersDraw: {Min: 100_00, Max: 100_000_00},
		games.CrashMultiplier:  {Min: 500_00, Max: 50_000_00},
	}
}

// validateBet enforces stake bounds and the kind's selection shape.
// Must run before the generator is invoked.
func validateBet(game games.Game, limits Limits, bet Bet) error {
	if bet.Amount < limits.Min || bet.Amount > limits.Max {
		return fmt.Errorf("%w: amount %d outside %d..%d", ErrInvalidBet, bet.Amount, limits.Min, limits.Max)
	}
	if err := game.ValidateSelection(bet.Selection); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidBet, err)
	}
	return nil
}
