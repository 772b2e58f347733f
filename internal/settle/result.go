package settle

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tashanwin/club-settle-go/internal/games"
)

// SettlementResult is the terminal record of one round: once produced it is
// never mutated and never recomputed. It carries everything the audit log
// needs: the bet, the outcome, the verdict and the timestamp.
type SettlementResult struct {
	RoundID    uuid.UUID       `json:"round_id"`
	Kind       games.Kind      `json:"kind"`
	Bet        Bet             `json:"bet"`
	Outcome    games.Outcome   `json:"outcome"`
	Won        bool            `json:"won"`
	Multiplier decimal.Decimal `json:"multiplier"`
	Payout     int64           `json:"payout"`
	SettledAt  time.Time       `json:"settled_at"`
}

// PayoutFor converts a float multiplier from the paytables into exact money:
// payout = floor(amount * multiplier) in paise.
func PayoutFor(amount int64, multiplier float64) (decimal.Decimal, int64) {
	m := decimal.NewFromFloat(multiplier)
	p := decimal.NewFromInt(amount).Mul(m).Floor()
	return m, p.IntPart()
}
