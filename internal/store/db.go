package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound indicates no round with the given id exists.
var ErrNotFound = errors.New("store: round not found")

// RoundRecord is the audit tuple persisted for every resolved round:
// bet, outcome, verdict and timestamp, plus the server-seed commitment.
// Raw seeds are never stored, only the hash.
type RoundRecord struct {
	ID             uuid.UUID `json:"id"`
	Player         string    `json:"player"`
	Game           string    `json:"game"`
	Amount         int64     `json:"amount"`
	SelectionJSON  string    `json:"selection"`
	OutcomeJSON    string    `json:"outcome"`
	Won            bool      `json:"won"`
	Multiplier     string    `json:"multiplier"`
	Payout         int64     `json:"payout"`
	ServerSeedHash string    `json:"server_seed_hash,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// DB persists the round audit log.
type DB interface {
	SaveRound(ctx context.Context, rec RoundRecord) error
	GetRound(ctx context.Context, id uuid.UUID) (RoundRecord, error)
	ListRounds(ctx context.Context, player string, limit int) ([]RoundRecord, error)
	Close() error
}
