package api

import (
	"time"

	"github.com/tashanwin/club-settle-go/internal/games"
)

// APIError is the structured error envelope returned for every failure.
type APIError struct {
	Type      string `json:"type"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
	Timestamp string `json:"timestamp,omitempty"`
}

// Error implements the error interface.
func (e APIError) Error() string {
	return e.Message
}

// Error types.
const (
	ErrTypeValidation        = "validation_error"
	ErrTypeInvalidBet        = "invalid_bet"
	ErrTypeInvalidParams     = "invalid_params"
	ErrTypeUnknownSelection  = "unknown_selection"
	ErrTypeGameNotFound      = "game_not_found"
	ErrTypeRoundNotFound     = "round_not_found"
	ErrTypeInsufficientFunds = "insufficient_funds"
	ErrTypeDuplicateCashOut  = "duplicate_cash_out"
	ErrTypeSeedMode          = "seed_mode_unavailable"
	ErrTypeInternal          = "internal_error"
)

// SettleRequest places and settles one instant round.
type SettleRequest struct {
	Player     string          `json:"player" validate:"required,min=1,max=64"`
	Game       string          `json:"game" validate:"required"`
	Amount     int64           `json:"amount" validate:"required,gt=0"`
	ClientSeed string          `json:"client_seed,omitempty" validate:"omitempty,max=128"`
	Selection  games.Selection `json:"selection"`
}

// SettleResponse is the terminal record of a settled round.
type SettleResponse struct {
	RoundID        string          `json:"round_id"`
	Game           string          `json:"game"`
	Outcome        games.Outcome   `json:"outcome"`
	Won            bool            `json:"won"`
	Multiplier     string          `json:"multiplier"`
	Payout         int64           `json:"payout"`
	Balance        int64           `json:"balance"`
	ServerSeedHash string          `json:"server_seed_hash,omitempty"`
	Nonce          uint64          `json:"nonce,omitempty"`
	SettledAt      time.Time       `json:"settled_at"`
}

// CrashStartRequest opens a live multiplier round.
type CrashStartRequest struct {
	Player     string `json:"player" validate:"required,min=1,max=64"`
	Amount     int64  `json:"amount" validate:"required,gt=0"`
	ClientSeed string `json:"client_seed,omitempty" validate:"omitempty,max=128"`
}

// CrashStartResponse points the client at the tick stream for its round.
type CrashStartResponse struct {
	RoundID string `json:"round_id"`
	TickMs  int64  `json:"tick_ms"`
	Stream  string `json:"stream"`
}

// VerifyRequest replays a round from revealed seeds.
type VerifyRequest struct {
	Game       string          `json:"game" validate:"required"`
	ServerSeed string          `json:"server_seed" validate:"required,min=1,max=128"`
	ClientSeed string          `json:"client_seed,omitempty" validate:"omitempty,max=128"`
	Nonce      uint64          `json:"nonce"`
	Selection  games.Selection `json:"selection"`
}

// VerifyResponse is the replayed outcome plus its resolution.
type VerifyResponse struct {
	Game           string        `json:"game"`
	Outcome        games.Outcome `json:"outcome"`
	Won            bool          `json:"won"`
	Multiplier     float64       `json:"multiplier"`
	ServerSeedHash string        `json:"server_seed_hash"`
	Echo           VerifyRequest `json:"echo"`
}

// GameInfo is one catalogue entry: the game spec plus its stake band.
type GameInfo struct {
	games.Spec
	MinBet int64 `json:"min_bet"`
	MaxBet int64 `json:"max_bet"`
}

// GamesResponse lists the available game kinds.
type GamesResponse struct {
	Games []GameInfo `json:"games"`
}

// WalletResponse reports a player's balance in paise.
type WalletResponse struct {
	Player  string `json:"player"`
	Balance int64  `json:"balance"`
}

// SeedResponse carries the current server-seed commitment.
type SeedResponse struct {
	ServerSeedHash string `json:"server_seed_hash"`
	Nonce          uint64 `json:"nonce"`
}

// SeedRotateResponse reveals the retired seed and commits to the next one.
type SeedRotateResponse struct {
	RevealedServerSeed string `json:"revealed_server_seed"`
	NextServerSeedHash string `json:"next_server_seed_hash"`
}

// HealthResponse reports service liveness.
type HealthResponse struct {
	Status        string `json:"status"`
	UptimeSeconds int64  `json:"uptime_seconds"`
	Games         int    `json:"games"`
	Database      bool   `json:"database"`
}

// wsTick streams the current multiplier over the round's socket.
type wsTick struct {
	Type       string  `json:"type"`
	Multiplier float64 `json:"multiplier"`
}

// wsResolved terminates the stream with the round's result.
type wsResolved struct {
	Type   string         `json:"type"`
	Result SettleResponse `json:"result"`
}

// wsClientMessage is what a connected client may send; only "cash_out"
// carries meaning.
type wsClientMessage struct {
	Type string `json:"type"`
}
