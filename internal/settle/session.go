package settle

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/tashanwin/club-settle-go/internal/engine"
	"github.com/tashanwin/club-settle-go/internal/games"
)

// State tracks a session through its round. Transitions are strictly
// sequential; no state is ever skipped or revisited.
type State int

const (
	StateAwaitingBet State = iota
	StateGenerating
	StateLive
	StateResolved
)

func (s State) String() string {
	switch s {
	case StateAwaitingBet:
		return "awaiting_bet"
	case StateGenerating:
		return "generating"
	case StateLive:
		return "live"
	case StateResolved:
		return "resolved"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Settler settles rounds. It holds only read-only configuration (limits,
// tick schedule, randomness source), so concurrent rounds are fully
// independent and need no locking here.
type Settler struct {
	src          engine.Source
	limits       map[games.Kind]Limits
	tickInterval time.Duration
	log          *slog.Logger
}

// Option configures a Settler.
type Option func(*Settler)

// WithSource overrides the randomness source. Tests inject scripted or
// seeded sources; production keeps the crypto default.
func WithSource(src engine.Source) Option {
	return func(s *Settler) { s.src = src }
}

// WithLimits overrides stake bounds for the given kinds.
func WithLimits(limits map[games.Kind]Limits) Option {
	return func(s *Settler) {
		for k, l := range limits {
			s.limits[k] = l
		}
	}
}

// WithTickInterval sets the live-round tick period.
func WithTickInterval(d time.Duration) Option {
	return func(s *Settler) { s.tickInterval = d }
}

// WithLogger sets the structured logger.
func WithLogger(log *slog.Logger) Option {
	return func(s *Settler) { s.log = log }
}

// New builds a Settler with crypto randomness, default limits and the
// canonical 50ms live tick.
func New(opts ...Option) *Settler {
	s := &Settler{
		src:          engine.CryptoSource{},
		limits:       DefaultLimits(),
		tickInterval: 50 * time.Millisecond,
		log:          slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ForSource returns a copy of the Settler bound to the given source.
// Provably fair rounds get their own seeded stream this way while the
// shared Settler keeps its default.
func (s *Settler) ForSource(src engine.Source) *Settler {
	c := *s
	c.src = src
	return &c
}

// Limits returns the stake bounds for a kind.
func (s *Settler) Limits(kind games.Kind) (Limits, bool) {
	l, ok := s.limits[kind]
	return l, ok
}

// NewSession constructs a fresh single-round session. Sessions are never
// reused: one bet, one outcome, one result.
func (s *Settler) NewSession(kind games.Kind) (*Session, error) {
	game, ok := games.Get(kind)
	if !ok {
		return nil, fmt.Errorf("settle: unknown game kind %q", kind)
	}
	limits, ok := s.limits[kind]
	if !ok {
		return nil, fmt.Errorf("settle: no limits configured for %q", kind)
	}
	return &Session{
		id:     uuid.New(),
		kind:   kind,
		game:   game,
		limits: limits,
		src:    s.src,
		state:  StateAwaitingBet,
	}, nil
}

// Settle runs one full round for a non-crash kind: validate, generate,
// resolve. Synchronous; the caller gets the terminal result.
func (s *Settler) Settle(kind games.Kind, bet Bet) (SettlementResult, error) {
	if kind == games.CrashMultiplier {
		return SettlementResult{}, fmt.Errorf("settle: crash rounds are live; use StartLiveRound")
	}
	sess, err := s.NewSession(kind)
	if err != nil {
		return SettlementResult{}, err
	}
	return sess.Settle(bet)
}

// Session owns one round's state machine. Not safe for concurrent use; each
// caller owns its session outright.
type Session struct {
	id     uuid.UUID
	kind   games.Kind
	game   games.Game
	limits Limits
	src    engine.Source
	state  State
	result *SettlementResult
}

// ID returns the round identifier.
func (sess *Session) ID() uuid.UUID { return sess.id }

// State returns the current machine state.
func (sess *Session) State() State { return sess.state }

// Result returns the terminal result once resolved.
func (sess *Session) Result() (SettlementResult, bool) {
	if sess.result == nil {
		return SettlementResult{}, false
	}
	return *sess.result, true
}

// Settle validates the bet, generates the outcome exactly once and resolves
// it. An invalid bet leaves the session in AwaitingBet with the generator
// untouched.
func (sess *Session) Settle(bet Bet) (SettlementResult, error) {
	if sess.state != StateAwaitingBet {
		return SettlementResult{}, fmt.Errorf("settle: session %s already past betting (state %s)", sess.id, sess.state)
	}
	if err := validateBet(sess.game, sess.limits, bet); err != nil {
		return SettlementResult{}, err
	}

	sess.state = StateGenerating
	out, err := sess.game.Generate(sess.src, bet.Selection)
	if err != nil {
		return SettlementResult{}, err
	}

	res, err := sess.game.Resolve(out, bet.Selection)
	if err != nil {
		return SettlementResult{}, err
	}

	mult, payout := PayoutFor(bet.Amount, res.Multiplier)
	result := SettlementResult{
		RoundID:    sess.id,
		Kind:       sess.kind,
		Bet:        bet,
		Outcome:    out,
		Won:        res.Won,
		Multiplier: mult,
		Payout:     payout,
		SettledAt:  time.Now().UTC(),
	}
	sess.state = StateResolved
	sess.result = &result
	return result, nil
}
