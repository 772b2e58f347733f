package games

import (
	"errors"
	"fmt"
	"sort"

	"github.com/tashanwin/club-settle-go/internal/engine"
)

// Kind identifies which settlement rules apply to a round.
type Kind string

const (
	CrashMultiplier  Kind = "crash"
	CoinFlip         Kind = "coinflip"
	DiceSum          Kind = "dice_sum"
	DiceOverUnder    Kind = "dice_over_under"
	CardColorOrRank  Kind = "card"
	BigSmallTriple   Kind = "big_small"
	LuckyNumbersDraw Kind = "lucky_numbers"
	Plinko           Kind = "plinko"
)

var (
	// ErrInvalidParameters indicates the generator was invoked with
	// out-of-domain kind parameters. Caller bug; the round is aborted.
	ErrInvalidParameters = errors.New("games: invalid generator parameters")

	// ErrUnknownSelection indicates the selection matches no paytable
	// entry shape for the kind. Never folded into a loss.
	ErrUnknownSelection = errors.New("games: selection matches no paytable entry")
)

// Selection is a player's kind-specific choice for one round. Only the
// fields relevant to the kind are read; the game's ValidateSelection
// rejects malformed shapes before any randomness is consumed.
type Selection struct {
	// Side: coinflip "heads"/"tails"; over-under "over"/"under";
	// big-small "big"/"small"/"triple".
	Side string `json:"side,omitempty"`
	// Target: over-under threshold (2..98) or dice-sum target.
	Target int `json:"target,omitempty"`
	// DiceCount: dice-sum only, 1..3.
	DiceCount int `json:"dice_count,omitempty"`
	// Color/Rank: card draw, exactly one set.
	Color string `json:"color,omitempty"`
	Rank  string `json:"rank,omitempty"`
	// Picks: lucky numbers, 1..10 unique values in 1..80.
	Picks []int `json:"picks,omitempty"`
	// Risk/Rows: plinko tier and board size.
	Risk string `json:"risk,omitempty"`
	Rows int    `json:"rows,omitempty"`
	// CashoutAt: crash only, set by the live session at cash-out time.
	// Zero means the round ran to the crash point.
	CashoutAt float64 `json:"cashout_at,omitempty"`
}

// Outcome is the kind-specific random result of one round. Produced exactly
// once and immutable thereafter.
type Outcome struct {
	Kind Kind `json:"kind"`

	CrashPoint float64 `json:"crash_point,omitempty"`
	Face       string  `json:"face,omitempty"`
	Dice       []int   `json:"dice,omitempty"`
	Roll       int     `json:"roll,omitempty"`
	Card       *Card   `json:"card,omitempty"`
	Drawn      []int   `json:"drawn,omitempty"`
	Slot       int     `json:"slot,omitempty"`
	Rows       int     `json:"rows,omitempty"`
}

// Resolution is the resolver's verdict for an outcome against a selection.
// Multiplier is explicit even on a loss (zero, or a sub-1.0 partial payout
// where the paytable carries one).
type Resolution struct {
	Won        bool    `json:"won"`
	Multiplier float64 `json:"multiplier"`
}

// Spec describes a game kind for listings and the verify surface.
type Spec struct {
	ID           Kind   `json:"id"`
	Name         string `json:"name"`
	OutcomeLabel string `json:"outcome_label"`
}

// Game couples the outcome generator and payout resolver for one kind.
type Game interface {
	Spec() Spec

	// ValidateSelection rejects selections outside the kind's domain.
	// Runs before any randomness is consumed.
	ValidateSelection(sel Selection) error

	// Generate produces one outcome. Pure apart from the source; holds no
	// state between rounds.
	Generate(src engine.Source, sel Selection) (Outcome, error)

	// Resolve decides win/lose and multiplier for an outcome. Deterministic:
	// the same outcome and selection always resolve identically.
	Resolve(out Outcome, sel Selection) (Resolution, error)
}

// wonFor applies the house rule for flagging wins: a round is won when the
// payout at least returns the stake. Sub-1.0 paytable entries still pay,
// but are reported as losses.
func wonFor(multiplier float64) bool {
	return multiplier >= 1.0
}

var registry = make(map[Kind]Game)

// Register adds a game to the registry. Duplicate kinds are a programmer
// error and panic at init.
func Register(g Game) {
	id := g.Spec().ID
	if _, dup := registry[id]; dup {
		panic(fmt.Sprintf("games: duplicate registration for %q", id))
	}
	registry[id] = g
}

// Get retrieves a game by kind.
func Get(kind Kind) (Game, bool) {
	g, ok := registry[kind]
	return g, ok
}

// Kinds returns all registered kinds in stable order.
func Kinds() []Kind {
	kinds := make([]Kind, 0, len(registry))
	for k := range registry {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

// List returns specs for all registered games in stable order.
func List() []Spec {
	specs := make([]Spec, 0, len(registry))
	for _, k := range Kinds() {
		specs = append(specs, registry[k].Spec())
	}
	return specs
}

func init() {
	Register(&CoinFlipGame{})
	Register(&DiceSumGame{})
	Register(&DiceOverUnderGame{})
	Register(&CardDrawGame{})
	Register(&BigSmallGame{})
	Register(&LuckyNumbersGame{})
	Register(&PlinkoGame{})
	Register(&CrashGame{})
}
