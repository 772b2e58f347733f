package settle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tashanwin/club-settle-go/internal/engine"
	"github.com/tashanwin/club-settle-go/internal/games"
)

// scriptedSource replays fixed draws for deterministic settlement.
type scriptedSource struct {
	floats []float64
	ints   []int
	fi, ii int
	calls  int
}

func (s *scriptedSource) Float64() float64 {
	s.calls++
	f := s.floats[s.fi]
	s.fi++
	return f
}

func (s *scriptedSource) Intn(n int) int {
	s.calls++
	v := s.ints[s.ii]
	s.ii++
	return v % n
}

func TestBetBoundsRejectedBeforeGeneration(t *testing.T) {
	src := &scriptedSource{ints: []int{0}}
	settler := New(WithSource(src))

	sess, err := settler.NewSession(games.CoinFlip)
	require.NoError(t, err)

	// Below minimum.
	_, err = sess.Settle(Bet{Player: "p1", Amount: 1, Selection: games.Selection{Side: "heads"}})
	assert.ErrorIs(t, err, ErrInvalidBet)
	// Above maximum.
	_, err = sess.Settle(Bet{Player: "p1", Amount: 99_999_999, Selection: games.Selection{Side: "heads"}})
	assert.ErrorIs(t, err, ErrInvalidBet)
	// Malformed selection.
	_, err = sess.Settle(Bet{Player: "p1", Amount: 10_00, Selection: games.Selection{Side: "rim"}})
	assert.ErrorIs(t, err, ErrInvalidBet)

	// The generator must never have been consulted, and the session must
	// still be accepting a corrected bet.
	assert.Equal(t, 0, src.calls, "randomness consumed for an invalid bet")
	assert.Equal(t, StateAwaitingBet, sess.State())

	// A corrected bet settles normally on the same session.
	result, err := sess.Settle(Bet{Player: "p1", Amount: 10_00, Selection: games.Selection{Side: "heads"}})
	require.NoError(t, err)
	assert.Equal(t, StateResolved, sess.State())
	assert.True(t, result.Won)
}

func TestCoinFlipEndToEnd(t *testing.T) {
	settler := New(
		WithSource(&scriptedSource{ints: []int{0}}), // heads
		WithLimits(map[games.Kind]Limits{games.CoinFlip: {Min: 1, Max: 1_000_000}}),
	)

	result, err := settler.Settle(games.CoinFlip, Bet{
		Player:    "p1",
		Amount:    100,
		Selection: games.Selection{Side: "heads"},
	})
	require.NoError(t, err)

	assert.True(t, result.Won)
	assert.Equal(t, "2", result.Multiplier.String())
	assert.Equal(t, int64(200), result.Payout)
	assert.Equal(t, "heads", result.Outcome.Face)
}

func TestPlinkoEndToEnd(t *testing.T) {
	// Edge slot: sixteen left decisions.
	edge := New(WithSource(&scriptedSource{ints: make([]int, 16)}))
	result, err := edge.Settle(games.Plinko, Bet{
		Player:    "p1",
		Amount:    10_00,
		Selection: games.Selection{Risk: "high", Rows: 16},
	})
	require.NoError(t, err)
	assert.True(t, result.Won)
	assert.Equal(t, "1000", result.Multiplier.String())
	assert.Equal(t, int64(10_000_00), result.Payout)
	assert.Equal(t, 0, result.Outcome.Slot)

	// Center slot: eight rights then eight lefts. 0.2x pays but is a loss.
	center := New(WithSource(&scriptedSource{ints: []int{1, 1, 1, 1, 1, 1, 1, 1, 0, 0, 0, 0, 0, 0, 0, 0}}))
	result, err = center.Settle(games.Plinko, Bet{
		Player:    "p1",
		Amount:    10_00,
		Selection: games.Selection{Risk: "high", Rows: 16},
	})
	require.NoError(t, err)
	assert.False(t, result.Won)
	assert.Equal(t, "0.2", result.Multiplier.String())
	assert.Equal(t, int64(200), result.Payout)
	assert.Equal(t, 8, result.Outcome.Slot)
}

func TestSettleDeterministicUnderFixedSource(t *testing.T) {
	bet := Bet{Player: "p1", Amount: 200_00, Selection: games.Selection{Picks: []int{4, 17, 23, 42, 63}}}

	settleOnce := func() SettlementResult {
		settler := New(WithSource(engine.NewSeedSource("det_srv", "det_cli", 9)))
		result, err := settler.Settle(games.LuckyNumbersDraw, bet)
		require.NoError(t, err)
		return result
	}

	a, b := settleOnce(), settleOnce()
	assert.Equal(t, a.Outcome, b.Outcome)
	assert.Equal(t, a.Won, b.Won)
	assert.True(t, a.Multiplier.Equal(b.Multiplier))
	assert.Equal(t, a.Payout, b.Payout)
}

func TestSessionSingleUse(t *testing.T) {
	settler := New(WithSource(&scriptedSource{ints: []int{0}}))
	sess, err := settler.NewSession(games.CoinFlip)
	require.NoError(t, err)

	_, err = sess.Settle(Bet{Player: "p1", Amount: 10_00, Selection: games.Selection{Side: "heads"}})
	require.NoError(t, err)

	_, err = sess.Settle(Bet{Player: "p1", Amount: 10_00, Selection: games.Selection{Side: "heads"}})
	assert.Error(t, err, "a resolved session must not settle a second round")
}

func TestSettleRejectsCrashKind(t *testing.T) {
	settler := New()
	_, err := settler.Settle(games.CrashMultiplier, Bet{Player: "p1", Amount: 1000_00})
	assert.Error(t, err)
}

func TestUnknownKind(t *testing.T) {
	settler := New()
	_, err := settler.NewSession(games.Kind("baccarat"))
	assert.Error(t, err)
}
