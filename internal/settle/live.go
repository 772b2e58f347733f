package settle

import (
	"math"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tashanwin/club-settle-go/internal/games"
)

// tickStep is the canonical additive ramp: +0.01 per tick from 1.00.
const tickStep = 0.01

// LiveHandle drives one crash round. The crash point is fixed the moment the
// round starts and lives in an unexported field: nothing can read it before
// the round resolves. The number of ticks to the crash is computed up front,
// so a stalled or abandoned consumer cannot change the outcome.
type LiveHandle struct {
	id       uuid.UUID
	bet      Bet
	game     games.Game
	interval time.Duration
	settler  *Settler

	mu         sync.Mutex
	crashPoint float64
	totalTicks int
	tickIndex  int
	cashed     bool
	cashoutAt  float64
	resolved   bool
	result     SettlementResult
	onTick     []func(multiplier float64)
	onResolved []func(SettlementResult)

	stop     chan struct{}
	stopOnce sync.Once
}

// StartLiveRound validates the bet and fixes the crash point for one crash
// round. The handle starts in Live state but does not tick until Run is
// called, so callbacks can be attached first.
func (s *Settler) StartLiveRound(bet Bet) (*LiveHandle, error) {
	sess, err := s.NewSession(games.CrashMultiplier)
	if err != nil {
		return nil, err
	}
	if err := validateBet(sess.game, sess.limits, bet); err != nil {
		return nil, err
	}

	sess.state = StateGenerating
	out, err := sess.game.Generate(sess.src, bet.Selection)
	if err != nil {
		return nil, err
	}
	sess.state = StateLive

	h := &LiveHandle{
		id:         sess.id,
		bet:        bet,
		game:       sess.game,
		interval:   s.tickInterval,
		settler:    s,
		crashPoint: out.CrashPoint,
		// Tick count in hundredth steps from 1.00 to the crash point,
		// computed in cents so float division cannot shave a tick.
		totalTicks: int(math.Round(out.CrashPoint*100)) - 100,
		stop:       make(chan struct{}),
	}
	return h, nil
}

// ID returns the round identifier.
func (h *LiveHandle) ID() uuid.UUID { return h.id }

// OnTick registers a callback fired with the current multiplier at each
// tick. Register before Run.
func (h *LiveHandle) OnTick(fn func(multiplier float64)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onTick = append(h.onTick, fn)
}

// OnResolved registers a callback fired once with the terminal result. If
// the round has already resolved the callback fires immediately.
func (h *LiveHandle) OnResolved(fn func(SettlementResult)) {
	h.mu.Lock()
	if h.resolved {
		result := h.result
		h.mu.Unlock()
		fn(result)
		return
	}
	h.onResolved = append(h.onResolved, fn)
	h.mu.Unlock()
}

// Run starts the tick loop. It returns when the round resolves or is
// abandoned; most callers run it in its own goroutine.
func (h *LiveHandle) Run() {
	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	for {
		select {
		case <-h.stop:
			return
		case <-ticker.C:
			if h.tick() {
				return
			}
		}
	}
}

// tick advances the ramp by one step. Returns true when the round resolved.
func (h *LiveHandle) tick() bool {
	h.mu.Lock()
	if h.resolved {
		h.mu.Unlock()
		return true
	}

	h.tickIndex++
	current := multiplierAt(h.tickIndex)

	if h.tickIndex >= h.totalTicks {
		// Ramp reached the crash point with no cash-out.
		h.resolveLocked(games.Selection{})
		return true
	}

	callbacks := append([]func(float64){}, h.onTick...)
	h.mu.Unlock()

	for _, fn := range callbacks {
		fn(current)
	}
	return false
}

// CashOut locks in the multiplier at the current tick. Only the first call
// is honored and returns true; duplicates and post-resolution calls are
// logged no-ops.
func (h *LiveHandle) CashOut() bool {
	h.mu.Lock()
	if h.resolved {
		h.mu.Unlock()
		h.settler.log.Debug("late cash-out ignored", "round_id", h.id)
		return false
	}
	if h.cashed {
		h.mu.Unlock()
		h.settler.log.Debug("duplicate cash-out ignored", "round_id", h.id)
		return false
	}
	h.cashed = true
	h.cashoutAt = multiplierAt(h.tickIndex)
	h.resolveLocked(games.Selection{CashoutAt: h.cashoutAt})
	return true
}

// Abandon resolves the round as if the consumer had let the ramp run out.
// Deterministic: with no cash-out possible the outcome is already a loss,
// so it is settled immediately instead of replaying wall-clock ticks.
func (h *LiveHandle) Abandon() {
	h.mu.Lock()
	if h.resolved {
		h.mu.Unlock()
		return
	}
	h.resolveLocked(games.Selection{})
}

// Result returns the terminal result once resolved.
func (h *LiveHandle) Result() (SettlementResult, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.resolved {
		return SettlementResult{}, false
	}
	return h.result, true
}

// resolveLocked settles the round against the fixed crash point. Called with
// h.mu held; releases it before firing callbacks.
func (h *LiveHandle) resolveLocked(sel games.Selection) {
	out := games.Outcome{Kind: games.CrashMultiplier, CrashPoint: h.crashPoint}
	res, err := h.game.Resolve(out, sel)
	if err != nil {
		// Crash resolution only fails on malformed outcomes, which cannot
		// happen past Generate; settle as a loss and log loudly.
		h.settler.log.Error("crash resolution failed", "round_id", h.id, "err", err)
		res = games.Resolution{Won: false, Multiplier: 0}
	}

	mult, payout := PayoutFor(h.bet.Amount, res.Multiplier)
	h.result = SettlementResult{
		RoundID:    h.id,
		Kind:       games.CrashMultiplier,
		Bet:        h.bet,
		Outcome:    out,
		Won:        res.Won,
		Multiplier: mult,
		Payout:     payout,
		SettledAt:  time.Now().UTC(),
	}
	h.resolved = true
	callbacks := append([]func(SettlementResult){}, h.onResolved...)
	result := h.result
	h.mu.Unlock()

	h.stopOnce.Do(func() { close(h.stop) })
	for _, fn := range callbacks {
		fn(result)
	}
}

// multiplierAt converts a tick index into the displayed multiplier, rounded
// to 2 decimals to keep the additive ramp free of float drift.
func multiplierAt(tick int) float64 {
	return math.Round((1.00+float64(tick)*tickStep)*100) / 100
}
