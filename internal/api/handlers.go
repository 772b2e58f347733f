package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/tashanwin/club-settle-go/internal/engine"
	"github.com/tashanwin/club-settle-go/internal/games"
	"github.com/tashanwin/club-settle-go/internal/metrics"
	"github.com/tashanwin/club-settle-go/internal/settle"
	"github.com/tashanwin/club-settle-go/internal/store"
)

// handleSettle runs one instant round end to end: debit the stake, settle,
// credit the payout, persist the audit record.
func (s *Server) handleSettle(w http.ResponseWriter, r *http.Request) {
	var req SettleRequest
	if err := s.decode(r, &req); err != nil {
		s.writeError(w, r, http.StatusBadRequest, ErrTypeValidation, err.Error())
		return
	}

	kind := games.Kind(req.Game)
	if _, ok := games.Get(kind); !ok {
		s.writeError(w, r, http.StatusNotFound, ErrTypeGameNotFound, fmt.Sprintf("unknown game %q", req.Game))
		return
	}
	if kind == games.CrashMultiplier {
		s.writeError(w, r, http.StatusBadRequest, ErrTypeInvalidParams, "crash rounds are live; open one via /api/v1/rounds/crash")
		return
	}

	if err := s.ledger.Debit(req.Player, req.Amount); err != nil {
		s.handleError(w, r, err)
		return
	}

	settler := s.settler
	var seedHash string
	var nonce uint64
	if s.seeds != nil {
		var src engine.Source
		src, seedHash, nonce = s.seeds.Next(req.ClientSeed)
		settler = s.settler.ForSource(src)
	}

	res, err := settler.Settle(kind, settle.Bet{
		Player:    req.Player,
		Amount:    req.Amount,
		Selection: req.Selection,
	})
	if err != nil {
		// The round never ran; return the stake.
		if cerr := s.ledger.Credit(req.Player, req.Amount); cerr != nil {
			s.log.Error("stake refund failed", "player", req.Player, "err", cerr)
		}
		s.handleError(w, r, err)
		return
	}

	if res.Payout > 0 {
		if err := s.ledger.Credit(req.Player, res.Payout); err != nil {
			s.log.Error("payout credit failed", "round_id", res.RoundID, "err", err)
		}
	}

	s.persistRound(r.Context(), res, seedHash)
	metrics.RecordRound(string(kind), res.Won, req.Amount, res.Payout)

	s.writeJSON(w, http.StatusOK, s.settleResponse(res, seedHash, nonce))
}

// handleCrashStart debits the stake and opens a live multiplier round. The
// client follows the returned stream URL for ticks and cash-out.
func (s *Server) handleCrashStart(w http.ResponseWriter, r *http.Request) {
	var req CrashStartRequest
	if err := s.decode(r, &req); err != nil {
		s.writeError(w, r, http.StatusBadRequest, ErrTypeValidation, err.Error())
		return
	}

	if err := s.ledger.Debit(req.Player, req.Amount); err != nil {
		s.handleError(w, r, err)
		return
	}

	settler := s.settler
	var seedHash string
	if s.seeds != nil {
		var src engine.Source
		src, seedHash, _ = s.seeds.Next(req.ClientSeed)
		settler = s.settler.ForSource(src)
	}

	h, err := settler.StartLiveRound(settle.Bet{Player: req.Player, Amount: req.Amount})
	if err != nil {
		if cerr := s.ledger.Credit(req.Player, req.Amount); cerr != nil {
			s.log.Error("stake refund failed", "player", req.Player, "err", cerr)
		}
		s.handleError(w, r, err)
		return
	}

	s.registerLive(h)
	h.OnResolved(func(res settle.SettlementResult) {
		if res.Payout > 0 {
			if err := s.ledger.Credit(res.Bet.Player, res.Payout); err != nil {
				s.log.Error("payout credit failed", "round_id", res.RoundID, "err", err)
			}
		}
		s.persistRound(context.Background(), res, seedHash)
		metrics.RecordRound(string(res.Kind), res.Won, res.Bet.Amount, res.Payout)
		s.removeLive(res.RoundID)
	})
	go h.Run()

	s.writeJSON(w, http.StatusCreated, CrashStartResponse{
		RoundID: h.ID().String(),
		TickMs:  s.tickMs,
		Stream:  "/ws/rounds/crash/" + h.ID().String(),
	})
}

// handleCrashCashOut locks in the current multiplier for a live round. REST
// alternative to the cash_out socket message.
func (s *Server) handleCrashCashOut(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, http.StatusBadRequest, ErrTypeValidation, "malformed round id")
		return
	}
	h, ok := s.lookupLive(id)
	if !ok {
		s.writeError(w, r, http.StatusNotFound, ErrTypeRoundNotFound, "no live round with that id")
		return
	}

	accepted := h.CashOut()
	metrics.CashOuts.WithLabelValues(strconv.FormatBool(accepted)).Inc()
	if !accepted {
		s.writeError(w, r, http.StatusConflict, ErrTypeDuplicateCashOut, "round already cashed out or resolved")
		return
	}

	// An accepted cash-out resolves before CashOut returns.
	res, ok := h.Result()
	if !ok {
		s.writeError(w, r, http.StatusInternalServerError, ErrTypeInternal, "cash-out accepted but round not resolved")
		return
	}
	s.writeJSON(w, http.StatusOK, s.settleResponse(res, "", 0))
}

// handleVerify replays a round from revealed seeds and resolves it. Anyone
// holding the seeds can confirm the published outcome.
func (s *Server) handleVerify(w http.ResponseWriter, r *http.Request) {
	var req VerifyRequest
	if err := s.decode(r, &req); err != nil {
		s.writeError(w, r, http.StatusBadRequest, ErrTypeValidation, err.Error())
		return
	}

	kind := games.Kind(req.Game)
	game, ok := games.Get(kind)
	if !ok {
		s.writeError(w, r, http.StatusNotFound, ErrTypeGameNotFound, fmt.Sprintf("unknown game %q", req.Game))
		return
	}
	if err := game.ValidateSelection(req.Selection); err != nil {
		s.handleError(w, r, err)
		return
	}

	src := engine.NewSeedSource(req.ServerSeed, req.ClientSeed, req.Nonce)
	out, err := game.Generate(src, req.Selection)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	res, err := game.Resolve(out, req.Selection)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, VerifyResponse{
		Game:           req.Game,
		Outcome:        out,
		Won:            res.Won,
		Multiplier:     res.Multiplier,
		ServerSeedHash: engine.SeedHash(req.ServerSeed),
		Echo:           req,
	})
}

// handleListGames returns the registered game catalogue with the stake
// band in force for each kind.
func (s *Server) handleListGames(w http.ResponseWriter, r *http.Request) {
	specs := games.List()
	infos := make([]GameInfo, 0, len(specs))
	for _, spec := range specs {
		info := GameInfo{Spec: spec}
		if limits, ok := s.settler.Limits(spec.ID); ok {
			info.MinBet = limits.Min
			info.MaxBet = limits.Max
		}
		infos = append(infos, info)
	}
	s.writeJSON(w, http.StatusOK, GamesResponse{Games: infos})
}

// handleGetRound fetches one audit record by round id.
func (s *Server) handleGetRound(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, http.StatusBadRequest, ErrTypeValidation, "malformed round id")
		return
	}
	rec, err := s.db.GetRound(r.Context(), id)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, rec)
}

// handleListRounds lists a player's recent rounds, newest first.
func (s *Server) handleListRounds(w http.ResponseWriter, r *http.Request) {
	player := r.URL.Query().Get("player")
	if player == "" {
		s.writeError(w, r, http.StatusBadRequest, ErrTypeValidation, "player query parameter is required")
		return
	}
	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > 500 {
			s.writeError(w, r, http.StatusBadRequest, ErrTypeValidation, "limit must be 1..500")
			return
		}
		limit = n
	}
	recs, err := s.db.ListRounds(r.Context(), player, limit)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string][]store.RoundRecord{"rounds": recs})
}

// handleWallet reports a player's balance.
func (s *Server) handleWallet(w http.ResponseWriter, r *http.Request) {
	player := chi.URLParam(r, "player")
	s.writeJSON(w, http.StatusOK, WalletResponse{
		Player:  player,
		Balance: s.ledger.Balance(player),
	})
}

// handleSeed returns the active server-seed commitment.
func (s *Server) handleSeed(w http.ResponseWriter, r *http.Request) {
	if s.seeds == nil {
		s.writeError(w, r, http.StatusConflict, ErrTypeSeedMode, "service is running with per-round crypto randomness")
		return
	}
	hash, nonce := s.seeds.Commitment()
	s.writeJSON(w, http.StatusOK, SeedResponse{ServerSeedHash: hash, Nonce: nonce})
}

// handleSeedRotate reveals the active seed and commits to a fresh one.
func (s *Server) handleSeedRotate(w http.ResponseWriter, r *http.Request) {
	if s.seeds == nil {
		s.writeError(w, r, http.StatusConflict, ErrTypeSeedMode, "service is running with per-round crypto randomness")
		return
	}
	revealed, next := s.seeds.Rotate()
	s.log.Info("server seed rotated", "next_hash", next)
	s.writeJSON(w, http.StatusOK, SeedRotateResponse{
		RevealedServerSeed: revealed,
		NextServerSeedHash: next,
	})
}

// handleHealth reports liveness.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, HealthResponse{
		Status:        "ok",
		UptimeSeconds: int64(time.Since(s.startTime).Seconds()),
		Games:         len(games.Kinds()),
		Database:      s.db != nil,
	})
}

// persistRound writes the audit record; persistence failures are logged but
// never fail the round, the player already has their result.
func (s *Server) persistRound(ctx context.Context, res settle.SettlementResult, seedHash string) {
	selJSON, _ := json.Marshal(res.Bet.Selection)
	outJSON, _ := json.Marshal(res.Outcome)

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	err := s.db.SaveRound(ctx, store.RoundRecord{
		ID:             res.RoundID,
		Player:         res.Bet.Player,
		Game:           string(res.Kind),
		Amount:         res.Bet.Amount,
		SelectionJSON:  string(selJSON),
		OutcomeJSON:    string(outJSON),
		Won:            res.Won,
		Multiplier:     res.Multiplier.String(),
		Payout:         res.Payout,
		ServerSeedHash: seedHash,
		CreatedAt:      res.SettledAt,
	})
	if err != nil {
		s.log.Error("round persistence failed", "round_id", res.RoundID, "err", err)
	}
}

func (s *Server) settleResponse(res settle.SettlementResult, seedHash string, nonce uint64) SettleResponse {
	return SettleResponse{
		RoundID:        res.RoundID.String(),
		Game:           string(res.Kind),
		Outcome:        res.Outcome,
		Won:            res.Won,
		Multiplier:     res.Multiplier.String(),
		Payout:         res.Payout,
		Balance:        s.ledger.Balance(res.Bet.Player),
		ServerSeedHash: seedHash,
		Nonce:          nonce,
		SettledAt:      res.SettledAt,
	}
}
