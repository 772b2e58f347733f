package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tashanwin/club-settle-go/internal/metrics"
	"github.com/tashanwin/club-settle-go/internal/settle"
	"github.com/tashanwin/club-settle-go/internal/store"
	"github.com/tashanwin/club-settle-go/internal/wallet"
)

// Server exposes the settlement engine over HTTP and WebSocket.
type Server struct {
	settler     *settle.Settler
	db          store.DB
	ledger      wallet.Ledger
	validate    *validator.Validate
	log         *slog.Logger
	corsOrigins []string
	tickMs      int64
	upgrader    websocket.Upgrader
	seeds       *SeedChain
	startTime   time.Time

	mu   sync.Mutex
	live map[uuid.UUID]*settle.LiveHandle
}

// ServerOption configures a Server.
type ServerOption func(*Server)

// WithLogger sets the structured logger.
func WithLogger(log *slog.Logger) ServerOption {
	return func(s *Server) { s.log = log }
}

// WithCORSOrigins sets the allowed CORS origins.
func WithCORSOrigins(origins []string) ServerOption {
	return func(s *Server) { s.corsOrigins = origins }
}

// WithTickMs advertises the live tick period to clients.
func WithTickMs(ms int64) ServerOption {
	return func(s *Server) { s.tickMs = ms }
}

// WithSeedChain enables provably fair rounds: each round draws from the
// chain's current server seed and the response carries the commitment.
func WithSeedChain(chain *SeedChain) ServerOption {
	return func(s *Server) { s.seeds = chain }
}

// NewServer wires the settlement engine, audit store and ledger into an
// HTTP server.
func NewServer(settler *settle.Settler, db store.DB, ledger wallet.Ledger, opts ...ServerOption) *Server {
	s := &Server{
		settler:     settler,
		db:          db,
		ledger:      ledger,
		validate:    validator.New(),
		log:         slog.Default(),
		corsOrigins: []string{"*"},
		tickMs:      50,
		startTime:   time.Now(),
		live:        make(map[uuid.UUID]*settle.LiveHandle),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		// Browser clients send arbitrary origins; CORS policy is enforced
		// on the REST surface that issued the round id.
		CheckOrigin: func(r *http.Request) bool { return true },
	}
	return s
}

// Routes sets up the HTTP routes with middleware.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(metrics.Middleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.corsOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/health", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(chimw.Timeout(60 * time.Second))
		r.Post("/settle", s.handleSettle)
		r.Post("/verify", s.handleVerify)
		r.Get("/games", s.handleListGames)
		r.Get("/rounds/{id}", s.handleGetRound)
		r.Get("/rounds", s.handleListRounds)
		r.Post("/rounds/crash", s.handleCrashStart)
		r.Post("/rounds/crash/{id}/cashout", s.handleCrashCashOut)
		r.Get("/wallet/{player}", s.handleWallet)
		r.Get("/seed", s.handleSeed)
		r.Post("/seed/rotate", s.handleSeedRotate)
	})

	r.Get("/ws/rounds/crash/{id}", s.handleCrashStream)

	return r
}

// writeJSON writes a JSON response with proper headers.
func (s *Server) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Error("response encoding failed", "err", err)
	}
}

// decode parses and validates a JSON request body.
func (s *Server) decode(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return err
	}
	return s.validate.Struct(dst)
}

func (s *Server) registerLive(h *settle.LiveHandle) {
	s.mu.Lock()
	s.live[h.ID()] = h
	s.mu.Unlock()
	metrics.LiveRoundsActive.Inc()
}

func (s *Server) lookupLive(id uuid.UUID) (*settle.LiveHandle, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	h, ok := s.live[id]
	return h, ok
}

func (s *Server) removeLive(id uuid.UUID) {
	s.mu.Lock()
	_, ok := s.live[id]
	delete(s.live, id)
	s.mu.Unlock()
	if ok {
		metrics.LiveRoundsActive.Dec()
	}
}
