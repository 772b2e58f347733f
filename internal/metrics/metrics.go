package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Current number of HTTP requests being served",
		},
	)
)

// Settlement metrics
var (
	RoundsSettled = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rounds_settled_total",
			Help: "Total number of settled rounds",
		},
		[]string{"game", "result"},
	)

	AmountWagered = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "amount_wagered_paise_total",
			Help: "Total amount wagered in paise",
		},
		[]string{"game"},
	)

	AmountPaid = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "amount_paid_paise_total",
			Help: "Total amount paid out in paise",
		},
		[]string{"game"},
	)

	LiveRoundsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "live_rounds_active",
			Help: "Current number of live multiplier rounds in flight",
		},
	)

	CashOuts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cash_outs_total",
			Help: "Total number of cash-out attempts",
		},
		[]string{"accepted"},
	)
)

// RecordRound updates the settlement counters for one resolved round.
func RecordRound(game string, won bool, amount, payout int64) {
	result := "lost"
	if won {
		result = "won"
	}
	RoundsSettled.WithLabelValues(game, result).Inc()
	AmountWagered.WithLabelValues(game).Add(float64(amount))
	AmountPaid.WithLabelValues(game).Add(float64(payout))
}
