// Package metrics exposes battle and lookup metrics through Prometheus.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/agbru/brawl/internal/creature"
	apperrors "github.com/agbru/brawl/internal/errors"
	"github.com/agbru/brawl/internal/orchestration"
)

const namespace = "brawl"

// Battle outcome label values.
const (
	OutcomeResolved  = "resolved"
	OutcomeInvalid   = "invalid"
	OutcomeNotFound  = "not_found"
	OutcomeRetrieval = "retrieval_failed"
	OutcomeTimeout   = "timeout"
	OutcomeCanceled  = "canceled"
	OutcomeError     = "error"
)

// Collector owns a private Prometheus registry so several instances can
// coexist (tests, embedded servers) without duplicate registration panics.
type Collector struct {
	registry       *prometheus.Registry
	battles        *prometheus.CounterVec
	states         *prometheus.CounterVec
	fetchDuration  *prometheus.HistogramVec
	requests       *prometheus.CounterVec
	activeRequests prometheus.Gauge
}

// NewCollector creates a Collector with Go runtime and process collectors
// registered alongside the battle metrics.
func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		battles: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "battles_total",
			Help:      "Battles processed, by outcome.",
		}, []string{"outcome"}),
		states: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "battle_states_total",
			Help:      "Battle state transitions, by state entered.",
		}, []string{"state"}),
		fetchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "fetch_duration_seconds",
			Help:      "Creature lookup latency, by result.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"result"}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "requests_total",
			Help:      "HTTP requests served, by path and status code.",
		}, []string{"path", "code"}),
		activeRequests: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_requests",
			Help:      "HTTP requests currently in flight.",
		}),
	}
	c.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		c.battles, c.states, c.fetchDuration, c.requests, c.activeRequests,
	)
	return c
}

// Registry returns the underlying registry.
func (c *Collector) Registry() *prometheus.Registry { return c.registry }

// Handler serves the registry in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// ObserveBattle counts a finished battle under the outcome derived from err.
func (c *Collector) ObserveBattle(err error) {
	c.battles.WithLabelValues(Outcome(err)).Inc()
}

// OnStateChange implements orchestration.StateObserver.
func (c *Collector) OnStateChange(_ context.Context, state orchestration.State) {
	c.states.WithLabelValues(state.String()).Inc()
}

// IncrementActiveRequests marks the start of an HTTP request.
func (c *Collector) IncrementActiveRequests() { c.activeRequests.Inc() }

// DecrementActiveRequests marks the end of an HTTP request.
func (c *Collector) DecrementActiveRequests() { c.activeRequests.Dec() }

// ObserveRequest counts a served HTTP request.
func (c *Collector) ObserveRequest(path, code string) {
	c.requests.WithLabelValues(path, code).Inc()
}

// InstrumentFetcher wraps f so every lookup is timed.
func (c *Collector) InstrumentFetcher(f orchestration.Fetcher) orchestration.Fetcher {
	return orchestration.FetcherFunc(func(ctx context.Context, name string) (creature.Creature, error) {
		start := time.Now()
		cr, err := f.FetchByName(ctx, name)
		result := "ok"
		if err != nil {
			result = Outcome(err)
		}
		c.fetchDuration.WithLabelValues(result).Observe(time.Since(start).Seconds())
		return cr, err
	})
}

// Outcome classifies a battle or lookup error into a label value.
func Outcome(err error) string {
	var retrievalErr apperrors.RetrievalError
	switch {
	case err == nil:
		return OutcomeResolved
	case apperrors.IsValidationError(err):
		return OutcomeInvalid
	case errors.Is(err, context.DeadlineExceeded):
		return OutcomeTimeout
	case errors.Is(err, context.Canceled):
		return OutcomeCanceled
	case errors.Is(err, apperrors.ErrNotFound):
		return OutcomeNotFound
	case errors.As(err, &retrievalErr):
		return OutcomeRetrieval
	}
	return OutcomeError
}
