// Package server exposes battles over HTTP:
//
//	GET /battle?first=Pikachu&second=Dracaufeu
//	GET /health
//	GET /metrics
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/agbru/brawl/internal/creature"
	apperrors "github.com/agbru/brawl/internal/errors"
	"github.com/agbru/brawl/internal/logging"
	"github.com/agbru/brawl/internal/metrics"
	"github.com/agbru/brawl/internal/orchestration"
	"github.com/agbru/brawl/internal/sysmon"
)

// BattleIDHeader carries the identifier assigned to each battle request.
const BattleIDHeader = "X-Battle-ID"

// Resolver is the battle capability the server depends on.
type Resolver interface {
	Resolve(ctx context.Context, first, second string) (creature.Creature, error)
}

// BattleResponse is the JSON body of a successful /battle call.
type BattleResponse struct {
	BattleID string            `json:"battleId"`
	First    string            `json:"first"`
	Second   string            `json:"second"`
	Winner   creature.Creature `json:"winner"`
}

// ErrorResponse is the JSON body of a failed call.
type ErrorResponse struct {
	BattleID string `json:"battleId,omitempty"`
	Error    string `json:"error"`
	Name     string `json:"name,omitempty"`
}

// HealthResponse is the JSON body of /health.
type HealthResponse struct {
	Status string       `json:"status"`
	System sysmon.Stats `json:"system"`
}

// Server is the HTTP front end of the battle resolver.
type Server struct {
	resolver Resolver
	metrics  *metrics.Collector
	logger   logging.Logger
	security SecurityConfig
	timeout  time.Duration
	sample   sysmon.Sampler
	httpSrv  *http.Server
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the server logger.
func WithLogger(l logging.Logger) Option { return func(s *Server) { s.logger = l } }

// WithSecurityConfig overrides DefaultSecurityConfig.
func WithSecurityConfig(c SecurityConfig) Option { return func(s *Server) { s.security = c } }

// WithBattleTimeout bounds each /battle request. Zero means no bound.
func WithBattleTimeout(d time.Duration) Option { return func(s *Server) { s.timeout = d } }

// WithSystemSampler replaces the cached host sampler in the health report.
func WithSystemSampler(fn sysmon.Sampler) Option { return func(s *Server) { s.sample = fn } }

// New creates a Server listening on addr.
func New(addr string, resolver Resolver, m *metrics.Collector, opts ...Option) *Server {
	s := &Server{
		resolver: resolver,
		metrics:  m,
		logger:   logging.NopLogger{},
		security: DefaultSecurityConfig(),
		sample:   sysmon.NewCachedSampler(sysmon.Sample, sysmon.DefaultRefresh),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.httpSrv = &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// Handler returns the routed, middleware-wrapped handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/battle", s.wrap(s.handleBattle))
	mux.HandleFunc("/health", s.wrap(s.handleHealth))
	mux.HandleFunc("/metrics", s.wrap(s.handleMetrics))
	return mux
}

func (s *Server) wrap(h http.HandlerFunc) http.HandlerFunc {
	return SecurityMiddleware(s.security, s.metricsMiddleware(h))
}

// Start serves until ctx is canceled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", logging.String("addr", s.httpSrv.Addr))
		errCh <- s.httpSrv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.httpSrv.Shutdown(shutdownCtx)
}

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) metricsMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.metrics.IncrementActiveRequests()
		defer s.metrics.DecrementActiveRequests()

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next(rec, r)
		s.metrics.ObserveRequest(r.URL.Path, strconv.Itoa(rec.status))
	}
}

func (s *Server) handleBattle(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.methodNotAllowed(w, r)
		return
	}

	battleID := uuid.NewString()
	w.Header().Set(BattleIDHeader, battleID)

	q := r.URL.Query()
	req := orchestration.Request{First: q.Get("first"), Second: q.Get("second")}
	if limit := s.security.MaxNameLength; limit > 0 && (len(req.First) > limit || len(req.Second) > limit) {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{BattleID: battleID, Error: "creature name too long"})
		return
	}

	ctx := r.Context()
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	winner, err := s.resolver.Resolve(ctx, req.First, req.Second)
	s.metrics.ObserveBattle(err)
	if err != nil {
		status := StatusCode(err)
		s.logger.Error("battle failed", err,
			logging.String("battle_id", battleID),
			logging.Int("status", status))
		resp := ErrorResponse{BattleID: battleID, Error: err.Error()}
		var retrievalErr apperrors.RetrievalError
		if errors.As(err, &retrievalErr) {
			resp.Name = retrievalErr.Name
		}
		writeJSON(w, status, resp)
		return
	}

	s.logger.Info("battle served",
		logging.String("battle_id", battleID),
		logging.String("winner", winner.Name),
		logging.Duration("elapsed", time.Since(start)))
	writeJSON(w, http.StatusOK, BattleResponse{
		BattleID: battleID,
		First:    req.First,
		Second:   req.Second,
		Winner:   winner,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.methodNotAllowed(w, r)
		return
	}
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", System: s.sample()})
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.methodNotAllowed(w, r)
		return
	}
	s.metrics.Handler().ServeHTTP(w, r)
}

func (s *Server) methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	s.logger.Debug("method not allowed",
		logging.String("method", r.Method),
		logging.String("path", r.URL.Path))
	w.Header().Set("Allow", http.MethodGet)
	writeJSON(w, http.StatusMethodNotAllowed, ErrorResponse{Error: "method not allowed"})
}

// StatusCode maps a battle error to an HTTP status.
func StatusCode(err error) int {
	var retrievalErr apperrors.RetrievalError
	switch {
	case err == nil:
		return http.StatusOK
	case apperrors.IsValidationError(err):
		return http.StatusBadRequest
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound
	case errors.As(err, &retrievalErr):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
