package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/agbru/brawl/internal/creature"
	apperrors "github.com/agbru/brawl/internal/errors"
	"github.com/agbru/brawl/internal/metrics"
	"github.com/agbru/brawl/internal/orchestration"
	"github.com/agbru/brawl/internal/roster"
	"github.com/agbru/brawl/internal/sysmon"
)

const testRoster = `
creatures:
  - name: Pikachu
    image: url1
    stats: {attack: 2, defense: 2}
  - name: Dracaufeu
    image: url2
    stats: {attack: 1, defense: 1}
`

func newTestServer(t *testing.T, opts ...Option) *Server {
	t.Helper()
	r, err := roster.Parse(strings.NewReader(testRoster))
	if err != nil {
		t.Fatalf("roster.Parse: %v", err)
	}
	return New(":0", orchestration.New(r), metrics.NewCollector(), opts...)
}

func get(t *testing.T, s *Server, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, http.NoBody))
	return rec
}

func TestHandleBattle_Winner(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)

	rec := get(t, s, "/battle?first=Pikachu&second=Dracaufeu")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp BattleResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Winner.Name != "Pikachu" || resp.Winner.ImageURL != "url1" {
		t.Errorf("winner = %+v", resp.Winner)
	}
	if resp.Winner.CombatStats() != (creature.Stats{Attack: 2, Defense: 2}) {
		t.Errorf("winner stats = %+v", resp.Winner.Stats)
	}
	if _, err := uuid.Parse(resp.BattleID); err != nil {
		t.Errorf("battleId %q is not a UUID: %v", resp.BattleID, err)
	}
	if rec.Header().Get(BattleIDHeader) != resp.BattleID {
		t.Errorf("%s header = %q, want %q", BattleIDHeader, rec.Header().Get(BattleIDHeader), resp.BattleID)
	}
}

func TestHandleBattle_Errors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name       string
		target     string
		wantStatus int
		wantError  string
		wantName   string
	}{
		{"first missing", "/battle?second=Dracaufeu", http.StatusBadRequest, "the first entity is not specified", ""},
		{"second missing", "/battle?first=Pikachu", http.StatusBadRequest, "the second entity is not specified", ""},
		{"same creature", "/battle?first=Pikachu&second=Pikachu", http.StatusBadRequest, "an entity cannot battle against itself", ""},
		{"unknown creature", "/battle?first=Pikachu&second=Mew", http.StatusNotFound, "unable to retrieve details for 'Mew'", "Mew"},
		{"name too long", "/battle?first=" + strings.Repeat("a", 65) + "&second=Mew", http.StatusBadRequest, "creature name too long", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rec := get(t, newTestServer(t), tt.target)
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (body %s)", rec.Code, tt.wantStatus, rec.Body.String())
			}
			var resp ErrorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("decode response: %v", err)
			}
			if resp.Error != tt.wantError || resp.Name != tt.wantName {
				t.Errorf("response = %+v, want error %q name %q", resp, tt.wantError, tt.wantName)
			}
		})
	}
}

func TestHandleBattle_Timeout(t *testing.T) {
	t.Parallel()
	slow := orchestration.FetcherFunc(func(ctx context.Context, name string) (creature.Creature, error) {
		<-ctx.Done()
		return creature.Creature{}, ctx.Err()
	})
	s := New(":0", orchestration.New(slow), metrics.NewCollector(), WithBattleTimeout(20*time.Millisecond))

	rec := get(t, s, "/battle?first=Pikachu&second=Dracaufeu")
	if rec.Code != http.StatusGatewayTimeout {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusGatewayTimeout)
	}
}

func TestHandleBattle_MethodNotAllowed(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)
	for _, method := range []string{http.MethodPost, http.MethodPut, http.MethodDelete} {
		rec := httptest.NewRecorder()
		s.Handler().ServeHTTP(rec, httptest.NewRequest(method, "/battle", http.NoBody))
		if rec.Code != http.StatusMethodNotAllowed {
			t.Errorf("%s /battle status = %d, want %d", method, rec.Code, http.StatusMethodNotAllowed)
		}
	}
}

func TestHandleHealth(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, WithSystemSampler(func() sysmon.Stats {
		return sysmon.Stats{CPUPercent: 12.5, MemPercent: 40}
	}))
	rec := get(t, s, "/health")
	if rec.Code != http.StatusOK {
		t.Fatalf("health = %d %s", rec.Code, rec.Body.String())
	}
	var resp HealthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	want := HealthResponse{Status: "ok", System: sysmon.Stats{CPUPercent: 12.5, MemPercent: 40}}
	if resp != want {
		t.Errorf("health = %+v, want %+v", resp, want)
	}
	if rec.Header().Get("X-Frame-Options") != "DENY" {
		t.Error("security headers should wrap /health")
	}
}

func TestHandleMetrics(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)
	get(t, s, "/battle?first=Pikachu&second=Dracaufeu")
	get(t, s, "/battle?first=Pikachu")

	rec := get(t, s, "/metrics")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{
		`brawl_battles_total{outcome="resolved"} 1`,
		`brawl_battles_total{outcome="invalid"} 1`,
		`brawl_requests_total{code="400",path="/battle"} 1`,
		"brawl_active_requests",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("metrics output should contain %q", want)
		}
	}

	post := httptest.NewRecorder()
	s.Handler().ServeHTTP(post, httptest.NewRequest(http.MethodPost, "/metrics", http.NoBody))
	if post.Code != http.StatusMethodNotAllowed {
		t.Errorf("POST /metrics status = %d", post.Code)
	}
}

func TestStatusCode(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, http.StatusOK},
		{"validation", apperrors.SameEntityError{}, http.StatusBadRequest},
		{"not found", apperrors.NewRetrievalError("Mew", apperrors.ErrNotFound), http.StatusNotFound},
		{"upstream failure", apperrors.NewRetrievalError("Mew", errors.New("reset")), http.StatusBadGateway},
		{"deadline", apperrors.NewRetrievalError("Mew", context.DeadlineExceeded), http.StatusGatewayTimeout},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := StatusCode(tt.err); got != tt.want {
			t.Errorf("%s: StatusCode() = %d, want %d", tt.name, got, tt.want)
		}
	}
}

func TestStart_ShutsDownOnCancel(t *testing.T) {
	t.Parallel()
	s := New("127.0.0.1:0", orchestration.New(orchestration.FetcherFunc(nil)), metrics.NewCollector())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Start(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Start() = %v, want nil after shutdown", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
