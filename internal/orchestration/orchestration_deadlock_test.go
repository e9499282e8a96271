package orchestration

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/agbru/brawl/internal/creature"
	apperrors "github.com/agbru/brawl/internal/errors"
)

// fakeFetcher simulates various lookup behaviors for deadlock testing.
type fakeFetcher struct {
	behaviors map[string]string // "instant", "slow", "error", "ctx"
	delay     time.Duration
}

func (f *fakeFetcher) FetchByName(ctx context.Context, name string) (creature.Creature, error) {
	switch f.behaviors[name] {
	case "slow":
		select {
		case <-ctx.Done():
			return creature.Creature{}, ctx.Err()
		case <-time.After(f.delay):
		}
	case "error":
		return creature.Creature{}, errors.New("simulated error")
	case "ctx":
		<-ctx.Done()
		return creature.Creature{}, ctx.Err()
	}
	return creature.New(name, "", &creature.Stats{Attack: len(name)}), nil
}

// TestResolveNoDeadlock_MixedBehaviors verifies that Resolve completes
// without deadlocking under various lookup behavior combinations.
func TestResolveNoDeadlock_MixedBehaviors(t *testing.T) {
	testCases := []struct {
		name      string
		behaviors map[string]string
		wantErr   bool
	}{
		{"both_instant", map[string]string{"a": "instant", "bb": "instant"}, false},
		{"instant_and_slow", map[string]string{"a": "instant", "bb": "slow"}, false},
		{"slow_and_error", map[string]string{"a": "slow", "bb": "error"}, true},
		{"both_error", map[string]string{"a": "error", "bb": "error"}, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			o := New(&fakeFetcher{behaviors: tc.behaviors, delay: 10 * time.Millisecond})

			done := make(chan error, 1)
			go func() {
				_, err := o.Resolve(ctx, "a", "bb")
				done <- err
			}()

			select {
			case err := <-done:
				if (err != nil) != tc.wantErr {
					t.Errorf("Resolve() error = %v, wantErr %v", err, tc.wantErr)
				}
			case <-time.After(10 * time.Second):
				t.Fatal("DEADLOCK: Resolve did not complete within timeout")
			}
		})
	}
}

// TestResolveNoDeadlock_ContextCancellation verifies that cancelling the
// caller's context while lookups wait on it does not cause a deadlock and
// surfaces a retrieval error wrapping the cancellation.
func TestResolveNoDeadlock_ContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	o := New(&fakeFetcher{behaviors: map[string]string{"a": "ctx", "bb": "ctx"}})

	done := make(chan error, 1)
	go func() {
		_, err := o.Resolve(ctx, "a", "bb")
		done <- err
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		var retrievalErr apperrors.RetrievalError
		if !errors.As(err, &retrievalErr) {
			t.Fatalf("expected RetrievalError, got %v", err)
		}
		if !apperrors.IsContextError(err) {
			t.Errorf("expected context cancellation in the chain, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("DEADLOCK after context cancellation")
	}
}

// TestResolve_ConcurrentBattles runs many battles on one Orchestrator to
// check it keeps no per-battle state.
func TestResolve_ConcurrentBattles(t *testing.T) {
	o := New(&fakeFetcher{behaviors: map[string]string{}})

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			winner, err := o.Resolve(context.Background(), "Abra", "Pikachu")
			if err != nil {
				t.Errorf("Resolve() unexpected error: %v", err)
				return
			}
			if winner.Name != "Pikachu" {
				t.Errorf("winner = %q, want Pikachu", winner.Name)
			}
		}()
	}
	wg.Wait()
}
