//go:generate mockgen -source=interfaces.go -destination=mocks/mock_interfaces.go -package=mocks

package orchestration

import (
	"context"

	"github.com/agbru/brawl/internal/creature"
)

// Fetcher retrieves a creature by name. Implementations must fail with an
// apperrors.RetrievalError carrying the queried name when the name is
// unknown or the underlying lookup fails. Timeouts are the implementation's
// responsibility; the orchestrator imposes none.
type Fetcher interface {
	FetchByName(ctx context.Context, name string) (creature.Creature, error)
}

// FetcherFunc is a function adapter that implements Fetcher.
type FetcherFunc func(ctx context.Context, name string) (creature.Creature, error)

// FetchByName calls the underlying function.
func (f FetcherFunc) FetchByName(ctx context.Context, name string) (creature.Creature, error) {
	return f(ctx, name)
}

// StateObserver is notified of every state transition of a battle. It is
// called synchronously from the resolving goroutine and must not block.
type StateObserver interface {
	OnStateChange(ctx context.Context, state State)
}

// StateObserverFunc is a function adapter that implements StateObserver.
type StateObserverFunc func(ctx context.Context, state State)

// OnStateChange calls the underlying function.
func (f StateObserverFunc) OnStateChange(ctx context.Context, state State) {
	f(ctx, state)
}

// NullStateObserver ignores all transitions.
type NullStateObserver struct{}

// OnStateChange does nothing.
func (NullStateObserver) OnStateChange(context.Context, State) {}
