package orchestration

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/agbru/brawl/internal/creature"
	apperrors "github.com/agbru/brawl/internal/errors"
	"github.com/agbru/brawl/internal/logging"
)

const tracerName = "github.com/agbru/brawl/internal/orchestration"

// Orchestrator resolves battles against an injected Fetcher. It holds no
// per-battle state and is safe for concurrent use.
type Orchestrator struct {
	fetcher  Fetcher
	logger   logging.Logger
	observer StateObserver
	tracer   trace.Tracer
}

// Option configures an Orchestrator during construction.
type Option func(*Orchestrator)

// WithLogger sets the logger used for lookup and outcome events.
func WithLogger(l logging.Logger) Option {
	return func(o *Orchestrator) { o.logger = l }
}

// WithObserver sets the observer notified of state transitions.
func WithObserver(obs StateObserver) Option {
	return func(o *Orchestrator) { o.observer = obs }
}

// WithTracerProvider overrides the global OpenTelemetry tracer provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(o *Orchestrator) { o.tracer = tp.Tracer(tracerName) }
}

// New creates an Orchestrator fetching creatures through fetcher.
func New(fetcher Fetcher, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		fetcher:  fetcher,
		logger:   logging.NopLogger{},
		observer: NullStateObserver{},
		tracer:   otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Resolve runs one battle between first and second and returns the winner.
//
// Validation failures are returned before any lookup starts. Both lookups
// then run concurrently and Resolve waits for both to settle; if either
// fails, the first failure to complete is returned and the comparison is
// skipped. A failing lookup does not cancel its sibling, whose result is
// discarded.
func (o *Orchestrator) Resolve(ctx context.Context, first, second string) (creature.Creature, error) {
	ctx, span := o.tracer.Start(ctx, "battle.resolve", trace.WithAttributes(
		attribute.String("battle.first", first),
		attribute.String("battle.second", second),
	))
	defer span.End()

	o.observer.OnStateChange(ctx, StateIdle)
	o.observer.OnStateChange(ctx, StateValidating)
	if err := Validate(first, second); err != nil {
		return o.fail(ctx, span, err)
	}

	o.observer.OnStateChange(ctx, StateFetching)
	var g errgroup.Group
	var contenders [2]creature.Creature
	for i, name := range [2]string{first, second} {
		g.Go(func() error {
			c, err := o.fetch(ctx, name)
			if err != nil {
				return err
			}
			contenders[i] = c
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return o.fail(ctx, span, err)
	}

	o.observer.OnStateChange(ctx, StateComparing)
	winner := creature.Winner(contenders[0], contenders[1])

	span.SetAttributes(attribute.String("battle.winner", winner.Name))
	o.logger.Info("battle resolved",
		logging.String("first", first),
		logging.String("second", second),
		logging.String("winner", winner.Name))
	o.observer.OnStateChange(ctx, StateResolved)
	return winner, nil
}

// ResolveRequest is Resolve for a Request value.
func (o *Orchestrator) ResolveRequest(ctx context.Context, req Request) (creature.Creature, error) {
	return o.Resolve(ctx, req.First, req.Second)
}

func (o *Orchestrator) fetch(ctx context.Context, name string) (creature.Creature, error) {
	ctx, span := o.tracer.Start(ctx, "battle.fetch", trace.WithAttributes(attribute.String("creature.name", name)))
	defer span.End()

	start := time.Now()
	c, err := o.fetcher.FetchByName(ctx, name)
	if err != nil {
		err = asRetrievalError(name, err)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		o.logger.Error("creature lookup failed", err, logging.String("name", name))
		return creature.Creature{}, err
	}
	o.logger.Debug("creature retrieved",
		logging.String("name", name),
		logging.Duration("elapsed", time.Since(start)))
	return c, nil
}

func (o *Orchestrator) fail(ctx context.Context, span trace.Span, err error) (creature.Creature, error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	o.observer.OnStateChange(ctx, StateFailed)
	return creature.Creature{}, err
}

// asRetrievalError returns err unchanged when it already is a RetrievalError
// and wraps it once otherwise, so callers always see the failing name.
func asRetrievalError(name string, err error) error {
	var re apperrors.RetrievalError
	if errors.As(err, &re) {
		return err
	}
	return apperrors.NewRetrievalError(name, err)
}
