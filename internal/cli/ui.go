package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/briandowns/spinner"

	"github.com/agbru/brawl/internal/creature"
)

// SpinnerRefreshRate defines the refresh frequency of the spinner.
const SpinnerRefreshRate = 120 * time.Millisecond

// Resolver resolves a battle between two named creatures.
type Resolver interface {
	Resolve(ctx context.Context, first, second string) (creature.Creature, error)
}

// Spinner is an interface that abstracts the behavior of a terminal spinner.
// It decouples ResolveWithSpinner from a specific spinner implementation.
type Spinner interface {
	// Start begins the spinner animation.
	Start()
	// Stop halts the spinner animation.
	Stop()
	// UpdateSuffix sets the text that is displayed after the spinner.
	UpdateSuffix(suffix string)
}

// realSpinner adapts spinner.Spinner to the Spinner interface.
type realSpinner struct {
	s *spinner.Spinner
}

func (rs *realSpinner) Start() { rs.s.Start() }

func (rs *realSpinner) Stop() { rs.s.Stop() }

func (rs *realSpinner) UpdateSuffix(suffix string) { rs.s.Suffix = suffix }

var newSpinner = func(out io.Writer) Spinner {
	s := spinner.New(spinner.CharSets[11], SpinnerRefreshRate, spinner.WithWriter(out))
	return &realSpinner{s}
}

// BattleResult is the outcome of a resolved battle as presented to the user.
type BattleResult struct {
	First    string
	Second   string
	Winner   creature.Creature
	Duration time.Duration
}

// ResolveWithSpinner resolves a battle while a spinner runs on out. When
// quiet is set no spinner is shown.
func ResolveWithSpinner(ctx context.Context, r Resolver, first, second string, quiet bool, out io.Writer) (BattleResult, error) {
	if !quiet {
		s := newSpinner(out)
		s.UpdateSuffix(fmt.Sprintf(" %s vs %s...", DisplayName(first), DisplayName(second)))
		s.Start()
		defer s.Stop()
	}

	start := time.Now()
	winner, err := r.Resolve(ctx, first, second)
	if err != nil {
		return BattleResult{}, err
	}
	return BattleResult{
		First:    first,
		Second:   second,
		Winner:   winner,
		Duration: time.Since(start),
	}, nil
}
