package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os/signal"
	"syscall"

	"github.com/agbru/brawl/internal/cli"
	"github.com/agbru/brawl/internal/config"
	apperrors "github.com/agbru/brawl/internal/errors"
	"github.com/agbru/brawl/internal/logging"
	"github.com/agbru/brawl/internal/metrics"
	"github.com/agbru/brawl/internal/orchestration"
	"github.com/agbru/brawl/internal/pokeapi"
	"github.com/agbru/brawl/internal/roster"
	"github.com/agbru/brawl/internal/server"
	"github.com/agbru/brawl/internal/ui"
)

// Application represents the brawl application instance.
type Application struct {
	Config    config.AppConfig
	Fetcher   orchestration.Fetcher
	Logger    logging.Logger
	ErrWriter io.Writer
	// In is read by the interactive session. Defaults to standard input.
	In io.Reader

	// names and source describe the creature source for completion and the
	// interactive session.
	names  []string
	source string
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithFetcher replaces the fetcher built from the configuration.
func WithFetcher(f orchestration.Fetcher) AppOption {
	return func(a *Application) { a.Fetcher = f }
}

// WithLogger sets the application logger.
func WithLogger(l logging.Logger) AppOption {
	return func(a *Application) { a.Logger = l }
}

// WithInput sets the reader used by the interactive session.
func WithInput(r io.Reader) AppOption {
	return func(a *Application) { a.In = r }
}

// New creates a new Application instance by parsing command-line arguments.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	app := &Application{ErrWriter: errWriter}
	for _, opt := range opts {
		opt(app)
	}

	programName := "brawl"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter)
	if err != nil {
		return nil, err
	}
	if err := logging.ParseLevel(cfg.LogLevel); err != nil {
		fmt.Fprintln(errWriter, "Error:", err)
		return nil, apperrors.NewConfigError("invalid log level '%s'", cfg.LogLevel)
	}
	app.Config = cfg

	if app.Logger == nil {
		app.Logger = logging.NewLogger(errWriter, "brawl")
	}
	if err := app.initFetcher(); err != nil {
		fmt.Fprintln(errWriter, "Error:", err)
		return nil, err
	}
	return app, nil
}

// initFetcher builds the creature source unless one was injected.
func (a *Application) initFetcher() error {
	if a.Fetcher != nil {
		a.source = "custom"
		return nil
	}
	if a.Config.RosterPath != "" {
		r, err := roster.Load(a.Config.RosterPath)
		if err != nil {
			return apperrors.ConfigError{Message: err.Error()}
		}
		a.Fetcher = r
		a.names = r.Names()
		a.source = "roster " + a.Config.RosterPath
		return nil
	}
	a.Fetcher = pokeapi.NewClient(
		pokeapi.WithBaseURL(a.Config.APIURL),
		pokeapi.WithCacheTTL(a.Config.CacheTTL),
		pokeapi.WithLogger(a.Logger),
	)
	a.source = a.Config.APIURL
	return nil
}

// Run executes the application based on the configured mode and returns
// the process exit code.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	if a.Config.ShowVersion {
		PrintVersion(out)
		return apperrors.ExitSuccess
	}
	if a.Config.Completion != "" {
		return a.runCompletion(out)
	}

	ui.InitTheme(a.Config.NoColor || a.Config.JSON)

	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	collector := metrics.NewCollector()
	orch := orchestration.New(collector.InstrumentFetcher(a.Fetcher),
		orchestration.WithLogger(a.Logger),
		orchestration.WithObserver(collector))

	switch {
	case a.Config.ServeAddr != "":
		return a.runServer(ctx, orch, collector)
	case a.Config.Interactive:
		return a.runInteractive(ctx, orch, out)
	}
	return a.runBattle(ctx, orch, out)
}

// runCompletion generates shell completion scripts.
func (a *Application) runCompletion(out io.Writer) int {
	if err := cli.GenerateCompletion(out, a.Config.Completion, a.names); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error generating completion: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	return apperrors.ExitSuccess
}

// runBattle resolves the battle named on the command line.
func (a *Application) runBattle(ctx context.Context, r cli.Resolver, out io.Writer) int {
	ctx, cancelTimeout := context.WithTimeout(ctx, a.Config.Timeout)
	defer cancelTimeout()

	quiet := a.Config.Quiet || a.Config.JSON
	res, err := cli.ResolveWithSpinner(ctx, r, a.Config.First, a.Config.Second, quiet, a.ErrWriter)
	if err != nil {
		if a.Config.JSON {
			_ = cli.WriteJSONError(out, err)
		} else {
			cli.DisplayError(a.ErrWriter, err)
		}
		return apperrors.ExitCode(err)
	}

	switch {
	case a.Config.JSON:
		if err := cli.WriteJSONResult(out, res); err != nil {
			a.Logger.Error("write result", err)
			return apperrors.ExitErrorGeneric
		}
	case a.Config.Quiet:
		cli.DisplayQuietResult(out, res)
	default:
		cli.DisplayWinner(out, res)
	}
	return apperrors.ExitSuccess
}

// runInteractive starts the interactive battle session on out.
func (a *Application) runInteractive(ctx context.Context, r cli.Resolver, out io.Writer) int {
	repl := cli.NewREPL(r, cli.REPLConfig{
		Timeout: a.Config.Timeout,
		Names:   a.names,
		Source:  a.source,
	})
	repl.SetOutput(out)
	if a.In != nil {
		repl.SetInput(a.In)
	}
	repl.Start(ctx)
	return apperrors.ExitSuccess
}

// runServer serves battles over HTTP until ctx is canceled.
func (a *Application) runServer(ctx context.Context, r server.Resolver, collector *metrics.Collector) int {
	srv := server.New(a.Config.ServeAddr, r, collector,
		server.WithLogger(a.Logger),
		server.WithBattleTimeout(a.Config.Timeout))
	if err := srv.Start(ctx); err != nil {
		a.Logger.Error("server stopped", err)
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}

// IsHelpError checks if the error is a help flag error (--help was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
