// Package config parses the command-line flags and BRAWL_ environment
// variables into an AppConfig.
package config

import (
	"flag"
	"fmt"
	"io"
	"slices"
	"time"

	apperrors "github.com/agbru/brawl/internal/errors"
	"github.com/agbru/brawl/internal/pokeapi"
)

// EnvPrefix is prepended to every environment variable the configuration reads.
const EnvPrefix = "BRAWL_"

const (
	// DefaultTimeout bounds a whole battle in one-shot mode.
	DefaultTimeout = 30 * time.Second
	// DefaultCacheTTL is how long a successful lookup is reused.
	DefaultCacheTTL = 5 * time.Minute
	// DefaultLogLevel keeps the CLI output free of routine log lines.
	DefaultLogLevel = "warn"
)

// CompletionShells lists the shells -completion can generate a script for.
var CompletionShells = []string{"bash", "zsh", "fish"}

// AppConfig holds the resolved application configuration.
type AppConfig struct {
	// First and Second are the two creature names, taken from the
	// positional arguments.
	First  string
	Second string

	// APIURL is the base URL of the creature lookup API.
	APIURL string
	// Timeout bounds a single battle (one-shot and interactive modes) or a
	// single HTTP battle request (serve mode).
	Timeout time.Duration
	// RosterPath, when set, replaces the HTTP API with a local YAML roster.
	RosterPath string
	// ServeAddr, when set, starts the HTTP server on that address.
	ServeAddr string
	// CacheTTL is the lifetime of cached lookups. Zero disables the cache.
	CacheTTL time.Duration

	JSON        bool
	Quiet       bool
	NoColor     bool
	Interactive bool
	LogLevel    string
	Completion  string
	ShowVersion bool
}

// Validate checks the configuration for inconsistent values.
func (c AppConfig) Validate() error {
	if c.Timeout <= 0 {
		return apperrors.NewConfigError("timeout must be positive, got %s", c.Timeout)
	}
	if c.CacheTTL < 0 {
		return apperrors.NewConfigError("cache-ttl must not be negative, got %s", c.CacheTTL)
	}
	if c.APIURL == "" && c.RosterPath == "" {
		return apperrors.NewConfigError("either an API URL or a roster file is required")
	}
	if c.Completion != "" && !slices.Contains(CompletionShells, c.Completion) {
		return apperrors.NewConfigError("unsupported completion shell '%s' (supported: %v)", c.Completion, CompletionShells)
	}
	if c.ServeAddr != "" && c.Interactive {
		return apperrors.NewConfigError("-serve and -interactive are mutually exclusive")
	}
	return nil
}

// ParseConfig parses args (without the program name) into an AppConfig.
// Environment variables fill in every flag that was not set explicitly, so
// the priority is CLI flags, then environment, then defaults. Usage and
// parse errors are written to errOut.
func ParseConfig(programName string, args []string, errOut io.Writer) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errOut)

	config := AppConfig{}
	fs.StringVar(&config.APIURL, "api-url", pokeapi.DefaultBaseURL, "Base URL of the creature lookup API.")
	fs.DurationVar(&config.Timeout, "timeout", DefaultTimeout, "Maximum duration of a battle (e.g. 10s, 1m).")
	fs.StringVar(&config.RosterPath, "roster", "", "YAML roster file used instead of the lookup API.")
	fs.StringVar(&config.ServeAddr, "serve", "", "Start the HTTP server on this address (e.g. :8080).")
	fs.DurationVar(&config.CacheTTL, "cache-ttl", DefaultCacheTTL, "Lifetime of cached lookups (0 disables the cache).")
	fs.BoolVar(&config.JSON, "json", false, "Print the result as JSON.")
	fs.BoolVar(&config.Quiet, "quiet", false, "Print only the winner's name.")
	fs.BoolVar(&config.Quiet, "q", false, "Shorthand for -quiet.")
	fs.BoolVar(&config.NoColor, "no-color", false, "Disable colored output.")
	fs.BoolVar(&config.Interactive, "interactive", false, "Start an interactive battle session.")
	fs.BoolVar(&config.Interactive, "i", false, "Shorthand for -interactive.")
	fs.StringVar(&config.LogLevel, "log-level", DefaultLogLevel, "Log level (debug, info, warn, error).")
	fs.StringVar(&config.Completion, "completion", "", "Generate a completion script for the given shell (bash, zsh, fish).")
	fs.BoolVar(&config.ShowVersion, "version", false, "Show version information.")
	fs.BoolVar(&config.ShowVersion, "V", false, "Shorthand for -version.")

	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: %s [flags] <first> <second>\n\n", programName)
		fmt.Fprintln(fs.Output(), "Resolve a battle between two creatures.")
		fmt.Fprintln(fs.Output(), "\nFlags:")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}

	applyEnvOverrides(&config, fs)

	positional := fs.Args()
	if len(positional) > 2 {
		return AppConfig{}, apperrors.NewConfigError("expected at most two creature names, got %d", len(positional))
	}
	if len(positional) > 0 {
		config.First = positional[0]
	}
	if len(positional) > 1 {
		config.Second = positional[1]
	}

	if err := config.Validate(); err != nil {
		fmt.Fprintln(errOut, "Error:", err)
		return AppConfig{}, err
	}
	return config, nil
}
