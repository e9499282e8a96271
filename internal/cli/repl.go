package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/agbru/brawl/internal/format"
	"github.com/agbru/brawl/internal/ui"
)

// REPLConfig holds configuration for the interactive session.
type REPLConfig struct {
	// Timeout is the maximum duration of each battle.
	Timeout time.Duration
	// Names lists the creatures offered by the "names" command. Empty when
	// the source cannot enumerate its creatures.
	Names []string
	// Source describes where creatures come from, for the status command.
	Source string
}

// REPL is an interactive battle session.
type REPL struct {
	config   REPLConfig
	resolver Resolver
	in       io.Reader
	out      io.Writer
	battles  int
}

// NewREPL creates a new REPL that resolves battles with r.
func NewREPL(r Resolver, config REPLConfig) *REPL {
	return &REPL{
		config:   config,
		resolver: r,
		in:       os.Stdin,
		out:      os.Stdout,
	}
}

// SetInput sets a custom input reader (useful for testing).
func (r *REPL) SetInput(in io.Reader) {
	r.in = in
}

// SetOutput sets a custom output writer (useful for testing).
func (r *REPL) SetOutput(out io.Writer) {
	r.out = out
}

// Start reads commands until the user exits, input ends or ctx is canceled.
func (r *REPL) Start(ctx context.Context) {
	r.printBanner()
	r.printHelp()
	fmt.Fprintln(r.out)

	reader := bufio.NewReader(r.in)

	for ctx.Err() == nil {
		fmt.Fprint(r.out, ui.ColorGreen()+"brawl> "+ui.ColorReset())

		input, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			fmt.Fprintf(r.out, "%sRead error: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
			return
		}

		if line := strings.TrimSpace(input); line != "" {
			if !r.processCommand(ctx, line) {
				return
			}
		}
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(r.out, "\nGoodbye!")
			return
		}
	}
}

func (r *REPL) printBanner() {
	fmt.Fprintf(r.out, "\n%s%sCreature Battle - Interactive Mode%s\n\n", ui.ColorBold(), ui.ColorBlue(), ui.ColorReset())
}

func (r *REPL) printHelp() {
	fmt.Fprintf(r.out, "%sAvailable commands:%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sbattle <first> <second>%s   - Resolve a battle\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %s<first> vs <second>%s        - Resolve a battle (names may contain spaces)\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %snames%s                     - List known creatures\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sstatus%s                    - Display current configuration\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %shelp%s                      - Display this help\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sexit%s / %squit%s               - Exit interactive mode\n", ui.ColorYellow(), ui.ColorReset(), ui.ColorYellow(), ui.ColorReset())
}

// processCommand parses and executes a user command.
// Returns false if the REPL should exit.
func (r *REPL) processCommand(ctx context.Context, input string) bool {
	if first, second, ok := strings.Cut(input, " vs "); ok {
		r.battle(ctx, strings.TrimSpace(first), strings.TrimSpace(second))
		return true
	}

	parts := strings.Fields(input)
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "battle", "b":
		r.cmdBattle(ctx, args)
	case "names", "ls":
		r.cmdNames()
	case "status", "st":
		r.cmdStatus()
	case "help", "h", "?":
		r.printHelp()
	case "exit", "quit", "q":
		fmt.Fprintf(r.out, "%sGoodbye!%s\n", ui.ColorGreen(), ui.ColorReset())
		return false
	default:
		fmt.Fprintf(r.out, "%sUnknown command: %s%s\n", ui.ColorRed(), cmd, ui.ColorReset())
		fmt.Fprintf(r.out, "Type %shelp%s to see available commands.\n", ui.ColorYellow(), ui.ColorReset())
	}
	return true
}

func (r *REPL) cmdBattle(ctx context.Context, args []string) {
	if len(args) > 2 {
		fmt.Fprintf(r.out, "%sUsage: battle <first> <second> (use \"<first> vs <second>\" for names with spaces)%s\n", ui.ColorRed(), ui.ColorReset())
		return
	}
	// Missing names go through to the validator so the user sees the same
	// message as on the command line.
	var first, second string
	if len(args) > 0 {
		first = args[0]
	}
	if len(args) > 1 {
		second = args[1]
	}
	r.battle(ctx, first, second)
}

func (r *REPL) battle(ctx context.Context, first, second string) {
	ctx, cancel := context.WithTimeout(ctx, r.config.Timeout)
	defer cancel()

	res, err := ResolveWithSpinner(ctx, r.resolver, first, second, false, r.out)
	if err != nil {
		DisplayError(r.out, err)
		return
	}
	r.battles++
	DisplayWinner(r.out, res)
}

func (r *REPL) cmdNames() {
	if len(r.config.Names) == 0 {
		fmt.Fprintf(r.out, "%sThe current source cannot list its creatures.%s\n", ui.ColorYellow(), ui.ColorReset())
		return
	}
	fmt.Fprintf(r.out, "%sKnown creatures:%s\n", ui.ColorBold(), ui.ColorReset())
	for _, name := range r.config.Names {
		fmt.Fprintf(r.out, "  %s\n", name)
	}
}

func (r *REPL) cmdStatus() {
	fmt.Fprintf(r.out, "%sCurrent configuration:%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(r.out, "  Source:  %s%s%s\n", ui.ColorMagenta(), r.config.Source, ui.ColorReset())
	fmt.Fprintf(r.out, "  Timeout: %s%s%s\n", ui.ColorMagenta(), format.FormatExecutionDuration(r.config.Timeout), ui.ColorReset())
	fmt.Fprintf(r.out, "  Battles: %s%d%s\n", ui.ColorMagenta(), r.battles, ui.ColorReset())
}
