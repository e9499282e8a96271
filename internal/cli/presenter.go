package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	apperrors "github.com/agbru/brawl/internal/errors"
	"github.com/agbru/brawl/internal/format"
	"github.com/agbru/brawl/internal/ui"
)

// DisplayName returns name title-cased for display. Names are compared
// exactly elsewhere; this only affects what the user reads.
// A cases.Caser keeps state, so each call builds its own.
func DisplayName(name string) string {
	return cases.Title(language.Und, cases.NoLower).String(strings.TrimSpace(name))
}

// FormatWinnerCard renders the winner card for a resolved battle.
func FormatWinnerCard(res BattleResult) string {
	theme := ui.GetCurrentCardTheme()

	title := lipgloss.NewStyle().Bold(true).Foreground(theme.Title)
	winner := lipgloss.NewStyle().Bold(true).Foreground(theme.Winner)
	stat := lipgloss.NewStyle().Foreground(theme.Stat)
	dim := lipgloss.NewStyle().Foreground(theme.Dim)

	stats := res.Winner.CombatStats()
	lines := []string{
		title.Render(fmt.Sprintf("%s vs %s", DisplayName(res.First), DisplayName(res.Second))),
		"",
		"Winner: " + winner.Render(DisplayName(res.Winner.Name)),
		fmt.Sprintf("Attack:  %s", stat.Render(fmt.Sprint(stats.Attack))),
		fmt.Sprintf("Defense: %s", stat.Render(fmt.Sprint(stats.Defense))),
	}
	if res.Winner.ImageURL != "" {
		lines = append(lines, dim.Render(res.Winner.ImageURL))
	}
	lines = append(lines, dim.Render("resolved in "+format.FormatExecutionDuration(res.Duration)))

	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(0, 2)
	return card.Render(strings.Join(lines, "\n"))
}

// DisplayWinner writes the winner card to out.
func DisplayWinner(out io.Writer, res BattleResult) {
	fmt.Fprintln(out, FormatWinnerCard(res))
}

// DisplayQuietResult writes only the winner's name, for scripts.
func DisplayQuietResult(out io.Writer, res BattleResult) {
	fmt.Fprintln(out, res.Winner.Name)
}

// FormatError returns a one-line, user-facing description of a battle error.
func FormatError(err error) string {
	var retrievalErr apperrors.RetrievalError
	switch {
	case apperrors.IsValidationError(err):
		return "Invalid battle: " + err.Error()
	case apperrors.IsContextError(err):
		return "Battle interrupted: " + err.Error()
	case asRetrieval(err, &retrievalErr) && retrievalErr.Cause != nil:
		return fmt.Sprintf("Lookup failed: %v (%v)", err, retrievalErr.Cause)
	}
	return "Error: " + err.Error()
}

// DisplayError writes err in the error color of the active theme.
func DisplayError(out io.Writer, err error) {
	fmt.Fprintf(out, "%s%s%s\n", ui.ColorRed(), FormatError(err), ui.ColorReset())
}
