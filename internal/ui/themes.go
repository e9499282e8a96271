package ui

import (
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Theme defines a color scheme for UI output.
// Each field contains an ANSI escape code for the corresponding color category.
type Theme struct {
	// Name is the identifier of the theme.
	Name string
	// Primary is the main accent color for important elements.
	Primary string
	// Secondary is used for less prominent elements.
	Secondary string
	// Success indicates positive outcomes, such as the winner's name.
	Success string
	// Warning is used for caution messages or non-critical issues.
	Warning string
	// Error indicates failures.
	Error string
	// Info is used for informational messages.
	Info string
	// Bold is the escape code for bold text.
	Bold string
	// Underline is the escape code for underlined text.
	Underline string
	// Reset clears all formatting.
	Reset string
}

var (
	// DarkTheme is optimized for dark terminal backgrounds.
	DarkTheme = Theme{
		Name:      "dark",
		Primary:   "\033[38;5;39m",  // Bright blue
		Secondary: "\033[38;5;245m", // Grey
		Success:   "\033[38;5;82m",  // Bright green
		Warning:   "\033[38;5;220m", // Yellow
		Error:     "\033[38;5;196m", // Red
		Info:      "\033[38;5;141m", // Purple
		Bold:      "\033[1m",
		Underline: "\033[4m",
		Reset:     "\033[0m",
	}

	// LightTheme is optimized for light terminal backgrounds.
	LightTheme = Theme{
		Name:      "light",
		Primary:   "\033[38;5;27m",  // Dark blue
		Secondary: "\033[38;5;240m", // Dark grey
		Success:   "\033[38;5;28m",  // Dark green
		Warning:   "\033[38;5;130m", // Orange
		Error:     "\033[38;5;124m", // Dark red
		Info:      "\033[38;5;54m",  // Dark purple
		Bold:      "\033[1m",
		Underline: "\033[4m",
		Reset:     "\033[0m",
	}

	// NoColorTheme disables all color output.
	// Used when NO_COLOR is set or -no-color is provided.
	NoColorTheme = Theme{Name: "none"}

	currentTheme = DarkTheme
	themeMutex   sync.RWMutex
)

// CardTheme defines lipgloss-compatible colors for the winner card.
type CardTheme struct {
	Border lipgloss.TerminalColor
	Title  lipgloss.TerminalColor
	Winner lipgloss.TerminalColor
	Stat   lipgloss.TerminalColor
	Dim    lipgloss.TerminalColor
	Error  lipgloss.TerminalColor
}

var (
	// DarkCardTheme is the default card palette.
	DarkCardTheme = CardTheme{
		Border: lipgloss.Color("#FF8C00"),
		Title:  lipgloss.Color("#E0E0E0"),
		Winner: lipgloss.Color("#9ece6a"),
		Stat:   lipgloss.Color("#4488FF"),
		Dim:    lipgloss.Color("#666666"),
		Error:  lipgloss.Color("#FF4444"),
	}

	// LightCardTheme uses darker tones for light terminals.
	LightCardTheme = CardTheme{
		Border: lipgloss.Color("#B35900"),
		Title:  lipgloss.Color("#202020"),
		Winner: lipgloss.Color("#2E7D32"),
		Stat:   lipgloss.Color("#1A4DB3"),
		Dim:    lipgloss.Color("#707070"),
		Error:  lipgloss.Color("#B71C1C"),
	}

	// NoColorCardTheme renders the card with the terminal's default colors.
	NoColorCardTheme = CardTheme{
		Border: lipgloss.NoColor{},
		Title:  lipgloss.NoColor{},
		Winner: lipgloss.NoColor{},
		Stat:   lipgloss.NoColor{},
		Dim:    lipgloss.NoColor{},
		Error:  lipgloss.NoColor{},
	}
)

// GetCurrentCardTheme returns the card palette matching the active theme.
func GetCurrentCardTheme() CardTheme {
	themeMutex.RLock()
	defer themeMutex.RUnlock()

	switch currentTheme.Name {
	case NoColorTheme.Name:
		return NoColorCardTheme
	case LightTheme.Name:
		return LightCardTheme
	}
	return DarkCardTheme
}

// GetCurrentTheme returns the currently active theme in a thread-safe manner.
func GetCurrentTheme() Theme {
	themeMutex.RLock()
	defer themeMutex.RUnlock()
	return currentTheme
}

// SetCurrentTheme sets the currently active theme in a thread-safe manner.
// This is primarily used for testing purposes to restore state.
func SetCurrentTheme(t Theme) {
	themeMutex.Lock()
	defer themeMutex.Unlock()
	currentTheme = t
}

// SetTheme changes the active theme by name.
// Valid names are: "dark", "light", "none". Unknown names default to dark.
func SetTheme(name string) {
	themeMutex.Lock()
	defer themeMutex.Unlock()

	switch name {
	case "light":
		currentTheme = LightTheme
	case "none":
		currentTheme = NoColorTheme
	default:
		currentTheme = DarkTheme
	}
}

// InitTheme initializes the theme based on the noColor flag and environment.
// It respects the NO_COLOR environment variable (https://no-color.org/).
// BRAWL_THEME selects "light" or "dark" when colors are enabled.
func InitTheme(noColor bool) {
	if noColor {
		SetTheme("none")
		return
	}
	if _, exists := os.LookupEnv("NO_COLOR"); exists {
		SetTheme("none")
		return
	}
	SetTheme(os.Getenv("BRAWL_THEME"))
}
