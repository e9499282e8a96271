// Package ui provides theme and color support for the application's user interface.
// It defines color schemes and provides ANSI escape code functions for consistent
// styling across the CLI, the interactive session and the winner card.
//
// This package is a shared dependency for packages that need color output,
// reducing coupling between battle logic and presentation.
package ui
