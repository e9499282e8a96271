// # Naming Conventions
//
// Functions in this package follow consistent naming patterns based on their behavior:
//
//   - Display* functions write formatted output to an [io.Writer].
//     They handle presentation logic and colorization.
//     Examples: [DisplayWinner], [DisplayQuietResult], [DisplayError].
//
//   - Format* functions return a formatted string without performing I/O.
//     Examples: [FormatWinnerCard], [FormatError].
//
//   - Write* functions emit machine-readable output.
//     Examples: [WriteJSONResult], [WriteJSONError].

package cli

import (
	"encoding/json"
	"errors"
	"io"

	"github.com/agbru/brawl/internal/creature"
	apperrors "github.com/agbru/brawl/internal/errors"
)

// JSONResult is the -json representation of a resolved battle.
type JSONResult struct {
	First      string            `json:"first"`
	Second     string            `json:"second"`
	Winner     creature.Creature `json:"winner"`
	DurationMS int64             `json:"durationMs"`
}

// JSONError is the -json representation of a failed battle.
type JSONError struct {
	Error    string `json:"error"`
	Name     string `json:"name,omitempty"`
	ExitCode int    `json:"exitCode"`
}

// WriteJSONResult writes res as indented JSON.
func WriteJSONResult(out io.Writer, res BattleResult) error {
	return writeJSON(out, JSONResult{
		First:      res.First,
		Second:     res.Second,
		Winner:     res.Winner,
		DurationMS: res.Duration.Milliseconds(),
	})
}

// WriteJSONError writes err as indented JSON with its exit code.
func WriteJSONError(out io.Writer, err error) error {
	payload := JSONError{Error: err.Error(), ExitCode: apperrors.ExitCode(err)}
	var retrievalErr apperrors.RetrievalError
	if asRetrieval(err, &retrievalErr) {
		payload.Name = retrievalErr.Name
	}
	return writeJSON(out, payload)
}

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func asRetrieval(err error, target *apperrors.RetrievalError) bool {
	return errors.As(err, target)
}
