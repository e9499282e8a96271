package orchestration

import (
	"strings"

	apperrors "github.com/agbru/brawl/internal/errors"
)

// Request is the pair of creature names of a single battle.
type Request struct {
	First  string `json:"first"`
	Second string `json:"second"`
}

// Validate checks the request names, see Validate.
func (r Request) Validate() error {
	return Validate(r.First, r.Second)
}

// Validate checks that both names are present and distinct. The first name
// is checked before the second; equality is case-sensitive.
func Validate(first, second string) error {
	if isBlank(first) {
		return apperrors.MissingNameError{Position: apperrors.First}
	}
	if isBlank(second) {
		return apperrors.MissingNameError{Position: apperrors.Second}
	}
	if first == second {
		return apperrors.SameEntityError{}
	}
	return nil
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
