package roster

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/agbru/brawl/internal/creature"
	apperrors "github.com/agbru/brawl/internal/errors"
)

const sample = `
creatures:
  - name: Pikachu
    image: url1
    stats: {attack: 2, defense: 2}
  - name: Dracaufeu
    image: url2
    stats:
      attack: 1
      defense: 1
  - name: Magicarpe
`

func TestParse(t *testing.T) {
	t.Parallel()
	r, err := Parse(strings.NewReader(sample))
	if err != nil {
		t.Fatalf("Parse() unexpected error: %v", err)
	}
	if r.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", r.Len())
	}

	got, err := r.FetchByName(context.Background(), "Pikachu")
	if err != nil {
		t.Fatalf("FetchByName() unexpected error: %v", err)
	}
	if got.ImageURL != "url1" || got.CombatStats() != (creature.Stats{Attack: 2, Defense: 2}) {
		t.Errorf("FetchByName(Pikachu) = %+v", got)
	}

	carp, _ := r.FetchByName(context.Background(), "Magicarpe")
	if carp.Stats != nil {
		t.Errorf("Magicarpe should have no stats, got %+v", carp.Stats)
	}
}

func TestParse_Errors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		input   string
		wantCfg bool
	}{
		{"malformed yaml", "creatures: [", false},
		{"missing name", "creatures:\n  - image: x\n", true},
		{"duplicate", "creatures:\n  - name: Mew\n  - name: Mew\n", true},
		{"negative stats", "creatures:\n  - name: Mew\n    stats: {attack: -1, defense: 0}\n", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := Parse(strings.NewReader(tt.input))
			if err == nil {
				t.Fatal("Parse() expected error")
			}
			var cfgErr apperrors.ConfigError
			if errors.As(err, &cfgErr) != tt.wantCfg {
				t.Errorf("ConfigError = %v for %v", !tt.wantCfg, err)
			}
		})
	}
}

func TestParse_Empty(t *testing.T) {
	t.Parallel()
	r, err := Parse(strings.NewReader(""))
	if err != nil {
		t.Fatalf("Parse(empty) unexpected error: %v", err)
	}
	if r.Len() != 0 {
		t.Errorf("Len() = %d, want 0", r.Len())
	}
}

func TestFetchByName_Unknown(t *testing.T) {
	t.Parallel()
	r, _ := Parse(strings.NewReader(sample))

	_, err := r.FetchByName(context.Background(), "pikachu")

	var retrievalErr apperrors.RetrievalError
	if !errors.As(err, &retrievalErr) || retrievalErr.Name != "pikachu" {
		t.Fatalf("FetchByName() error = %v, want RetrievalError for pikachu", err)
	}
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("cause = %v, want ErrNotFound", retrievalErr.Cause)
	}
}

func TestFetchByName_ReturnsCopy(t *testing.T) {
	t.Parallel()
	r, _ := Parse(strings.NewReader(sample))

	first, err := r.FetchByName(context.Background(), "Pikachu")
	if err != nil {
		t.Fatalf("FetchByName() unexpected error: %v", err)
	}
	first.Stats.Attack = 0

	second, _ := r.FetchByName(context.Background(), "Pikachu")
	if got := second.CombatStats(); got != (creature.Stats{Attack: 2, Defense: 2}) {
		t.Errorf("stats after caller mutation = %+v, want {2 2}", got)
	}
}

func TestFetchByName_CanceledContext(t *testing.T) {
	t.Parallel()
	r, _ := Parse(strings.NewReader(sample))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := r.FetchByName(ctx, "Pikachu"); !errors.Is(err, context.Canceled) {
		t.Errorf("FetchByName() error = %v, want context.Canceled", err)
	}
}

func TestLoad(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "roster.yaml")
	if err := os.WriteFile(path, []byte(sample), 0o600); err != nil {
		t.Fatal(err)
	}

	r, err := Load(path)
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}
	if r.Len() != 3 {
		t.Errorf("Len() = %d, want 3", r.Len())
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Load(missing) error = %v, want os.ErrNotExist", err)
	}
}

func TestNames(t *testing.T) {
	t.Parallel()
	r, err := Parse(strings.NewReader(sample))
	if err != nil {
		t.Fatalf("Parse() unexpected error: %v", err)
	}
	got := r.Names()
	want := []string{"Dracaufeu", "Magicarpe", "Pikachu"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("Names() = %v, want %v", got, want)
	}
}
