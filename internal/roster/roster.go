// Package roster provides an offline orchestration.Fetcher backed by a YAML
// file of creatures, for battles without network access.
package roster

import (
	"context"
	"errors"
	"io"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/agbru/brawl/internal/creature"
	apperrors "github.com/agbru/brawl/internal/errors"
)

// ErrNotFound is the cause of a RetrievalError for names missing from the
// roster.
var ErrNotFound = apperrors.ErrNotFound

// entry is one creature as written in the roster file:
//
//	creatures:
//	  - name: Pikachu
//	    image: https://...
//	    stats: {attack: 55, defense: 40}
type entry struct {
	Name  string          `yaml:"name"`
	Image string          `yaml:"image"`
	Stats *creature.Stats `yaml:"stats"`
}

type file struct {
	Creatures []entry `yaml:"creatures"`
}

// Roster is an immutable, name-indexed set of creatures.
type Roster struct {
	byName map[string]creature.Creature
}

// Load reads a roster from a YAML file.
func Load(path string) (*Roster, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, apperrors.WrapError(err, "open roster %s", path)
	}
	defer f.Close()
	return Parse(f)
}

// Parse reads a roster from r. Names must be non-empty and unique, stats
// non-negative.
func Parse(r io.Reader) (*Roster, error) {
	var raw file
	if err := yaml.NewDecoder(r).Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
		return nil, apperrors.WrapError(err, "parse roster")
	}

	ro := &Roster{byName: make(map[string]creature.Creature, len(raw.Creatures))}
	for i, e := range raw.Creatures {
		if e.Name == "" {
			return nil, apperrors.NewConfigError("roster entry %d has no name", i+1)
		}
		if _, dup := ro.byName[e.Name]; dup {
			return nil, apperrors.NewConfigError("roster lists %q twice", e.Name)
		}
		if e.Stats != nil && (e.Stats.Attack < 0 || e.Stats.Defense < 0) {
			return nil, apperrors.NewConfigError("roster entry %q has negative stats", e.Name)
		}
		ro.byName[e.Name] = creature.New(e.Name, e.Image, e.Stats)
	}
	return ro, nil
}

// Len returns the number of creatures in the roster.
func (r *Roster) Len() int { return len(r.byName) }

// Names returns the roster's creature names in sorted order.
func (r *Roster) Names() []string {
	names := make([]string, 0, len(r.byName))
	for name := range r.byName {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// FetchByName returns the named creature. Lookups are exact and
// case-sensitive.
func (r *Roster) FetchByName(ctx context.Context, name string) (creature.Creature, error) {
	if err := ctx.Err(); err != nil {
		return creature.Creature{}, apperrors.NewRetrievalError(name, err)
	}
	c, ok := r.byName[name]
	if !ok {
		return creature.Creature{}, apperrors.NewRetrievalError(name, ErrNotFound)
	}
	return c.Clone(), nil
}
