// Package creature defines the battle data model: a named creature with an
// optional image and optional combat statistics, and the rule deciding which
// of two creatures wins.
package creature

// Stats holds the combat statistics compared during a battle.
type Stats struct {
	Attack  int `json:"attack" yaml:"attack"`
	Defense int `json:"defense" yaml:"defense"`
}

// Creature is an entity taking part in a battle. Values are produced by a
// lookup provider and never modified afterwards.
type Creature struct {
	// Name identifies the creature. Never empty for a looked-up creature.
	Name string `json:"name"`
	// ImageURL is an opaque display reference; may be empty.
	ImageURL string `json:"imageUrl,omitempty"`
	// Stats is nil when the provider returned no statistics.
	Stats *Stats `json:"stats,omitempty"`
}

// New builds a Creature. The stats value is copied so the caller keeps no
// handle on the creature's statistics.
func New(name, imageURL string, stats *Stats) Creature {
	c := Creature{Name: name, ImageURL: imageURL}
	if stats != nil {
		s := *stats
		c.Stats = &s
	}
	return c
}

// Clone returns a copy of c that shares no memory with it. Providers that
// keep creatures (a roster, a cache) hand out clones so callers cannot
// alter what later battles see.
func (c Creature) Clone() Creature {
	return New(c.Name, c.ImageURL, c.Stats)
}

// CombatStats returns the creature's statistics, or zero stats when none
// were provided.
func (c Creature) CombatStats() Stats {
	if c.Stats == nil {
		return Stats{}
	}
	return *c.Stats
}

// WinsAgainst reports whether c beats other: a strictly higher attack wins,
// and on equal attack the higher or equal defense wins. Full ties therefore
// go to the receiver.
func (c Creature) WinsAgainst(other Creature) bool {
	a, b := c.CombatStats(), other.CombatStats()
	if a.Attack != b.Attack {
		return a.Attack > b.Attack
	}
	return a.Defense >= b.Defense
}

// Winner returns first if it wins against second, otherwise second.
func Winner(first, second Creature) Creature {
	if first.WinsAgainst(second) {
		return first
	}
	return second
}
