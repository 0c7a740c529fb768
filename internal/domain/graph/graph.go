// Package graph holds the skill graph: the single in-process source of
// truth for skills and their weighted dependency edges, plus the
// experience aggregator that walks it.
package graph

import (
	"time"

	"github.com/okian/skilltree/internal/domain/model"
)

// Graph is an insertion-ordered collection of skills keyed by name.
// It is grown lazily, never shrunk, and mutated only between discrete
// operations (single-writer model; no internal locking).
type Graph struct {
	skills map[string]*model.Skill
	order  []string
}

// New returns an empty graph.
func New() *Graph {
	return &Graph{skills: make(map[string]*model.Skill)}
}

// Len reports the number of skills.
func (g *Graph) Len() int {
	return len(g.skills)
}

// Get returns a copy of the named skill.
func (g *Graph) Get(name string) (model.Skill, bool) {
	s, ok := g.skills[name]
	if !ok {
		return model.Skill{}, false
	}
	return s.Clone(), true
}

// Contains reports whether the named skill exists.
func (g *Graph) Contains(name string) bool {
	_, ok := g.skills[name]
	return ok
}

// Put inserts a skill or replaces an existing one with the same name.
// Insertion order is preserved for existing names.
func (g *Graph) Put(s model.Skill) error {
	if s.Name == "" {
		return ErrUnnamedSkill
	}
	c := s.Clone()
	if _, ok := g.skills[s.Name]; !ok {
		g.order = append(g.order, s.Name)
	}
	g.skills[s.Name] = &c
	return nil
}

// AddExperience adds delta to the named skill's raw experience and
// stamps it as modified at now. Raw experience never drops below zero.
// Returns ErrNotFound when the skill does not exist.
func (g *Graph) AddExperience(name string, delta int, now time.Time) error {
	s, ok := g.skills[name]
	if !ok {
		return ErrNotFound
	}
	s.Experience += delta
	if s.Experience < 0 {
		s.Experience = 0
	}
	s.LastModified = now
	return nil
}

// Names returns skill names in insertion order.
func (g *Graph) Names() []string {
	out := make([]string, len(g.order))
	copy(out, g.order)
	return out
}

// Snapshot returns copies of all skills in insertion order.
func (g *Graph) Snapshot() []model.Skill {
	out := make([]model.Skill, 0, len(g.order))
	for _, name := range g.order {
		out = append(out, g.skills[name].Clone())
	}
	return out
}

// RawTotal sums every skill's raw experience. This is the graph-wide
// figure shown in the display line; weighted totals are per-skill
// views and would double-count shared subtrees if summed.
func (g *Graph) RawTotal() int {
	total := 0
	for _, s := range g.skills {
		total += s.Experience
	}
	return total
}
