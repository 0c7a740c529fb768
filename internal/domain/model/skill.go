// Package model contains domain models passed between layers.
package model

import "time"

// Dependency is one weighted edge from a skill to another skill it
// draws experience from. Weight defaults to 1 when the source record
// names the dependency without a weight.
type Dependency struct {
	Name   string
	Weight float64
}

// Skill is the central entity: a named accumulator of raw experience
// with an ordered list of weighted dependencies.
type Skill struct {
	Name         string
	Experience   int // raw points awarded directly, never negative
	LastModified time.Time
	Dependencies []Dependency
}

// Clone returns a deep copy of the skill.
func (s Skill) Clone() Skill {
	out := s
	if len(s.Dependencies) > 0 {
		out.Dependencies = make([]Dependency, len(s.Dependencies))
		copy(out.Dependencies, s.Dependencies)
	}
	return out
}
