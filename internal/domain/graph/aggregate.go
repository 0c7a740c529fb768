package graph

import "math"

// TotalExperience computes a skill's total experience: its own raw
// experience plus round(weight * total) for each dependency, walked
// depth-first with sibling-exclusive propagation.
//
// Sibling-exclusive propagation: before descending into a node's
// dependencies, the exclusion set is extended with the node itself AND
// every one of its dependency names. Each branch therefore counts a
// shared ancestor at most once, but two sibling branches that both
// reach the same ancestor each count it (a diamond A->{B,C}, B->D,
// C->D counts D once per branch). This is the contract, deliberately
// not a topological DAG sum; callers must not "fix" it.
//
// Missing dependency names contribute zero. Cycles terminate because
// the exclusion set grows strictly on every descent. Totals are never
// cached: raw experience changes between calls.
func (g *Graph) TotalExperience(name string) int {
	return g.total(name, map[string]struct{}{name: {}}, 0)
}

func (g *Graph) total(name string, excluded map[string]struct{}, depth int) int {
	// The exclusion set bounds depth by the number of distinct names;
	// this guard is unreachable and purely defensive.
	if depth > len(g.skills)+1 {
		return 0
	}
	s, ok := g.skills[name]
	if !ok {
		return 0
	}
	sum := s.Experience
	if len(s.Dependencies) == 0 {
		return sum
	}
	next := make(map[string]struct{}, len(excluded)+len(s.Dependencies)+1)
	for k := range excluded {
		next[k] = struct{}{}
	}
	next[name] = struct{}{}
	for _, d := range s.Dependencies {
		next[d.Name] = struct{}{}
	}
	for _, d := range s.Dependencies {
		if _, seen := excluded[d.Name]; seen {
			continue
		}
		sum += int(math.Round(d.Weight * float64(g.total(d.Name, next, depth+1))))
	}
	return sum
}

// MaxTotal returns the largest total experience over all skills, or 0
// for an empty graph.
func (g *Graph) MaxTotal() int {
	max := 0
	for _, name := range g.order {
		if t := g.TotalExperience(name); t > max {
			max = t
		}
	}
	return max
}
