// Package export walks the skill graph into an abstract node/edge
// snapshot for external layout tools, and renders that snapshot as a
// Graphviz DOT document.
package export

import (
	"math"
	"strings"
	"time"

	"github.com/okian/skilltree/internal/domain/decay"
	"github.com/okian/skilltree/internal/domain/graph"
	"github.com/okian/skilltree/internal/domain/level"
)

// Node describes one included skill.
type Node struct {
	Name      string
	Label     string
	Level     string
	Size      float64 // sqrt(total / max total), 0 when the graph is all zeros
	Rustiness decay.Rustiness
	Total     int
}

// Edge describes one dependency edge between included skills.
type Edge struct {
	From   string
	To     string
	Weight float64
}

// Snapshot is the renderable view of the graph at one instant.
type Snapshot struct {
	Nodes []Node
	Edges []Edge
}

// Option applies a configuration option to the Exporter.
type Option func(*Exporter)

// WithLevelTable sets the level table used to name node levels.
func WithLevelTable(t *level.Table) Option {
	return func(e *Exporter) {
		if t != nil {
			e.table = t
		}
	}
}

// WithDecayThresholds sets the rusty and very-rusty cutoffs.
func WithDecayThresholds(rustyAfter, veryRustyAfter time.Duration) Option {
	return func(e *Exporter) {
		if rustyAfter > 0 && veryRustyAfter > rustyAfter {
			e.rustyAfter = rustyAfter
			e.veryRustyAfter = veryRustyAfter
		}
	}
}

// WithExcludedLevels hides skills whose current level name is listed.
func WithExcludedLevels(names []string) Option {
	return func(e *Exporter) {
		e.excluded = make(map[string]struct{}, len(names))
		for _, n := range names {
			e.excluded[n] = struct{}{}
		}
	}
}

// Exporter builds snapshots. It never mutates the graph.
type Exporter struct {
	table          *level.Table
	rustyAfter     time.Duration
	veryRustyAfter time.Duration
	excluded       map[string]struct{}
}

// Default decay thresholds: a skill goes rusty after a month without a
// direct award and very rusty after a quarter.
const (
	defaultRustyAfter     = 30 * 24 * time.Hour
	defaultVeryRustyAfter = 90 * 24 * time.Hour
)

// New constructs an Exporter with default configuration.
func New(opts ...Option) *Exporter {
	e := &Exporter{
		table:          level.Default(),
		rustyAfter:     defaultRustyAfter,
		veryRustyAfter: defaultVeryRustyAfter,
		excluded:       map[string]struct{}{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Snapshot produces the node/edge view of the graph at now. Skills
// whose current level name is excluded are dropped, along with every
// edge that touches them.
func (e *Exporter) Snapshot(g *graph.Graph, now time.Time) Snapshot {
	snap := Snapshot{Nodes: []Node{}, Edges: []Edge{}}
	maxTotal := g.MaxTotal()
	included := make(map[string]struct{}, g.Len())

	for _, s := range g.Snapshot() {
		total := g.TotalExperience(s.Name)
		current, _ := e.table.LevelFor(total)
		if _, skip := e.excluded[current.Name]; skip {
			continue
		}
		size := 0.0
		if maxTotal > 0 {
			size = math.Sqrt(float64(total) / float64(maxTotal))
		}
		snap.Nodes = append(snap.Nodes, Node{
			Name:      s.Name,
			Label:     displayLabel(s.Name),
			Level:     current.Name,
			Size:      size,
			Rustiness: decay.Classify(s.LastModified, now, e.rustyAfter, e.veryRustyAfter),
			Total:     total,
		})
		included[s.Name] = struct{}{}
	}

	for _, s := range g.Snapshot() {
		if _, ok := included[s.Name]; !ok {
			continue
		}
		for _, d := range s.Dependencies {
			if _, ok := included[d.Name]; !ok {
				continue
			}
			snap.Edges = append(snap.Edges, Edge{From: s.Name, To: d.Name, Weight: d.Weight})
		}
	}
	return snap
}

// displayLabel capitalizes each word of a skill name. Names are
// case-insensitively meaningful for display only.
func displayLabel(name string) string {
	words := strings.Fields(strings.ReplaceAll(name, "-", " "))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
