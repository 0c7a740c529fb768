// Package award applies experience awards to the skill graph: the
// deadline penalty/bonus rule, lazy skill creation, and level-up
// detection against the level table.
package award

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/okian/skilltree/internal/domain/graph"
	"github.com/okian/skilltree/internal/domain/level"
	"github.com/okian/skilltree/internal/domain/model"
)

// Default engine configuration constants.
const defaultRandomSeed = 42

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithLevelTable sets the level table used for level-up detection.
func WithLevelTable(t *level.Table) Option {
	return func(e *Engine) {
		if t != nil {
			e.table = t
		}
	}
}

// WithSeed seeds the random source used by SomeExp. Useful for
// deterministic tests.
func WithSeed(seed int64) Option {
	return func(e *Engine) {
		e.rng = rand.New(rand.NewSource(seed))
	}
}

// Request names the skills to award and the award parameters.
type Request struct {
	Skills  []string
	BaseExp int
	// DeadlineOffsetDays is negative when the work was overdue and
	// positive when it landed early; it feeds the penalty/bonus rule.
	DeadlineOffsetDays int
	Now                time.Time
	// NewDependencies optionally supplies the dependency list for any
	// skill the award creates. Ignored for skills that already exist.
	NewDependencies map[string][]model.Dependency
}

// Result reports the outcome of one skill's award.
type Result struct {
	ID       string // receipt id
	Skill    string
	Awarded  int
	NewLevel string // non-empty when the award crossed a level boundary
	Err      error
}

// Engine applies awards. It holds no graph state; the graph is passed
// to Apply so independent sessions can share one engine.
type Engine struct {
	table *level.Table
	rng   *rand.Rand
}

// New constructs an Engine with the default level table and a fixed
// random seed; override both with options.
func New(opts ...Option) *Engine {
	e := &Engine{
		table: level.Default(),
		rng:   rand.New(rand.NewSource(defaultRandomSeed)),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Penalty computes the deadline adjustment for an award. A negative
// diff (overdue) is capped so it never removes more than half the base
// award; a non-negative diff is a bonus added verbatim.
func Penalty(baseExp, diffDays int) int {
	if diffDays >= 0 {
		return diffDays
	}
	floor := -baseExp / 2
	if diffDays < floor {
		return floor
	}
	return diffDays
}

// Apply awards base experience plus the deadline adjustment to every
// named skill, creating missing skills on the fly. Each skill gets its
// own Result; a failure on one name never rolls back awards already
// applied to the others.
func (e *Engine) Apply(g *graph.Graph, req Request) []Result {
	amount := req.BaseExp + Penalty(req.BaseExp, req.DeadlineOffsetDays)
	results := make([]Result, 0, len(req.Skills))
	for _, name := range req.Skills {
		results = append(results, e.applyOne(g, name, amount, req))
	}
	return results
}

func (e *Engine) applyOne(g *graph.Graph, name string, amount int, req Request) Result {
	res := Result{ID: uuid.NewString(), Skill: name, Awarded: amount}
	if name == "" {
		res.Err = graph.ErrUnnamedSkill
		return res
	}
	before := g.TotalExperience(name)
	if g.Contains(name) {
		if err := g.AddExperience(name, amount, req.Now); err != nil {
			res.Err = err
			return res
		}
	} else {
		deps := req.NewDependencies[name]
		if err := validateDeps(deps); err != nil {
			res.Err = err
			return res
		}
		exp := amount
		if exp < 0 {
			exp = 0
		}
		s := model.Skill{
			Name:         name,
			Experience:   exp,
			LastModified: req.Now,
			Dependencies: deps,
		}
		if err := g.Put(s); err != nil {
			res.Err = err
			return res
		}
	}
	after := g.TotalExperience(name)
	prev, _ := e.table.LevelFor(before)
	cur, _ := e.table.LevelFor(after)
	if cur.Threshold > prev.Threshold {
		res.NewLevel = cur.Name
	}
	return res
}

func validateDeps(deps []model.Dependency) error {
	for _, d := range deps {
		if d.Name == "" {
			return fmt.Errorf("%w: dependency has no name", ErrBadDependency)
		}
		if d.Weight <= 0 {
			return fmt.Errorf("%w: %q has weight %v", ErrBadDependency, d.Name, d.Weight)
		}
	}
	return nil
}

// SomeExp returns low plus a uniform random amount in [0, delta].
// Callers use it for randomized rather than fixed awards.
func (e *Engine) SomeExp(low, delta int) int {
	if delta <= 0 {
		return low
	}
	return low + e.rng.Intn(delta+1)
}
