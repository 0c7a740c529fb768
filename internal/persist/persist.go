// Package persist codes the skill graph to and from its host
// interchange shape: a flat YAML list of skill records. The host owns
// the file; this package only defines the record shape and the
// per-record tolerance rules.
package persist

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/okian/skilltree/internal/domain/graph"
	"github.com/okian/skilltree/internal/domain/model"
)

// DepEntry is one dependency reference in a record. On disk it is
// either a bare skill name (weight 1) or a {name, weight} mapping.
type DepEntry struct {
	Name   string  `yaml:"name"`
	Weight float64 `yaml:"weight"`
}

// UnmarshalYAML accepts both the bare-string and mapping forms.
func (d *DepEntry) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		d.Name = value.Value
		d.Weight = 1
		return nil
	}
	type raw struct {
		Name   string  `yaml:"name"`
		Weight float64 `yaml:"weight"`
	}
	var r raw
	if err := value.Decode(&r); err != nil {
		return err
	}
	d.Name = r.Name
	d.Weight = r.Weight
	if d.Weight == 0 {
		d.Weight = 1
	}
	return nil
}

// MarshalYAML writes the bare-string form when the weight is exactly 1.
func (d DepEntry) MarshalYAML() (interface{}, error) {
	if d.Weight == 1 {
		return d.Name, nil
	}
	type raw struct {
		Name   string  `yaml:"name"`
		Weight float64 `yaml:"weight"`
	}
	return raw{Name: d.Name, Weight: d.Weight}, nil
}

// Record is one persisted skill. Timestamps are epoch seconds.
type Record struct {
	Name         string     `yaml:"name"`
	Experience   int        `yaml:"experience"`
	LastModified int64      `yaml:"last_modified"`
	Dependencies []DepEntry `yaml:"dependencies,omitempty"`
}

// Skip reports one record rejected during a load.
type Skip struct {
	Index  int
	Name   string
	Reason error
}

// Report summarizes a load: how many records made it in and which were
// skipped. A non-empty Skipped list is not a failure.
type Report struct {
	Loaded  int
	Skipped []Skip
}

// Load decodes a flat record list and populates the graph in file
// order. Malformed records are skipped individually and reported; only
// an unreadable document fails the load outright.
func Load(r io.Reader, g *graph.Graph) (Report, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Report{}, fmt.Errorf("%w: %v", ErrUnreadable, err)
	}
	var nodes []yaml.Node
	if err := yaml.Unmarshal(data, &nodes); err != nil {
		return Report{}, fmt.Errorf("%w: %v", ErrUnreadable, err)
	}

	var rep Report
	for i, n := range nodes {
		var rec Record
		if err := n.Decode(&rec); err != nil {
			rep.Skipped = append(rep.Skipped, Skip{Index: i, Reason: err})
			continue
		}
		if err := validate(rec); err != nil {
			rep.Skipped = append(rep.Skipped, Skip{Index: i, Name: rec.Name, Reason: err})
			continue
		}
		if g.Contains(rec.Name) {
			rep.Skipped = append(rep.Skipped, Skip{Index: i, Name: rec.Name, Reason: ErrDuplicateName})
			continue
		}
		if err := g.Put(toSkill(rec)); err != nil {
			rep.Skipped = append(rep.Skipped, Skip{Index: i, Name: rec.Name, Reason: err})
			continue
		}
		rep.Loaded++
	}
	return rep, nil
}

// Save writes the graph as a flat record list in insertion order.
func Save(w io.Writer, g *graph.Graph) error {
	skills := g.Snapshot()
	records := make([]Record, 0, len(skills))
	for _, s := range skills {
		records = append(records, toRecord(s))
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(records); err != nil {
		return err
	}
	return enc.Close()
}

// LoadFile reads a graph file from disk. A missing file yields an
// empty graph, not an error: skills are created lazily.
func LoadFile(path string) (*graph.Graph, Report, error) {
	g := graph.New()
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return g, Report{}, nil
		}
		return nil, Report{}, err
	}
	defer f.Close()
	rep, err := Load(f, g)
	if err != nil {
		return nil, rep, err
	}
	return g, rep, nil
}

// SaveFile writes the graph to disk, replacing the file atomically via
// a same-directory temp file.
func SaveFile(path string, g *graph.Graph) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".skilltree-*.yaml")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if err := Save(tmp, g); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

func validate(rec Record) error {
	if rec.Name == "" {
		return ErrUnnamedRecord
	}
	if rec.Experience < 0 {
		return fmt.Errorf("%w: experience %d", ErrNegativeExperience, rec.Experience)
	}
	for _, d := range rec.Dependencies {
		if d.Name == "" {
			return fmt.Errorf("%w: dependency has no name", ErrBadDependency)
		}
		if d.Weight <= 0 {
			return fmt.Errorf("%w: %q has weight %v", ErrBadDependency, d.Name, d.Weight)
		}
	}
	return nil
}

func toSkill(rec Record) model.Skill {
	deps := make([]model.Dependency, 0, len(rec.Dependencies))
	for _, d := range rec.Dependencies {
		deps = append(deps, model.Dependency{Name: d.Name, Weight: d.Weight})
	}
	return model.Skill{
		Name:         rec.Name,
		Experience:   rec.Experience,
		LastModified: time.Unix(rec.LastModified, 0),
		Dependencies: deps,
	}
}

func toRecord(s model.Skill) Record {
	deps := make([]DepEntry, 0, len(s.Dependencies))
	for _, d := range s.Dependencies {
		deps = append(deps, DepEntry{Name: d.Name, Weight: d.Weight})
	}
	return Record{
		Name:         s.Name,
		Experience:   s.Experience,
		LastModified: s.LastModified.Unix(),
		Dependencies: deps,
	}
}
