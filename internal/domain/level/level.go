// Package level maps total experience onto a named tier using an
// ordered threshold table.
package level

import "sort"

// Entry is one level boundary: the least total experience that earns
// the named level.
type Entry struct {
	Threshold int
	Name      string
}

// Table is an ascending list of level boundaries. The zero threshold
// must be present so every total maps to some level.
//
// Top-of-table policy: when a total sits at or beyond the highest
// threshold, LevelFor reports next == current and Percent saturates
// at 100.
type Table struct {
	entries []Entry
}

// New validates entries and builds a Table. Entries must be non-empty,
// strictly ascending by threshold, include a 0 threshold as the floor,
// and carry non-empty names.
func New(entries []Entry) (*Table, error) {
	if len(entries) == 0 {
		return nil, ErrEmptyTable
	}
	sorted := make([]Entry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Threshold < sorted[j].Threshold })
	if sorted[0].Threshold != 0 {
		return nil, ErrNoFloor
	}
	for i, e := range sorted {
		if e.Name == "" {
			return nil, ErrUnnamedLevel
		}
		if i > 0 && e.Threshold == sorted[i-1].Threshold {
			return nil, ErrDuplicateThreshold
		}
	}
	return &Table{entries: sorted}, nil
}

// Default returns the built-in level table.
func Default() *Table {
	t, err := New([]Entry{
		{Threshold: 0, Name: "Dabbling"},
		{Threshold: 500, Name: "Novice"},
		{Threshold: 1500, Name: "Apprentice"},
		{Threshold: 3500, Name: "Journeyman"},
		{Threshold: 7500, Name: "Expert"},
		{Threshold: 15000, Name: "Master"},
	})
	if err != nil {
		panic("level: default table invalid: " + err.Error())
	}
	return t
}

// LevelFor returns the current level (greatest threshold <= total) and
// the next one (least threshold > total). At or beyond the top of the
// table next equals current.
func (t *Table) LevelFor(total int) (current, next Entry) {
	if total < 0 {
		total = 0
	}
	// First entry with threshold > total.
	i := sort.Search(len(t.entries), func(i int) bool { return t.entries[i].Threshold > total })
	current = t.entries[i-1]
	if i == len(t.entries) {
		return current, current
	}
	return current, t.entries[i]
}

// Percent reports how far into the current level band the total sits,
// in [0, 100]. Saturates at 100 at the top of the table.
func (t *Table) Percent(total int) float64 {
	if total < 0 {
		total = 0
	}
	current, next := t.LevelFor(total)
	if next.Threshold == current.Threshold {
		return 100.0
	}
	return 100.0 * float64(total-current.Threshold) / float64(next.Threshold-current.Threshold)
}

// Entries returns a copy of the table in ascending threshold order.
func (t *Table) Entries() []Entry {
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

// Names returns the level names in ascending threshold order.
func (t *Table) Names() []string {
	out := make([]string, len(t.entries))
	for i, e := range t.entries {
		out[i] = e.Name
	}
	return out
}
