// Package decay classifies how rusty a skill has become since its
// last direct award.
package decay

import "time"

// Rustiness is a three-state freshness classification.
type Rustiness int

const (
	Fresh Rustiness = iota
	Rusty
	VeryRusty
)

// String returns the lowercase label used in exports and logs.
func (r Rustiness) String() string {
	switch r {
	case Rusty:
		return "rusty"
	case VeryRusty:
		return "very-rusty"
	default:
		return "fresh"
	}
}

// Classify maps elapsed time since lastModified onto a Rustiness.
// Fresh up to and including rustyAfter, Rusty up to and including
// veryRustyAfter, VeryRusty beyond that. Callers are expected to
// configure veryRustyAfter > rustyAfter.
func Classify(lastModified, now time.Time, rustyAfter, veryRustyAfter time.Duration) Rustiness {
	elapsed := now.Sub(lastModified)
	switch {
	case elapsed > veryRustyAfter:
		return VeryRusty
	case elapsed > rustyAfter:
		return Rusty
	default:
		return Fresh
	}
}
