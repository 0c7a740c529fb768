package level

import "errors"

// Sentinel kinds for level table validation.
var (
	ErrEmptyTable         = errors.New("level table is empty")
	ErrNoFloor            = errors.New("level table has no 0 threshold")
	ErrUnnamedLevel       = errors.New("level entry has no name")
	ErrDuplicateThreshold = errors.New("duplicate level threshold")
)
