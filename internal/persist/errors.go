package persist

import "errors"

// Sentinel kinds for persistence errors.
var (
	ErrUnreadable         = errors.New("graph file unreadable")
	ErrUnnamedRecord      = errors.New("record has no name")
	ErrNegativeExperience = errors.New("record has negative experience")
	ErrBadDependency      = errors.New("malformed dependency")
	ErrDuplicateName      = errors.New("duplicate skill name")
)
