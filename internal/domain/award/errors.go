package award

import "errors"

// Sentinel kinds for award errors.
var (
	ErrBadDependency = errors.New("malformed dependency")
)
