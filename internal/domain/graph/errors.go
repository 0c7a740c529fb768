package graph

import "errors"

// Sentinel kinds for graph errors.
var (
	ErrNotFound     = errors.New("skill not found")
	ErrUnnamedSkill = errors.New("skill has no name")
)
