package domain

import "errors"

var (
	ErrUnknownCategory = errors.New("unknown category")
	ErrUnknownGoal     = errors.New("unknown goal")
	ErrInvalidGoal     = errors.New("goal value must be positive")
	ErrEmptyDomain     = errors.New("domain must not be empty")
	ErrInvariant       = errors.New("daily stats invariant violated")
)
