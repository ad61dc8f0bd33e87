package bptree

import (
	"errors"
)

//goland:noinspection GoUnusedGlobalVariable
var (
	ErrInvalidOrder   = errors.New("order must be at least 4")
	ErrNilComparator  = errors.New("comparator cannot be nil")
	ErrCorruption     = errors.New("tree corruption detected")
	ErrInvalidCapSize = errors.New("cache capacity must be positive")
	ErrNilHash        = errors.New("hash function cannot be nil")
)
