package level

import "errors"

// Generation errors. All of them are deterministic for a given
// (seed, config): peers that fail, fail the same way.
var (
	ErrInvalidConfig = errors.New("level: invalid configuration")
	ErrEmptyLevel    = errors.New("level: generation produced no floor tiles")
)
