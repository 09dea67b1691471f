package level

import (
	"github.com/tileforge/tileforge/pkg/concurrent"
)

// Pregenerate builds one level per seed in parallel. Each run owns its own
// RNG and grid, so no locking is needed; the result slice is positionally
// aligned with seeds. The first generation failure aborts the batch.
func Pregenerate(seeds []uint64, cfg Config) ([]*Level, error) {
	levels := make([]*Level, len(seeds))
	err := concurrent.ForEachIndex(len(seeds), func(i int) error {
		lvl, err := Generate(seeds[i], cfg)
		if err != nil {
			return err
		}
		levels[i] = lvl
		return nil
	})
	if err != nil {
		return nil, err
	}
	return levels, nil
}
