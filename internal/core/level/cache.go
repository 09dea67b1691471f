package level

import (
	"encoding/binary"
	"sync"

	"github.com/cespare/xxhash/v2"
)

// Cache memoizes generated levels by (seed, config). Rollback re-entry hits
// the cache instead of re-running generation; a miss regenerates, which by
// the determinism contract yields the identical level anyway.
type Cache struct {
	mu     sync.RWMutex
	levels map[uint64]*Level
}

// NewCache creates an empty cache.
func NewCache() *Cache {
	return &Cache{levels: make(map[uint64]*Level)}
}

// Key returns the cache key for a (seed, config) pair.
func Key(seed uint64, cfg Config) uint64 {
	d := xxhash.New()
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], seed)
	_, _ = d.Write(b[:])
	_, _ = d.Write(cfg.withDefaults().encode())
	return d.Sum64()
}

// Get returns the cached level for (seed, cfg), generating and storing it
// on a miss. Concurrent callers with different seeds generate in parallel;
// each run owns its own RNG and grid.
func (c *Cache) Get(seed uint64, cfg Config) (*Level, error) {
	key := Key(seed, cfg)

	c.mu.RLock()
	lvl, ok := c.levels[key]
	c.mu.RUnlock()
	if ok {
		return lvl, nil
	}

	lvl, err := Generate(seed, cfg)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	// A racing generator may have stored the same key; both values are
	// identical by determinism, so last write wins harmlessly.
	c.levels[key] = lvl
	c.mu.Unlock()
	return lvl, nil
}

// Len returns the number of cached levels.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.levels)
}
