// Package cache memoises Polyglot keys by FEN.
package cache

import (
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"

	"github.com/hailam/fenkey/internal/zobrist"
)

// DefaultSize is the number of FENs kept when no size is configured.
const DefaultSize = 4096

// Hasher is the part of polyglot.Hasher the cache wraps.
type Hasher interface {
	Hash(fen string) (zobrist.Hash, error)
}

type result struct {
	key zobrist.Hash
	err error
}

// CachedHasher wraps a Hasher with an LRU cache keyed by the FEN text.
// Hashing is deterministic, so failures are cached as well as keys.
type CachedHasher struct {
	inner  Hasher
	cache  *lru.Cache[string, result]
	log    *zap.SugaredLogger
	hits   atomic.Uint64
	misses atomic.Uint64
}

// New creates a cached hasher holding up to size FENs.
func New(inner Hasher, size int, log *zap.SugaredLogger) (*CachedHasher, error) {
	if size <= 0 {
		size = DefaultSize
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}

	c, err := lru.NewWithEvict(size, func(fen string, _ result) {
		log.Debugw("evicted cached key", "fen", fen)
	})
	if err != nil {
		return nil, err
	}

	return &CachedHasher{inner: inner, cache: c, log: log}, nil
}

// Hash returns the key for fen, computing it on a miss.
func (ch *CachedHasher) Hash(fen string) (zobrist.Hash, error) {
	if r, ok := ch.cache.Get(fen); ok {
		ch.hits.Add(1)
		return r.key, r.err
	}

	ch.misses.Add(1)
	key, err := ch.inner.Hash(fen)
	ch.cache.Add(fen, result{key: key, err: err})
	return key, err
}

// HitRate returns the cache hit rate as a percentage.
func (ch *CachedHasher) HitRate() float64 {
	hits := ch.hits.Load()
	total := hits + ch.misses.Load()
	if total == 0 {
		return 0
	}
	return float64(hits) / float64(total) * 100
}

// Stats returns the hit and miss counts.
func (ch *CachedHasher) Stats() (hits, misses uint64) {
	return ch.hits.Load(), ch.misses.Load()
}

// Len returns the current number of cached FENs.
func (ch *CachedHasher) Len() int {
	return ch.cache.Len()
}

// Purge clears the cache and its counters.
func (ch *CachedHasher) Purge() {
	ch.cache.Purge()
	ch.hits.Store(0)
	ch.misses.Store(0)
}
