// Package index fills the persistent key index from a FEN list.
package index

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/hailam/fenkey/internal/zobrist"
)

// DefaultFlushSize is the number of keys written per transaction.
const DefaultFlushSize = 512

// Hasher turns a FEN into its Polyglot key.
type Hasher interface {
	Hash(fen string) (zobrist.Hash, error)
}

// Store receives key/FEN pairs in batches.
type Store interface {
	PutBatch(items map[zobrist.Hash][]string) error
}

// Stats reports what Build did.
type Stats struct {
	Indexed int
	Invalid int
}

type entry struct {
	key zobrist.Hash
	fen string
}

// Builder streams FENs through a hasher into a Store.
type Builder struct {
	hasher    Hasher
	store     Store
	log       *zap.SugaredLogger
	flushSize int
}

// NewBuilder creates a Builder that writes DefaultFlushSize keys per batch.
func NewBuilder(h Hasher, s Store, log *zap.SugaredLogger) *Builder {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Builder{hasher: h, store: s, log: log, flushSize: DefaultFlushSize}
}

// Build hashes fens and writes each valid one to the store. Invalid FENs are
// counted and skipped. Hashing and writing run concurrently; the first write
// error stops both.
func (b *Builder) Build(ctx context.Context, fens []string) (Stats, error) {
	var stats Stats
	ch := make(chan entry, b.flushSize)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(ch)
		for _, fen := range fens {
			key, err := b.hasher.Hash(fen)
			if err != nil {
				stats.Invalid++
				b.log.Debugw("skipping invalid position", "fen", fen)
				continue
			}
			select {
			case ch <- entry{key: key, fen: fen}:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})

	g.Go(func() error {
		pending := make(map[zobrist.Hash][]string)
		queued := 0

		flush := func() error {
			if len(pending) == 0 {
				return nil
			}
			if err := b.store.PutBatch(pending); err != nil {
				return err
			}
			stats.Indexed += queued
			pending = make(map[zobrist.Hash][]string)
			queued = 0
			return nil
		}

		for e := range ch {
			pending[e.key] = append(pending[e.key], e.fen)
			queued++
			if len(pending) >= b.flushSize {
				if err := flush(); err != nil {
					return err
				}
			}
		}
		return flush()
	})

	if err := g.Wait(); err != nil {
		return stats, err
	}

	b.log.Infow("index built", "indexed", stats.Indexed, "invalid", stats.Invalid)
	return stats, nil
}
