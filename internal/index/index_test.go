package index

import (
	"context"
	"fmt"
	"testing"

	"github.com/go-faster/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hailam/fenkey/internal/board"
	"github.com/hailam/fenkey/internal/polyglot"
	"github.com/hailam/fenkey/internal/storage"
	"github.com/hailam/fenkey/internal/zobrist"
)

func TestBuild(t *testing.T) {
	store, err := storage.Open(zobrist.Default(), storage.Options{InMemory: true})
	require.NoError(t, err)
	defer store.Close()

	fens := []string{
		board.StartFEN,
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 3 7",
		"rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1",
		"not a fen",
	}

	stats, err := NewBuilder(polyglot.New(nil), store, nil).Build(context.Background(), fens)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Indexed)
	assert.Equal(t, 1, stats.Invalid)

	n, err := store.Count()
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	rec, err := store.Lookup(zobrist.FromUint64(0x463b96181691fc9c))
	require.NoError(t, err)
	assert.ElementsMatch(t, fens[:2], rec.FENs)
}

type memStore struct {
	batches int
	items   map[zobrist.Hash][]string
}

func (m *memStore) PutBatch(items map[zobrist.Hash][]string) error {
	m.batches++
	for k, v := range items {
		m.items[k] = append(m.items[k], v...)
	}
	return nil
}

func TestBuildFlushesInBatches(t *testing.T) {
	// Distinct positions: a lone white king walking the board.
	var fens []string
	for sq := 0; sq < 64; sq++ {
		rank, file := sq/8, sq%8
		var ranks [8]string
		for r := 0; r < 8; r++ {
			if r != 7-rank {
				ranks[r] = "8"
				continue
			}
			s := ""
			if file > 0 {
				s += fmt.Sprint(file)
			}
			s += "K"
			if file < 7 {
				s += fmt.Sprint(7 - file)
			}
			ranks[r] = s
		}
		fen := fmt.Sprintf("%s/%s/%s/%s/%s/%s/%s/%s w - - 0 1",
			ranks[0], ranks[1], ranks[2], ranks[3], ranks[4], ranks[5], ranks[6], ranks[7])
		fens = append(fens, fen)
	}

	store := &memStore{items: make(map[zobrist.Hash][]string)}
	b := NewBuilder(polyglot.New(nil), store, nil)
	b.flushSize = 10

	stats, err := b.Build(context.Background(), fens)
	require.NoError(t, err)
	assert.Equal(t, 64, stats.Indexed)
	assert.Zero(t, stats.Invalid)
	assert.Len(t, store.items, 64)
	assert.Equal(t, 7, store.batches)
}

type failingStore struct{}

func (failingStore) PutBatch(map[zobrist.Hash][]string) error {
	return errors.New("disk full")
}

func TestBuildStoreError(t *testing.T) {
	fens := make([]string, 100)
	for i := range fens {
		fens[i] = board.StartFEN
	}

	b := NewBuilder(polyglot.New(nil), failingStore{}, nil)
	b.flushSize = 1
	_, err := b.Build(context.Background(), fens)
	assert.EqualError(t, err, "disk full")
}
