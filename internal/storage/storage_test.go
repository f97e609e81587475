package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-faster/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hailam/fenkey/internal/zobrist"
)

func openTemp(t *testing.T, dir string, table *zobrist.Table) *Storage {
	t.Helper()
	s, err := Open(table, Options{Dir: dir})
	require.NoError(t, err)
	return s
}

func TestStorage(t *testing.T) {
	s, err := Open(zobrist.Default(), Options{InMemory: true})
	require.NoError(t, err)
	defer s.Close()

	key := zobrist.FromUint64(0x463b96181691fc9c)
	const fen = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

	t.Run("Missing", func(t *testing.T) {
		_, err := s.Lookup(key)
		assert.True(t, errors.Is(err, ErrNotFound))
	})

	t.Run("PutAndLookup", func(t *testing.T) {
		require.NoError(t, s.Put(key, fen))
		// Same position with different clocks shares the key.
		require.NoError(t, s.Put(key, "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 4 9"))
		require.NoError(t, s.Put(key, fen))

		rec, err := s.Lookup(key)
		require.NoError(t, err)
		assert.Len(t, rec.FENs, 2)
		assert.Equal(t, fen, rec.FENs[0])
		assert.False(t, rec.FirstSeen.IsZero())
		assert.False(t, rec.Updated.Before(rec.FirstSeen))
	})

	t.Run("Count", func(t *testing.T) {
		require.NoError(t, s.PutBatch(map[zobrist.Hash][]string{
			zobrist.FromUint64(1): {"a"},
			zobrist.FromUint64(2): {"b", "c"},
		}))
		n, err := s.Count()
		require.NoError(t, err)
		assert.Equal(t, 3, n)
	})
}

func TestTableBinding(t *testing.T) {
	dir := t.TempDir()

	s := openTemp(t, dir, zobrist.Default())
	require.NoError(t, s.Close())

	// Reopening with the same table works.
	s = openTemp(t, dir, zobrist.Default())
	require.NoError(t, s.Close())

	var keys [zobrist.TableSize]uint64
	keys[0] = 1
	_, err := Open(zobrist.FromKeys(keys), Options{Dir: dir})
	assert.True(t, errors.Is(err, ErrTableMismatch))
}

func TestDefaultDir(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Setenv("APPDATA", t.TempDir())

	dir, err := DefaultDir()
	require.NoError(t, err)
	assert.Equal(t, indexDir, filepath.Base(dir))
	assert.Equal(t, appName, filepath.Base(filepath.Dir(dir)))

	_, err = os.Stat(dir)
	assert.NoError(t, err)

	// Opening without a directory lands in the default location.
	s, err := Open(zobrist.Default(), Options{})
	require.NoError(t, err)
	require.NoError(t, s.Close())
}
