package zobrist

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/go-faster/errors"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTable(t *testing.T) {
	tbl := Default()
	require.NotNil(t, tbl)

	// First, castling, en passant and turn entries of the published array.
	assert.Equal(t, "9d39247e33776d41", tbl.Key(0).String())
	assert.Equal(t, "31d71dce64b2c310", tbl.Castle(WhiteKingSide).String())
	assert.Equal(t, "70cc73d90bc26e24", tbl.EnPassant(0).String())
	assert.Equal(t, "67a34dac4356550b", tbl.EnPassant(7).String())
	assert.Equal(t, "f8d626aaaf278509", tbl.Turn().String())

	assert.Same(t, tbl, Default())
}

func TestPieceIndexing(t *testing.T) {
	tbl := Default()
	for kind := 0; kind < PieceKinds; kind++ {
		for sq := 0; sq < 64; sq++ {
			rank, file := sq/8, sq%8
			require.Equal(t, tbl.Key(kind*64+sq), tbl.Piece(kind, rank, file))
		}
	}
}

func TestParseHash(t *testing.T) {
	h, err := ParseHash("463B96181691FC9C")
	require.NoError(t, err)
	assert.Equal(t, uint64(0x463b96181691fc9c), h.Uint64())
	assert.Equal(t, "463b96181691fc9c", h.String())

	for _, bad := range []string{"", "463b", "463b96181691fc9c00", "463b96181691fcxz"} {
		_, err := ParseHash(bad)
		assert.True(t, errors.Is(err, ErrBadEntry), "input %q", bad)
	}
}

func TestHashXor(t *testing.T) {
	a := FromUint64(0xff00ff00ff00ff00)
	b := FromUint64(0x0f0f0f0f0f0f0f0f)

	assert.Equal(t, uint64(0xf00ff00ff00ff00f), a.Xor(b).Uint64())
	assert.True(t, a.Xor(a).IsZero())
	assert.Equal(t, a, a.Xor(Hash{}))
	// Xor has value semantics.
	assert.Equal(t, uint64(0xff00ff00ff00ff00), a.Uint64())
}

func TestWriteLoadRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Default().Write(&buf))

	tbl, err := Load(&buf)
	require.NoError(t, err)
	assert.Equal(t, Default().Checksum(), tbl.Checksum())
}

func TestLoadErrors(t *testing.T) {
	t.Run("short", func(t *testing.T) {
		_, err := Load(strings.NewReader("9d39247e33776d41\n"))
		assert.True(t, errors.Is(err, ErrTableSize))
	})

	t.Run("long", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Default().Write(&buf))
		buf.WriteString("0000000000000000\n")
		_, err := Load(&buf)
		assert.True(t, errors.Is(err, ErrTableSize))
	})

	t.Run("wrong width", func(t *testing.T) {
		var sb strings.Builder
		for i := 0; i < TableSize; i++ {
			fmt.Fprintf(&sb, "%016x\n", i)
		}
		in := strings.Replace(sb.String(), "0000000000000005", "00000005", 1)
		_, err := Load(strings.NewReader(in))
		assert.True(t, errors.Is(err, ErrBadEntry))
	})
}

func TestLoadFile(t *testing.T) {
	fs := afero.NewMemMapFs()

	var sb strings.Builder
	sb.WriteString("# test table\n\n")
	for i := 0; i < TableSize; i++ {
		fmt.Fprintf(&sb, "%016X\n", uint64(i)+1)
	}
	require.NoError(t, afero.WriteFile(fs, "keys.txt", []byte(sb.String()), 0o644))

	tbl, err := LoadFile(fs, "keys.txt")
	require.NoError(t, err)
	assert.Equal(t, uint64(1), tbl.Key(0).Uint64())
	assert.Equal(t, uint64(TableSize), tbl.Turn().Uint64())
	assert.NotEqual(t, Default().Checksum(), tbl.Checksum())

	_, err = LoadFile(fs, "missing.txt")
	assert.Error(t, err)
}

func TestFromKeys(t *testing.T) {
	var keys [TableSize]uint64
	keys[TurnOffset] = 42
	tbl := FromKeys(keys)
	assert.Equal(t, uint64(42), tbl.Turn().Uint64())
	assert.True(t, tbl.Key(0).IsZero())
}
