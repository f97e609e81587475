package zobrist

import (
	"bufio"
	_ "embed"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/dgryski/go-farm"
	"github.com/go-faster/errors"
	"github.com/spf13/afero"
)

// Layout of the Polyglot random64 array.
const (
	PieceKinds    = 12
	PieceKeys     = PieceKinds * 64
	CastleOffset  = 768 // K, Q, k, q
	EnPassantBase = 772 // files a..h
	TurnOffset    = 780 // white to move
	TableSize     = 781
)

// Castling key slots, relative to CastleOffset.
const (
	WhiteKingSide = iota
	WhiteQueenSide
	BlackKingSide
	BlackQueenSide
)

// ErrTableSize is returned when a key file does not hold exactly TableSize entries.
var ErrTableSize = errors.New("zobrist: wrong number of table entries")

//go:embed random64.txt
var random64 string

var (
	defaultOnce  sync.Once
	defaultTable *Table
)

// Table is the read-only array of Polyglot keys.
type Table struct {
	keys [TableSize]Hash
}

// Default returns the published Polyglot table. The embedded data is checked
// by the package tests, so a decode failure here is a build defect.
func Default() *Table {
	defaultOnce.Do(func() {
		t, err := Load(strings.NewReader(random64))
		if err != nil {
			panic(fmt.Sprintf("embedded polyglot table: %v", err))
		}
		defaultTable = t
	})
	return defaultTable
}

// Load reads a key table: one 16-digit hex entry per line, in index order.
// Blank lines and lines starting with '#' are skipped.
func Load(r io.Reader) (*Table, error) {
	t := &Table{}
	n := 0

	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		s := strings.TrimSpace(scanner.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		if n == TableSize {
			return nil, errors.Wrapf(ErrTableSize, "extra entry at line %d", line)
		}
		h, err := ParseHash(s)
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", line)
		}
		t.keys[n] = h
		n++
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "read table")
	}
	if n != TableSize {
		return nil, errors.Wrapf(ErrTableSize, "got %d, want %d", n, TableSize)
	}
	return t, nil
}

// LoadFile reads a key table from path on fs.
func LoadFile(fs afero.Fs, path string) (*Table, error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open table")
	}
	defer f.Close()

	t, err := Load(f)
	if err != nil {
		return nil, errors.Wrapf(err, "load %s", path)
	}
	return t, nil
}

// FromKeys builds a table from numeric keys.
func FromKeys(keys [TableSize]uint64) *Table {
	t := &Table{}
	for i, k := range keys {
		t.keys[i] = FromUint64(k)
	}
	return t
}

// Key returns entry i. Callers index with the layout constants; an index
// outside 0..780 panics like any array access.
func (t *Table) Key(i int) Hash {
	return t.keys[i]
}

// Piece returns the key for a piece kind (0..11, Polyglot order) on rank/file.
func (t *Table) Piece(kind, rank, file int) Hash {
	return t.keys[kind*64+rank*8+file]
}

// Castle returns the key for one castling right (WhiteKingSide..BlackQueenSide).
func (t *Table) Castle(right int) Hash {
	return t.keys[CastleOffset+right]
}

// EnPassant returns the key for an en-passant file (0 = a).
func (t *Table) EnPassant(file int) Hash {
	return t.keys[EnPassantBase+file]
}

// Turn returns the white-to-move key.
func (t *Table) Turn() Hash {
	return t.keys[TurnOffset]
}

// Write encodes the table in the form Load reads.
func (t *Table) Write(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for _, k := range t.keys {
		if _, err := bw.WriteString(k.String()); err != nil {
			return err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Checksum fingerprints the table contents.
func (t *Table) Checksum() uint64 {
	buf := make([]byte, 0, TableSize*Size)
	for _, k := range t.keys {
		buf = append(buf, k[:]...)
	}
	return farm.Fingerprint64(buf)
}
