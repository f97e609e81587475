// Package book reads Polyglot opening books and looks positions up by FEN.
package book

import (
	"encoding/binary"
	"io"
	"math/rand"
	"sort"

	"github.com/go-faster/errors"
	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/hailam/fenkey/internal/zobrist"
)

// EntrySize is the on-disk size of one book record.
const EntrySize = 16

// ErrNoBook is returned when no book file is configured.
var ErrNoBook = errors.New("no opening book configured")

// Hasher turns a FEN into its Polyglot key.
type Hasher interface {
	Hash(fen string) (zobrist.Hash, error)
}

// Entry represents a single book entry.
type Entry struct {
	Move   Move
	Weight uint16
	Learn  uint32
}

// Book represents an opening book.
type Book struct {
	hasher  Hasher
	entries map[uint64][]Entry
	records int
}

// New creates an empty book that keys positions with h.
func New(h Hasher) *Book {
	return &Book{
		hasher:  h,
		entries: make(map[uint64][]Entry),
	}
}

// LoadPolyglot loads a Polyglot format opening book from a file.
func LoadPolyglot(fs afero.Fs, filename string, h Hasher, log *zap.SugaredLogger) (*Book, error) {
	if filename == "" {
		return nil, ErrNoBook
	}

	file, err := fs.Open(filename)
	if err != nil {
		return nil, errors.Wrap(err, "open book")
	}
	defer file.Close()

	b, err := LoadPolyglotReader(file, h)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", filename)
	}

	if log != nil {
		log.Infow("loaded opening book", "path", filename, "positions", b.Size(), "records", b.records)
	}
	return b, nil
}

// LoadPolyglotReader loads a Polyglot format book from a reader.
//
// Each record is 16 big-endian bytes: an 8-byte position key, a 2-byte move,
// a 2-byte weight and 4 bytes of learning data.
func LoadPolyglotReader(r io.Reader, h Hasher) (*Book, error) {
	b := New(h)
	var rec [EntrySize]byte

	for {
		_, err := io.ReadFull(r, rec[:])
		if err == io.EOF {
			break
		}
		if err == io.ErrUnexpectedEOF {
			return nil, errors.Errorf("truncated record after %d entries", b.records)
		}
		if err != nil {
			return nil, err
		}

		key := binary.BigEndian.Uint64(rec[0:8])
		e := Entry{
			Move:   Move(binary.BigEndian.Uint16(rec[8:10])),
			Weight: binary.BigEndian.Uint16(rec[10:12]),
			Learn:  binary.BigEndian.Uint32(rec[12:16]),
		}
		b.records++
		if e.Move != NoMove {
			b.Add(key, e)
		}
	}

	return b, nil
}

// Add stores e under key.
func (b *Book) Add(key uint64, e Entry) {
	b.entries[key] = append(b.entries[key], e)
}

// WriteTo encodes the book in Polyglot format, keys ascending as book tools
// expect for binary search.
func (b *Book) WriteTo(w io.Writer) (int64, error) {
	keys := make([]uint64, 0, len(b.entries))
	for k := range b.entries {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	var (
		rec [EntrySize]byte
		n   int64
	)
	for _, k := range keys {
		for _, e := range b.entries[k] {
			binary.BigEndian.PutUint64(rec[0:8], k)
			binary.BigEndian.PutUint16(rec[8:10], uint16(e.Move))
			binary.BigEndian.PutUint16(rec[10:12], e.Weight)
			binary.BigEndian.PutUint32(rec[12:16], e.Learn)
			written, err := w.Write(rec[:])
			n += int64(written)
			if err != nil {
				return n, err
			}
		}
	}
	return n, nil
}

// Lookup returns the entries stored under key, sorted by weight (highest first).
func (b *Book) Lookup(key uint64) []Entry {
	if b == nil {
		return nil
	}

	entries, ok := b.entries[key]
	if !ok {
		return nil
	}

	result := make([]Entry, len(entries))
	copy(result, entries)
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Weight > result[j].Weight
	})
	return result
}

// ProbeAll returns all book moves for the position, sorted by weight.
func (b *Book) ProbeAll(fen string) ([]Entry, error) {
	if b == nil {
		return nil, nil
	}

	key, err := b.hasher.Hash(fen)
	if err != nil {
		return nil, err
	}
	return b.Lookup(key.Uint64()), nil
}

// Probe looks up a position and returns a move using weighted random selection.
func (b *Book) Probe(fen string) (Entry, bool, error) {
	entries, err := b.ProbeAll(fen)
	if err != nil || len(entries) == 0 {
		return Entry{}, false, err
	}

	totalWeight := uint32(0)
	for _, e := range entries {
		totalWeight += uint32(e.Weight)
	}

	if totalWeight == 0 {
		// All weights are 0, just pick the first
		return entries[0], true, nil
	}

	r := rand.Uint32() % totalWeight
	cumulative := uint32(0)
	for _, e := range entries {
		cumulative += uint32(e.Weight)
		if r < cumulative {
			return e, true, nil
		}
	}

	return entries[0], true, nil
}

// Size returns the number of unique positions in the book.
func (b *Book) Size() int {
	if b == nil {
		return 0
	}
	return len(b.entries)
}
