// Package zobrist holds the Polyglot random key table and the fixed-width
// hash value that keys are combined into.
package zobrist

import (
	"encoding/binary"
	"encoding/hex"

	"github.com/go-faster/errors"
)

// Size is the width of a Hash in bytes.
const Size = 8

// Hash is a 64-bit Zobrist key stored big-endian.
//
// The zero value is the empty accumulator. Combining is bytewise XOR, and the
// width is fixed by the array type, so two hashes always combine to a Hash.
type Hash [Size]byte

// ErrBadEntry is returned when a hex entry is not exactly 16 hex digits.
var ErrBadEntry = errors.New("zobrist: malformed key entry")

// FromUint64 returns the big-endian Hash of v.
func FromUint64(v uint64) Hash {
	var h Hash
	binary.BigEndian.PutUint64(h[:], v)
	return h
}

// ParseHash decodes 16 hex digits (either case) into a Hash.
func ParseHash(s string) (Hash, error) {
	var h Hash
	if len(s) != 2*Size {
		return h, errors.Wrapf(ErrBadEntry, "%q has length %d", s, len(s))
	}
	if _, err := hex.Decode(h[:], []byte(s)); err != nil {
		return Hash{}, errors.Wrapf(ErrBadEntry, "%q: %v", s, err)
	}
	return h, nil
}

// Xor returns h combined with o.
func (h Hash) Xor(o Hash) Hash {
	for i := range h {
		h[i] ^= o[i]
	}
	return h
}

// Uint64 returns the numeric value of h.
func (h Hash) Uint64() uint64 {
	return binary.BigEndian.Uint64(h[:])
}

// IsZero reports whether h is the empty accumulator.
func (h Hash) IsZero() bool {
	return h == Hash{}
}

// String returns the 16-digit lowercase hex form used by Polyglot tools.
func (h Hash) String() string {
	return hex.EncodeToString(h[:])
}
