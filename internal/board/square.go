// Package board implements the FEN-level vocabulary shared by the hasher and
// the book reader: squares, pieces and the FEN field layout.
package board

import "github.com/go-faster/errors"

// Square indexes the board rank-major from a1: a1=0, h1=7, a8=56, h8=63.
// This is also the order of the 64 keys per piece kind in the Polyglot table.
type Square uint8

const (
	A1       Square = 0
	H8       Square = 63
	NoSquare Square = 64
)

// ErrBadSquare is returned for text that is not a square name.
var ErrBadSquare = errors.New("invalid square")

func (sq Square) File() int { return int(sq) & 7 }
func (sq Square) Rank() int { return int(sq) >> 3 }

// String returns the square name ("e4"), or "-" for NoSquare.
func (sq Square) String() string {
	if !sq.IsValid() {
		return "-"
	}
	return string([]byte{byte('a' + sq.File()), byte('1' + sq.Rank())})
}

// NewSquare returns the square at file, rank (both 0-based).
func NewSquare(file, rank int) Square {
	return Square(rank*8 + file)
}

// ParseSquare parses a lowercase square name such as "e3".
func ParseSquare(s string) (Square, error) {
	if len(s) != 2 {
		return NoSquare, errors.Wrapf(ErrBadSquare, "%q", s)
	}

	file, rank := int(s[0])-'a', int(s[1])-'1'
	if file < 0 || file > 7 || rank < 0 || rank > 7 {
		return NoSquare, errors.Wrapf(ErrBadSquare, "%q", s)
	}
	return NewSquare(file, rank), nil
}

func (sq Square) IsValid() bool {
	return sq < NoSquare
}
