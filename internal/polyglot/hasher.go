// Package polyglot computes Polyglot opening-book keys straight from FEN text.
//
// The key is the XOR of entries from a zobrist.Table selected by the pieces on
// the board, castling rights, a capturable en-passant file and white to move.
// Hashing never needs a full position model; it decodes the FEN fields and
// folds each feature into the accumulator as it goes.
package polyglot

import (
	"github.com/go-faster/errors"

	"github.com/hailam/fenkey/internal/board"
	"github.com/hailam/fenkey/internal/zobrist"
)

// ErrInvalidPosition is the only error Hash returns. Every syntactic or
// structural problem with the FEN maps to it, without detail.
var ErrInvalidPosition = errors.New("invalid position")

// Hasher computes Polyglot keys. It holds only the read-only key table, so a
// single Hasher may be shared by any number of goroutines.
type Hasher struct {
	table *zobrist.Table
}

// New returns a Hasher over t, or over the published table when t is nil.
func New(t *zobrist.Table) *Hasher {
	if t == nil {
		t = zobrist.Default()
	}
	return &Hasher{table: t}
}

// Table returns the key table the hasher reads from.
func (h *Hasher) Table() *zobrist.Table {
	return h.table
}

// parseState is the per-call scratch state. It lives on the caller's stack
// and is threaded through each stage explicitly.
type parseState struct {
	invalid      bool
	epRank       int
	epFile       int
	epCapturable bool
}

func newParseState() parseState {
	return parseState{epRank: -1, epFile: -1}
}

// Hash returns the Polyglot key for fen.
//
// Stages run in a fixed order: syntax gate, en-passant target, board, the
// en-passant key, side to move, castling. A structural problem found on the
// way marks the state invalid but the remaining stages still run; only the
// syntax gate and an unknown board character stop work early.
func (h *Hasher) Hash(fen string) (zobrist.Hash, error) {
	if !board.ValidFEN(fen) {
		return zobrist.Hash{}, ErrInvalidPosition
	}

	fields, err := board.SplitFEN(fen)
	if err != nil {
		return zobrist.Hash{}, ErrInvalidPosition
	}

	st := newParseState()
	var acc zobrist.Hash

	st.parseEnPassant(fields.EnPassant)
	acc = h.hashPieces(&st, acc, fields.Ranks())
	if st.epCapturable {
		acc = acc.Xor(h.table.EnPassant(st.epFile))
	}
	acc = h.hashSide(acc, fields.Side)
	acc = h.hashCastling(acc, fields.Castling)

	if st.invalid {
		return zobrist.Hash{}, ErrInvalidPosition
	}
	return acc, nil
}

// HashString returns the key for fen as 16 lowercase hex digits.
func (h *Hasher) HashString(fen string) (string, error) {
	key, err := h.Hash(fen)
	if err != nil {
		return "", err
	}
	return key.String(), nil
}

// Key returns the key for fen as an integer, the form Polyglot books store.
func (h *Hasher) Key(fen string) (uint64, error) {
	key, err := h.Hash(fen)
	if err != nil {
		return 0, err
	}
	return key.Uint64(), nil
}

// hashSide folds in the white-to-move key.
func (h *Hasher) hashSide(acc zobrist.Hash, side string) zobrist.Hash {
	if board.ColorFromFEN(side) == board.White {
		acc = acc.Xor(h.table.Turn())
	}
	return acc
}

var castlingLetters = [...]struct {
	letter byte
	right  int
}{
	{'K', zobrist.WhiteKingSide},
	{'Q', zobrist.WhiteQueenSide},
	{'k', zobrist.BlackKingSide},
	{'q', zobrist.BlackQueenSide},
}

// hashCastling folds in one key per right present in the field, whatever
// order the letters are written in.
func (h *Hasher) hashCastling(acc zobrist.Hash, castling string) zobrist.Hash {
	if castling == board.NoCastling {
		return acc
	}
	for _, c := range castlingLetters {
		for i := 0; i < len(castling); i++ {
			if castling[i] == c.letter {
				acc = acc.Xor(h.table.Castle(c.right))
				break
			}
		}
	}
	return acc
}
