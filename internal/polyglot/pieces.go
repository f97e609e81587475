package polyglot

import (
	"github.com/hailam/fenkey/internal/board"
	"github.com/hailam/fenkey/internal/zobrist"
)

// hashPieces folds in a key for every piece in the placement field.
//
// FEN lists the eighth rank first, so FEN rank i is board rank 7-i. Every rank
// must cover exactly eight files; a rank that does not marks the state invalid
// and decoding moves on to the next rank. An unknown character marks the
// state invalid and ends decoding at once.
func (h *Hasher) hashPieces(st *parseState, acc zobrist.Hash, ranks []string) zobrist.Hash {
	if len(ranks) != 8 {
		st.invalid = true
		return acc
	}

	for i, rankStr := range ranks {
		rank := 7 - i
		file := 0

		for j := 0; j < len(rankStr); j++ {
			c := rankStr[j]

			if c >= '1' && c <= '8' {
				file += int(c - '0')
				continue
			}

			piece := board.PieceFromChar(c)
			if piece == board.NoPiece {
				st.invalid = true
				return acc
			}

			// Overfull ranks keep counting past the h-file; skip the key
			// rather than index into the next rank's slots.
			if file < 8 {
				acc = acc.Xor(h.table.Piece(piece.PolyglotKind(), rank, file))
			}
			if piece.Type() == board.Pawn {
				st.notePawn(piece.Color(), rank, file)
			}
			file++
		}

		if file != 8 {
			st.invalid = true
		}
	}

	return acc
}
