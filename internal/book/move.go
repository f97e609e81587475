package book

import "github.com/hailam/fenkey/internal/board"

// Move is a move in Polyglot's 16-bit encoding:
//
//	bits 0-5:   to square
//	bits 6-11:  from square
//	bits 12-14: promotion piece (0=none, 1=knight, 2=bishop, 3=rook, 4=queen)
//
// Castling is stored as the king capturing its own rook.
type Move uint16

// NoMove is the zero encoding, which books use for "no move".
const NoMove Move = 0

var promotionPieces = [...]board.PieceType{board.NoPieceType, board.Knight, board.Bishop, board.Rook, board.Queen}

// Polyglot king-takes-rook castling squares mapped to the king's destination.
var castlingTargets = map[[2]board.Square]board.Square{
	{board.NewSquare(4, 0), board.NewSquare(7, 0)}: board.NewSquare(6, 0), // e1h1 -> e1g1
	{board.NewSquare(4, 0), board.NewSquare(0, 0)}: board.NewSquare(2, 0), // e1a1 -> e1c1
	{board.NewSquare(4, 7), board.NewSquare(7, 7)}: board.NewSquare(6, 7), // e8h8 -> e8g8
	{board.NewSquare(4, 7), board.NewSquare(0, 7)}: board.NewSquare(2, 7), // e8a8 -> e8c8
}

// From returns the origin square.
func (m Move) From() board.Square {
	return board.NewSquare(int(m>>6)&7, int(m>>9)&7)
}

// To returns the destination square as stored in the book.
func (m Move) To() board.Square {
	return board.NewSquare(int(m)&7, int(m>>3)&7)
}

// Promotion returns the promotion piece type, or NoPieceType.
func (m Move) Promotion() board.PieceType {
	p := int(m>>12) & 7
	if p >= len(promotionPieces) {
		return board.NoPieceType
	}
	return promotionPieces[p]
}

// IsCastling reports whether m is one of the four king-takes-rook encodings.
// Without the board a queen or rook move between the same squares reads the
// same way.
func (m Move) IsCastling() bool {
	_, ok := castlingTargets[[2]board.Square{m.From(), m.To()}]
	return ok
}

// UCI renders m in UCI long algebraic form, with castling written as the
// king's two-square move.
func (m Move) UCI() string {
	if m == NoMove {
		return "0000"
	}

	from, to := m.From(), m.To()
	if target, ok := castlingTargets[[2]board.Square{from, to}]; ok {
		to = target
	}

	s := from.String() + to.String()
	if pt := m.Promotion(); pt != board.NoPieceType {
		s += string(pt.Char())
	}
	return s
}

// String implements fmt.Stringer.
func (m Move) String() string {
	return m.UCI()
}

// EncodeMove builds a Polyglot move from squares and an optional promotion.
func EncodeMove(from, to board.Square, promo board.PieceType) Move {
	m := Move(to.File()) | Move(to.Rank())<<3 | Move(from.File())<<6 | Move(from.Rank())<<9
	for i, pt := range promotionPieces {
		if i > 0 && pt == promo {
			m |= Move(i) << 12
		}
	}
	return m
}
