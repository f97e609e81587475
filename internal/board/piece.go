package board

import "strings"

// Color is the side a piece belongs to, or the side to move.
type Color uint8

const (
	White Color = iota
	Black
	NoColor
)

// Other returns the opposite color.
func (c Color) Other() Color {
	return c ^ 1
}

func (c Color) String() string {
	switch c {
	case White:
		return "White"
	case Black:
		return "Black"
	default:
		return "NoColor"
	}
}

// ColorFromFEN maps the side-to-move field to a Color.
func ColorFromFEN(s string) Color {
	switch s {
	case "w":
		return White
	case "b":
		return Black
	default:
		return NoColor
	}
}

// PieceType is a piece without its color, in Polyglot's order.
type PieceType uint8

const (
	Pawn PieceType = iota
	Knight
	Bishop
	Rook
	Queen
	King
	NoPieceType
)

const (
	blackLetters = "pnbrqk"
	pieceLetters = "PNBRQK" + blackLetters
)

// Char returns the lowercase FEN letter, or ' ' for NoPieceType.
func (pt PieceType) Char() byte {
	if pt >= NoPieceType {
		return ' '
	}
	return blackLetters[pt]
}

// Piece is a colored piece, encoded as type + color*6 so that it indexes
// pieceLetters directly.
type Piece uint8

const (
	WhitePawn Piece = iota
	WhiteKnight
	WhiteBishop
	WhiteRook
	WhiteQueen
	WhiteKing
	BlackPawn
	BlackKnight
	BlackBishop
	BlackRook
	BlackQueen
	BlackKing
	NoPiece
)

// NewPiece combines a type and a color.
func NewPiece(pt PieceType, c Color) Piece {
	if pt >= NoPieceType || c >= NoColor {
		return NoPiece
	}
	return Piece(pt) + Piece(c)*6
}

func (p Piece) Type() PieceType {
	if p >= NoPiece {
		return NoPieceType
	}
	return PieceType(p % 6)
}

func (p Piece) Color() Color {
	if p >= NoPiece {
		return NoColor
	}
	return Color(p / 6)
}

// PolyglotKind returns the piece's row in the Polyglot key array:
// bp, wp, bn, wn, bb, wb, br, wr, bq, wq, bk, wk. NoPiece returns -1.
func (p Piece) PolyglotKind() int {
	if p >= NoPiece {
		return -1
	}
	kind := 2 * int(p.Type())
	if p.Color() == White {
		kind++
	}
	return kind
}

// String returns the FEN letter: uppercase for white, lowercase for black.
func (p Piece) String() string {
	if p >= NoPiece {
		return " "
	}
	return pieceLetters[p : p+1]
}

// PieceFromChar maps a FEN letter to a Piece. Anything else, digits
// included, is NoPiece.
func PieceFromChar(c byte) Piece {
	i := strings.IndexByte(pieceLetters, c)
	if i < 0 {
		return NoPiece
	}
	return Piece(i)
}
