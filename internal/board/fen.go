package board

import (
	"regexp"
	"strings"

	"github.com/go-faster/errors"
)

// StartFEN is the FEN string for the starting position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// NoCastling is the castling field when neither side may castle.
const NoCastling = "-"

var fenPattern = regexp.MustCompile(
	`^[pnbrqkPNBRQK1-8]+(?:/[pnbrqkPNBRQK1-8]+){7}` + // piece placement
		` [wb]` + // side to move
		` (?:-|[KQkq]{1,4})` + // castling
		` [a-h1-8-]{1,2}` + // en passant
		` [0-9]+ [0-9]+$`, // clocks
)

// Fields holds the six space-separated FEN fields, unparsed.
type Fields struct {
	Placement string
	Side      string
	Castling  string
	EnPassant string
	HalfMove  string
	FullMove  string
}

// ValidFEN reports whether fen has the shape of a complete FEN record.
// It checks syntax only; rank widths are left to the board decoder.
func ValidFEN(fen string) bool {
	if !fenPattern.MatchString(fen) {
		return false
	}
	// RE2 has no backreferences, so repeated castling letters are caught here.
	castling := strings.Fields(fen)[2]
	for i := 1; i < len(castling); i++ {
		if strings.IndexByte(castling[:i], castling[i]) >= 0 {
			return false
		}
	}
	return true
}

// SplitFEN splits fen on single spaces. The first four fields are required;
// the clocks are optional and left empty when absent.
func SplitFEN(fen string) (Fields, error) {
	parts := strings.Split(fen, " ")
	if len(parts) < 4 {
		return Fields{}, errors.Errorf("invalid FEN: need at least 4 fields, got %d", len(parts))
	}

	f := Fields{
		Placement: parts[0],
		Side:      parts[1],
		Castling:  parts[2],
		EnPassant: parts[3],
	}
	if len(parts) > 4 {
		f.HalfMove = parts[4]
	}
	if len(parts) > 5 {
		f.FullMove = parts[5]
	}
	return f, nil
}

// Ranks splits the piece placement into its rank strings, eighth rank first.
func (f Fields) Ranks() []string {
	return strings.Split(f.Placement, "/")
}

// String joins the fields back into a FEN record.
func (f Fields) String() string {
	parts := []string{f.Placement, f.Side, f.Castling, f.EnPassant}
	if f.HalfMove != "" {
		parts = append(parts, f.HalfMove)
		if f.FullMove != "" {
			parts = append(parts, f.FullMove)
		}
	}
	return strings.Join(parts, " ")
}
