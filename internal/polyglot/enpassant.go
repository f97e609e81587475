package polyglot

import "github.com/hailam/fenkey/internal/board"

// Target ranks of a double pawn push, and the rank the capturing pawn must
// stand on for each.
const (
	whiteTargetRank = 2 // e3: white just pushed, black captures from rank 3
	blackTargetRank = 5 // e6: black just pushed, white captures from rank 4
	blackCaptorRank = 3
	whiteCaptorRank = 4
)

// parseEnPassant records the en-passant target. A target that is not a
// square marks the state invalid and leaves the target unset.
func (st *parseState) parseEnPassant(s string) {
	if s == "-" {
		return
	}

	sq, err := board.ParseSquare(s)
	if err != nil {
		st.invalid = true
		return
	}

	st.epFile = sq.File()
	st.epRank = sq.Rank()
}

// notePawn marks the en-passant key as live when the pawn stands beside the
// pushed pawn on the right rank to capture onto the target square.
// The key is applied once however many pawns qualify.
func (st *parseState) notePawn(c board.Color, rank, file int) {
	if st.epFile < 0 {
		return
	}

	switch {
	case c == board.Black && st.epRank == whiteTargetRank && rank == blackCaptorRank:
	case c == board.White && st.epRank == blackTargetRank && rank == whiteCaptorRank:
	default:
		return
	}

	if (st.epFile > 0 && file == st.epFile-1) || (st.epFile < 7 && file == st.epFile+1) {
		st.epCapturable = true
	}
}
