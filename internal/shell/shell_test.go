package shell

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hailam/fenkey/internal/board"
	"github.com/hailam/fenkey/internal/book"
	"github.com/hailam/fenkey/internal/polyglot"
)

func run(t *testing.T, bk *book.Book, input string) []string {
	t.Helper()
	var out bytes.Buffer
	require.NoError(t, New(polyglot.New(nil), bk, &out, nil).Run(strings.NewReader(input)))
	return strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
}

func TestShellHash(t *testing.T) {
	lines := run(t, nil, strings.Join([]string{
		"isready",
		"startpos",
		"",
		"hash 8/8/8/8/8/8/8/8 w - - 0 1",
		"hash rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR",
		"frobnicate",
		"quit",
		"startpos",
	}, "\n"))

	assert.Equal(t, []string{
		"readyok",
		"463b96181691fc9c",
		"f8d626aaaf278509",
		InvalidReply,
		"unknown command: frobnicate",
	}, lines)
}

func TestShellBook(t *testing.T) {
	e2, _ := board.ParseSquare("e2")
	e4, _ := board.ParseSquare("e4")

	bk := book.New(polyglot.New(nil))
	bk.Add(0x463b96181691fc9c, book.Entry{Move: book.EncodeMove(e2, e4, board.NoPieceType), Weight: 9})

	lines := run(t, bk, "book "+board.StartFEN+"\nbook 8/8/8/8/8/8/8/8 w - - 0 1\nbook nonsense\n")
	assert.Equal(t, []string{"e2e4 9", "end", "end", InvalidReply}, lines)

	lines = run(t, nil, "book "+board.StartFEN+"\n")
	assert.Equal(t, []string{book.ErrNoBook.Error()}, lines)
}

func TestShellHelp(t *testing.T) {
	lines := run(t, nil, "help\n")
	assert.Len(t, lines, 5)
}
