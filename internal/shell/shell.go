// Package shell implements a line-oriented command loop over the hasher, in
// the style of a UCI engine: one command per line, replies on the output.
package shell

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/hailam/fenkey/internal/board"
	"github.com/hailam/fenkey/internal/book"
	"github.com/hailam/fenkey/internal/zobrist"
)

// InvalidReply is written for any FEN that does not hash.
const InvalidReply = "invalid position"

// Hasher turns a FEN into its Polyglot key.
type Hasher interface {
	Hash(fen string) (zobrist.Hash, error)
}

// Shell reads commands and writes replies.
type Shell struct {
	hasher Hasher
	book   *book.Book
	out    io.Writer
	log    *zap.SugaredLogger
}

// New creates a shell. bk may be nil, in which case book lookups report that
// no book is loaded.
func New(h Hasher, bk *book.Book, out io.Writer, log *zap.SugaredLogger) *Shell {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Shell{hasher: h, book: bk, out: out, log: log}
}

// Run processes commands from in until "quit" or end of input.
func (s *Shell) Run(in io.Reader) error {
	scanner := bufio.NewScanner(in)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		// The argument is kept verbatim so FEN spacing reaches the hasher as typed.
		cmd, arg, _ := strings.Cut(line, " ")

		switch cmd {
		case "isready":
			s.println("readyok")
		case "hash", "key":
			s.handleHash(arg)
		case "startpos":
			s.handleHash(board.StartFEN)
		case "book":
			s.handleBook(arg)
		case "help":
			s.handleHelp()
		case "quit":
			return nil
		default:
			s.log.Debugw("unknown command", "cmd", cmd)
			s.println("unknown command: " + cmd)
		}
	}

	return scanner.Err()
}

// handleHash replies with the key for fen.
func (s *Shell) handleHash(fen string) {
	key, err := s.hasher.Hash(fen)
	if err != nil {
		s.println(InvalidReply)
		return
	}
	s.println(key.String())
}

// handleBook lists the book moves for fen, one per line, then "end".
func (s *Shell) handleBook(fen string) {
	if s.book == nil {
		s.println(book.ErrNoBook.Error())
		return
	}

	entries, err := s.book.ProbeAll(fen)
	if err != nil {
		s.println(InvalidReply)
		return
	}
	for _, e := range entries {
		s.println(fmt.Sprintf("%s %d", e.Move.UCI(), e.Weight))
	}
	s.println("end")
}

func (s *Shell) handleHelp() {
	s.println("hash <fen>   print the Polyglot key")
	s.println("startpos     key of the starting position")
	s.println("book <fen>   list book moves")
	s.println("isready      reply readyok")
	s.println("quit         exit")
}

func (s *Shell) println(msg string) {
	fmt.Fprintln(s.out, msg)
}
