// Package batch hashes lists of FENs on a bounded worker pool.
package batch

import (
	"bufio"
	"context"
	"io"
	"strings"
	"sync"

	"github.com/go-faster/errors"
	"github.com/panjf2000/ants"
	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/hailam/fenkey/internal/zobrist"
)

// Hasher turns a FEN into its Polyglot key. Implementations must be safe for
// concurrent use.
type Hasher interface {
	Hash(fen string) (zobrist.Hash, error)
}

// Result is the outcome for one input FEN.
type Result struct {
	Index int
	FEN   string
	Key   zobrist.Hash
	Err   error
}

// Runner hashes FEN lists with a fixed number of workers.
type Runner struct {
	hasher  Hasher
	workers int
	log     *zap.SugaredLogger
}

// New creates a Runner. workers below 1 is treated as 1.
func New(h Hasher, workers int, log *zap.SugaredLogger) *Runner {
	if workers < 1 {
		workers = 1
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Runner{hasher: h, workers: workers, log: log}
}

// Run hashes every FEN and returns the results in input order. Invalid FENs
// are reported per result, not as an error. Cancelling ctx stops new work
// from being submitted; results for unsubmitted FENs carry ctx's error.
func (r *Runner) Run(ctx context.Context, fens []string) ([]Result, error) {
	pool, err := ants.NewPool(r.workers)
	if err != nil {
		return nil, errors.Wrap(err, "create pool")
	}
	defer pool.Release()

	results := make([]Result, len(fens))
	var wg sync.WaitGroup

	submitted := 0
	for i, fen := range fens {
		if ctx.Err() != nil {
			break
		}

		i, fen := i, fen // per-iteration copies (go.mod targets go1.21 loop semantics)
		wg.Add(1)
		err := pool.Submit(func() {
			defer wg.Done()
			key, err := r.hasher.Hash(fen)
			results[i] = Result{Index: i, FEN: fen, Key: key, Err: err}
		})
		if err != nil {
			wg.Done()
			wg.Wait()
			return nil, errors.Wrap(err, "submit")
		}
		submitted++
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		for i := submitted; i < len(fens); i++ {
			results[i] = Result{Index: i, FEN: fens[i], Err: err}
		}
		r.log.Warnw("batch cancelled", "submitted", submitted, "total", len(fens))
		return results, err
	}

	r.log.Debugw("batch finished", "fens", len(fens), "workers", r.workers)
	return results, nil
}

// Summary counts valid and invalid results.
func Summary(results []Result) (valid, invalid int) {
	for _, res := range results {
		if res.Err != nil {
			invalid++
		} else {
			valid++
		}
	}
	return valid, invalid
}

// ReadFENs reads one FEN per line, skipping blank lines and '#' comments.
// Surrounding whitespace is trimmed.
func ReadFENs(r io.Reader) ([]string, error) {
	var fens []string

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fens = append(fens, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "read fens")
	}
	return fens, nil
}

// ReadFile reads a FEN list from path on fs.
func ReadFile(fs afero.Fs, path string) ([]string, error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open fen list")
	}
	defer f.Close()

	return ReadFENs(f)
}
