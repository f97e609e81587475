package cli

import (
	"fmt"

	"github.com/go-faster/errors"
	"github.com/spf13/cobra"

	"github.com/hailam/fenkey/internal/batch"
	"github.com/hailam/fenkey/internal/book"
	"github.com/hailam/fenkey/internal/index"
	"github.com/hailam/fenkey/internal/polyglot"
	"github.com/hailam/fenkey/internal/shell"
	"github.com/hailam/fenkey/internal/storage"
	"github.com/hailam/fenkey/internal/zobrist"
)

// errSomeInvalid makes the process exit non-zero after all output is written.
var errSomeInvalid = errors.New("one or more positions were invalid")

func (c *RootCommand) hashCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash FEN...",
		Short: "Print the Polyglot key of each FEN argument",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := c.setup()
			if err != nil {
				return err
			}

			failed := false
			for _, fen := range args {
				key, err := e.hasher.Hash(fen)
				if err != nil {
					failed = true
					fmt.Fprintln(cmd.OutOrStdout(), polyglot.ErrInvalidPosition.Error())
					continue
				}
				fmt.Fprintln(cmd.OutOrStdout(), key.String())
			}
			if failed {
				return errSomeInvalid
			}
			return nil
		},
	}
}

func (c *RootCommand) batchCmd() *cobra.Command {
	var summary bool

	cmd := &cobra.Command{
		Use:   "batch [FILE]",
		Short: "Hash one FEN per line from FILE or stdin",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := c.setup()
			if err != nil {
				return err
			}

			var fens []string
			if len(args) == 1 {
				fens, err = batch.ReadFile(c.fs, args[0])
			} else {
				fens, err = batch.ReadFENs(cmd.InOrStdin())
			}
			if err != nil {
				return err
			}

			results, err := batch.New(e.hasher, e.cfg.Workers, e.log).Run(cmd.Context(), fens)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, res := range results {
				if res.Err != nil {
					fmt.Fprintf(out, "%s\t%s\n", polyglot.ErrInvalidPosition.Error(), res.FEN)
					continue
				}
				fmt.Fprintf(out, "%s\t%s\n", res.Key, res.FEN)
			}

			valid, invalid := batch.Summary(results)
			if summary {
				fmt.Fprintf(cmd.ErrOrStderr(), "%d valid, %d invalid\n", valid, invalid)
			}
			if invalid > 0 {
				return errSomeInvalid
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&summary, "summary", "s", false, "Print valid/invalid counts to stderr")

	return cmd
}

func (c *RootCommand) loadBook(e *env) (*book.Book, error) {
	return book.LoadPolyglot(c.fs, e.cfg.BookPath, e.hasher, e.log)
}

func (c *RootCommand) bookCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "book FEN",
		Short: "List opening book moves for a position",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := c.setup()
			if err != nil {
				return err
			}

			bk, err := c.loadBook(e)
			if err != nil {
				return err
			}

			entries, err := bk.ProbeAll(args[0])
			if err != nil {
				return err
			}
			for _, entry := range entries {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d\n", entry.Move.UCI(), entry.Weight)
			}
			return nil
		},
	}
}

func (c *RootCommand) openIndex(e *env) (*storage.Storage, error) {
	return storage.Open(e.table, storage.Options{Dir: e.cfg.DBDir, Logger: e.log})
}

func (c *RootCommand) indexCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "index FILE",
		Short: "Add the positions in FILE to the key index",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := c.setup()
			if err != nil {
				return err
			}

			fens, err := batch.ReadFile(c.fs, args[0])
			if err != nil {
				return err
			}

			store, err := c.openIndex(e)
			if err != nil {
				return err
			}
			defer store.Close()

			stats, err := index.NewBuilder(e.hasher, store, e.log).Build(cmd.Context(), fens)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "indexed %d positions, skipped %d invalid\n", stats.Indexed, stats.Invalid)
			return nil
		},
	}
}

func (c *RootCommand) lookupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lookup KEY",
		Short: "Print the indexed FENs for a 16-digit hex key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := c.setup()
			if err != nil {
				return err
			}

			key, err := zobrist.ParseHash(args[0])
			if err != nil {
				return err
			}

			store, err := c.openIndex(e)
			if err != nil {
				return err
			}
			defer store.Close()

			rec, err := store.Lookup(key)
			if err != nil {
				return err
			}
			for _, fen := range rec.FENs {
				fmt.Fprintln(cmd.OutOrStdout(), fen)
			}
			return nil
		},
	}
}

func (c *RootCommand) tableCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "table",
		Short: "Print the key table in loadable form",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := c.setup()
			if err != nil {
				return err
			}
			return e.table.Write(cmd.OutOrStdout())
		},
	}
}

func (c *RootCommand) shellCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Read commands from stdin",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := c.setup()
			if err != nil {
				return err
			}

			var bk *book.Book
			if e.cfg.BookPath != "" {
				if bk, err = c.loadBook(e); err != nil {
					return err
				}
			}

			return shell.New(e.hasher, bk, cmd.OutOrStdout(), e.log).Run(cmd.InOrStdin())
		},
	}
}
