// Package cli wires the fenkey commands.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/go-faster/errors"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hailam/fenkey/internal/cache"
	"github.com/hailam/fenkey/internal/config"
	"github.com/hailam/fenkey/internal/logging"
	"github.com/hailam/fenkey/internal/polyglot"
	"github.com/hailam/fenkey/internal/zobrist"
)

type Options struct {
	ConfigPath string
	BookPath   string
}

type RootCommand struct {
	*cobra.Command
	Options Options

	fs  afero.Fs
	env *env
}

// env is what every subcommand needs, built once per invocation.
type env struct {
	cfg    config.Config
	log    *zap.SugaredLogger
	table  *zobrist.Table
	hasher *cache.CachedHasher
}

func Init(name string) *RootCommand {
	return initWithFs(name, afero.NewOsFs())
}

func initWithFs(name string, fs afero.Fs) *RootCommand {
	cmd := &RootCommand{
		Command: &cobra.Command{
			Use:           name,
			Short:         "Polyglot opening-book keys for FEN positions",
			SilenceUsage:  true,
			SilenceErrors: true,
		},
		fs: fs,
	}
	cmd.initFlags()

	cmd.PersistentPostRunE = func(*cobra.Command, []string) error {
		return cmd.close()
	}

	cmd.AddCommand(
		cmd.hashCmd(),
		cmd.batchCmd(),
		cmd.bookCmd(),
		cmd.indexCmd(),
		cmd.lookupCmd(),
		cmd.tableCmd(),
		cmd.shellCmd(),
	)

	return cmd
}

func (c *RootCommand) Execute(ctx context.Context) error {
	return c.ExecuteContext(ctx)
}

func (c *RootCommand) MustExecute(ctx context.Context) {
	if err := c.Execute(ctx); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "fenkey: %v\n", err)
		os.Exit(1)
	}
}

// setup loads config, logger and key table on first use.
func (c *RootCommand) setup() (*env, error) {
	if c.env != nil {
		return c.env, nil
	}

	cfg, err := config.Load(c.Options.ConfigPath)
	if err != nil {
		return nil, errors.Wrap(err, "load config")
	}
	if c.Options.BookPath != "" {
		cfg.BookPath = c.Options.BookPath
	}

	log, err := logging.New(cfg.Environment)
	if err != nil {
		return nil, errors.Wrap(err, "create logger")
	}

	table := zobrist.Default()
	if cfg.TablePath != "" {
		if table, err = zobrist.LoadFile(c.fs, cfg.TablePath); err != nil {
			return nil, err
		}
		log.Infow("loaded key table", "path", cfg.TablePath, "checksum", fmt.Sprintf("%016x", table.Checksum()))
	}

	hasher, err := cache.New(polyglot.New(table), cfg.CacheSize, log)
	if err != nil {
		return nil, errors.Wrap(err, "create cache")
	}

	c.env = &env{cfg: cfg, log: log, table: table, hasher: hasher}
	return c.env, nil
}

func (c *RootCommand) close() error {
	if c.env == nil {
		return nil
	}

	hits, misses := c.env.hasher.Stats()
	c.env.log.Debugw("cache stats", "hits", hits, "misses", misses, "hit_rate", c.env.hasher.HitRate())

	// Sync fails on terminals and pipes for stderr; nothing useful to report.
	_ = c.env.log.Sync()
	c.env = nil
	return nil
}
