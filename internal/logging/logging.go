// Package logging builds the zap logger for the environment.
package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/hailam/fenkey/internal/config"
)

// New returns a development logger for dev and a production logger for prod.
// Production logging starts at warn level, since routine key lookups are
// reported on stdout by the CLI itself.
func New(env config.Environment) (*zap.SugaredLogger, error) {
	var (
		log *zap.Logger
		err error
	)

	if env == config.EnvProd {
		cfg := zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
		log, err = cfg.Build()
	} else {
		log, err = zap.NewDevelopment()
	}
	if err != nil {
		return nil, err
	}

	return log.Sugar(), nil
}

// Nop returns a logger that discards everything.
func Nop() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}
