// Package logging builds the zap logger used by the drivers and watcher.
//
// User-facing status lines go through fledge/output; this logger carries
// the structured per-domain trail and writes to stderr.
package logging

import (
	"io"
	"os"

	"github.com/caarlos0/env/v11"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/simonhull/constgen/internal/errors"
)

// Env is the logging configuration read from the environment.
type Env struct {
	Level string `env:"CONSTGEN_LOG_LEVEL" envDefault:"warn"`
	JSON  bool   `env:"CONSTGEN_LOG_JSON" envDefault:"false"`
}

// ParseEnv reads Env from the process environment.
func ParseEnv() (Env, error) {
	var e Env
	if err := env.Parse(&e); err != nil {
		return Env{}, errors.Wrap(err, "parse logging env")
	}
	return e, nil
}

// New builds a sugared logger writing to w (stderr when nil). verbose
// forces debug level regardless of e.Level.
func New(e Env, verbose bool, w io.Writer) (*zap.SugaredLogger, error) {
	level, err := zapcore.ParseLevel(e.Level)
	if err != nil {
		return nil, errors.WithHint(errors.Wrapf(err, "CONSTGEN_LOG_LEVEL=%q", e.Level),
			"use one of debug, info, warn, error")
	}
	if verbose {
		level = zapcore.DebugLevel
	}
	if w == nil {
		w = os.Stderr
	}

	var encoder zapcore.Encoder
	if e.JSON {
		encoder = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	} else {
		cfg := zap.NewDevelopmentEncoderConfig()
		cfg.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000")
		cfg.EncodeCaller = zapcore.ShortCallerEncoder
		encoder = zapcore.NewConsoleEncoder(cfg)
	}

	core := zapcore.NewCore(encoder, zapcore.AddSync(w), level)
	return zap.New(core).Sugar().Named("constgen"), nil
}
