// Package logging builds the zap logger used across supportchat.
//
// The chat view owns the terminal, so log output never goes to stdout or
// stderr: it is written to a file, or discarded.
package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/diogo/supportchat/internal/config"
)

// Options controls logger construction
type Options struct {
	// Verbose enables debug level and turns logging on even without LogFile.
	Verbose bool
	// LogFile is the destination. Empty means the default path under the
	// config directory when Verbose is set, and no logging otherwise.
	LogFile string
}

// OptionsFromConfig derives logger options from the user configuration
func OptionsFromConfig(cfg config.Config) Options {
	return Options{Verbose: cfg.Verbose, LogFile: cfg.LogFile}
}

// New returns a logger for opts. When logging is disabled it returns a
// no-op logger.
func New(opts Options) (*zap.Logger, error) {
	if !opts.Verbose && opts.LogFile == "" {
		return zap.NewNop(), nil
	}

	path := opts.LogFile
	if path == "" {
		var err error
		path, err = config.GetLogPath(config.Config{})
		if err != nil {
			return zap.NewNop(), err
		}
	}

	zcfg := zap.NewProductionConfig()
	zcfg.OutputPaths = []string{path}
	zcfg.ErrorOutputPaths = []string{path}
	zcfg.Sampling = nil
	zcfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if opts.Verbose {
		zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}

	logger, err := zcfg.Build()
	if err != nil {
		return zap.NewNop(), fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger.Named("supportchat"), nil
}
