// Package logging builds the zap logger shared by the CLI and the widget.
package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options selects where diagnostics go.
type Options struct {
	// Verbose enables debug output.
	Verbose bool
	// File, when set, receives the log instead of stderr. The live widget
	// owns the terminal, so it always logs to a file.
	File string
}

// New returns a logger for opts. With neither Verbose nor File set it
// returns a no-op logger so one-shot commands stay quiet.
func New(opts Options) (*zap.Logger, error) {
	if !opts.Verbose && opts.File == "" {
		return zap.NewNop(), nil
	}

	config := zap.NewDevelopmentConfig()
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.DisableStacktrace = true
	config.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	if opts.Verbose {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}

	config.OutputPaths = []string{"stderr"}
	config.ErrorOutputPaths = []string{"stderr"}
	if opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0o755); err != nil {
			return nil, fmt.Errorf("cannot create log directory: %w", err)
		}
		config.Encoding = "json"
		config.OutputPaths = []string{opts.File}
		config.ErrorOutputPaths = []string{opts.File}
	}

	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return logger, nil
}
