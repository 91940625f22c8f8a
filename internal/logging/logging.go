// Package logging builds the process-wide zap logger: an append-only JSON
// line log file, mirrored to stderr when debug mode is active.
package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// Options control logger construction
type Options struct {
	// Level is the minimum severity: debug, info, warn or error
	Level string

	// File is the log file path; the parent directory is created if needed
	File string

	// Console mirrors all output to stderr in addition to the file
	Console bool
}

// New constructs a zap logger per the given options. The returned function
// flushes buffered entries and must be called before process exit.
func New(opts Options) (*zap.Logger, func(), error) {
	level, err := zap.ParseAtomicLevel(opts.Level)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid log level %q: %w", opts.Level, err)
	}

	if dir := filepath.Dir(opts.File); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
		}
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = level
	cfg.OutputPaths = []string{opts.File}
	cfg.ErrorOutputPaths = []string{"stderr"}
	if opts.Console {
		cfg.OutputPaths = append(cfg.OutputPaths, "stderr")
	}

	logger, err := cfg.Build()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build logger: %w", err)
	}

	return logger, func() { _ = logger.Sync() }, nil
}
