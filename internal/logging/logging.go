// Package logging builds the application logger.
package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// FileName is the log file written next to the settings when the GUI runs.
const FileName = "tempo.log"

// Options configures New.
type Options struct {
	Verbose bool
	// File, when set, receives the log in addition to stderr.
	File string
}

// New builds a production JSON logger. Verbose lowers the level to debug.
func New(options Options) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	if options.Verbose {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.Sampling = nil

	if options.File != "" {
		if err := os.MkdirAll(filepath.Dir(options.File), 0o755); err != nil {
			return nil, fmt.Errorf("create log directory: %w", err)
		}
		config.OutputPaths = append(config.OutputPaths, options.File)
	}

	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return logger.Named("tempo"), nil
}
