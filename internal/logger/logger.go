// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package logger builds the zap logger shared by the CLI and its packages.
package logger

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Disabled is the log path that turns logging off.
const Disabled = "none"

// New returns a sugared logger at level ("debug", "info", "warn", "error",
// case-insensitive). An empty path writes console-formatted lines to stderr;
// any other path except Disabled receives JSON lines.
func New(path, level string) (*zap.SugaredLogger, error) {
	if path == Disabled {
		return zap.NewNop().Sugar(), nil
	}

	var lvl zap.AtomicLevel
	if err := lvl.UnmarshalText([]byte(strings.ToLower(level))); err != nil {
		return nil, fmt.Errorf("log level %q: %w", level, err)
	}

	config := zap.NewProductionConfig()
	config.Level = lvl
	config.Sampling = nil
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if path == "" {
		config.Encoding = "console"
		config.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		config.OutputPaths = []string{"stderr"}
		config.ErrorOutputPaths = []string{"stderr"}
	} else {
		config.OutputPaths = []string{path}
		config.ErrorOutputPaths = []string{path}
	}

	l, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("building logger: %w", err)
	}
	return l.Sugar(), nil
}
