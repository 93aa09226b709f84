// Package logging builds the structured logger. Logs go to a file so the
// interactive shell's terminal output stays clean.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/daydemir/herbie/internal/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Stderr as the log file writes to standard error instead of a file
const Stderr = "stderr"

// New creates a logger from cfg. Relative file paths resolve against
// config.Dir(). The returned close func syncs and closes the log file.
func New(cfg config.LogConfig) (*zap.Logger, func() error, error) {
	level, err := zapcore.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil {
		return nil, nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}

	format := strings.ToLower(cfg.Format)
	if format != "" && format != "json" && format != "console" {
		return nil, nil, fmt.Errorf("invalid log format %q (expected json or console)", cfg.Format)
	}

	sink, closeSink, err := openSink(cfg.File)
	if err != nil {
		return nil, nil, err
	}

	core := zapcore.NewCore(newEncoder(format), sink, level)
	logger := zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))

	closeFn := func() error {
		_ = logger.Sync()
		return closeSink()
	}
	return logger, closeFn, nil
}

// Nop returns a logger that discards everything
func Nop() *zap.Logger {
	return zap.NewNop()
}

// newEncoder creates JSON or console encoder.
func newEncoder(format string) zapcore.Encoder {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "ts"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	if format == "console" {
		return zapcore.NewConsoleEncoder(encoderCfg)
	}
	return zapcore.NewJSONEncoder(encoderCfg)
}

func openSink(file string) (zapcore.WriteSyncer, func() error, error) {
	if file == "" || strings.EqualFold(file, Stderr) {
		return zapcore.Lock(os.Stderr), func() error { return nil }, nil
	}

	path := file
	if !filepath.IsAbs(path) {
		path = filepath.Join(config.Dir(), path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return zapcore.AddSync(f), f.Close, nil
}
