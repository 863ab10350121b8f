// Package logging builds the application logger: coloured console output plus a JSON log file
// per run
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const defaultLogsDir = "logs"

// Options controls where and how much the logger writes
type Options struct {
	// Env prefixes the log file name
	Env string
	// Dir holds the log files, "logs" when empty
	Dir string
	// Verbose lowers the console level from Info to Debug
	Verbose bool
	// Console receives the human-readable output, stdout when nil
	Console io.Writer
}

// InitLogger initializes a zap logger with console and file outputs
// env is used to prefix the log file name
func InitLogger(env string) (*zap.Logger, error) {
	return New(Options{Env: env})
}

// New builds a logger that tees a console core (Info, or Debug when verbose) and a JSON file
// core (always Debug) written to <dir>/<env>_<timestamp>.log
func New(opts Options) (*zap.Logger, error) {
	dir := opts.Dir
	if dir == "" {
		dir = defaultLogsDir
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create logs directory: %w", err)
	}

	timestamp := time.Now().Format("2006-01-02_15-04-05")
	logFileName := filepath.Join(dir, fmt.Sprintf("%s_%s.log", opts.Env, timestamp))
	logFile, err := os.OpenFile(logFileName, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	var console io.Writer = os.Stdout
	if opts.Console != nil {
		console = opts.Console
	}
	consoleLevel := zapcore.InfoLevel
	if opts.Verbose {
		consoleLevel = zapcore.DebugLevel
	}

	core := zapcore.NewTee(
		zapcore.NewCore(consoleEncoder(), zapcore.AddSync(console), consoleLevel),
		zapcore.NewCore(fileEncoder(), zapcore.AddSync(logFile), zapcore.DebugLevel),
	)

	return zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel)), nil
}

func consoleEncoder() zapcore.Encoder {
	cfg := zap.NewDevelopmentEncoderConfig()
	cfg.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
	cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	return zapcore.NewConsoleEncoder(cfg)
}

func fileEncoder() zapcore.Encoder {
	cfg := zap.NewProductionEncoderConfig()
	cfg.TimeKey = "timestamp"
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	return zapcore.NewJSONEncoder(cfg)
}
