// Package logging holds the process-wide structured logger.
//
// Logger is a no-op until Initialize runs, so packages can log from init
// paths and tests without setup. Output always goes to stderr: stdout belongs
// to command output and to the MCP stdio transport.
package logging

import (
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the global sugared logger.
var Logger = zap.NewNop().Sugar()

// ParseLevel maps a config string to a zap level. Unknown or empty strings
// mean warn.
func ParseLevel(level string) zapcore.Level {
	level = strings.ToLower(strings.TrimSpace(level))
	if level == "" {
		return zapcore.WarnLevel
	}
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return zapcore.WarnLevel
	}
	return lvl
}

// Initialize replaces Logger with one writing to stderr at the given level.
// jsonOutput selects the JSON encoder instead of the console encoder.
func Initialize(level string, jsonOutput bool) {
	Logger = New(os.Stderr, ParseLevel(level), jsonOutput).Sugar()
}

// New builds a zap logger writing to w.
func New(w io.Writer, level zapcore.Level, jsonOutput bool) *zap.Logger {
	cfg := zap.NewProductionEncoderConfig()
	cfg.TimeKey = ""
	cfg.EncodeLevel = zapcore.LowercaseLevelEncoder

	var enc zapcore.Encoder
	if jsonOutput {
		enc = zapcore.NewJSONEncoder(cfg)
	} else {
		cfg.EncodeLevel = zapcore.CapitalLevelEncoder
		enc = zapcore.NewConsoleEncoder(cfg)
	}

	return zap.New(zapcore.NewCore(enc, zapcore.AddSync(w), level))
}

// Sync flushes buffered entries. Errors from syncing a terminal are ignored.
func Sync() {
	_ = Logger.Sync()
}
