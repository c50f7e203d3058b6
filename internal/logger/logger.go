// Package logger builds the zap loggers used by girgen.
//
// Logs always go to the diagnostic writer (stderr in the CLI) so that JSON or
// YAML written to stdout stays parseable.
package logger

import (
	"io"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Standard field names.
const (
	FieldRunID       = "run_id"
	FieldComponent   = "component"
	FieldEnumeration = "enumeration"
	FieldFile        = "file"
	FieldCount       = "count"
)

// Options configures New.
type Options struct {
	Verbose bool // debug level instead of info
	JSON    bool // JSON encoder instead of console
}

// New returns a logger writing to w. Every entry carries a fresh run_id.
func New(w io.Writer, opts Options) *zap.Logger {
	level := zap.InfoLevel
	if opts.Verbose {
		level = zap.DebugLevel
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = ""
	var enc zapcore.Encoder
	if opts.JSON {
		enc = zapcore.NewJSONEncoder(encCfg)
	} else {
		encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
		encCfg.CallerKey = ""
		enc = zapcore.NewConsoleEncoder(encCfg)
	}

	core := zapcore.NewCore(enc, zapcore.AddSync(w), level)
	return zap.New(core).With(zap.String(FieldRunID, uuid.NewString()))
}

// Nop returns a logger that discards everything.
func Nop() *zap.Logger {
	return zap.NewNop()
}
