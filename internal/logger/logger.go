// Package logger provides the structured logging facility used throughout
// the server. Messages carry key/value fields and are written through zap.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger interface for structured logging
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)

	// With returns a Logger that adds fields to every message.
	With(fields ...Field) Logger

	// Sync flushes buffered entries.
	Sync() error
}

// Field represents a structured log field
type Field struct {
	Key   string
	Value interface{}
}

// F is shorthand for constructing a Field.
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

// Err wraps an error as the "error" field.
func Err(err error) Field {
	return Field{Key: "error", Value: err}
}

// Options configures New.
type Options struct {
	Level string // debug, info, warn or error
	Color bool   // colored levels; only honoured on a terminal
}

type zapLogger struct {
	z *zap.Logger
}

// New returns a Logger writing human readable lines to w.
func New(w io.Writer, opts Options) (Logger, error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, err
	}

	cfg := zap.NewDevelopmentEncoderConfig()
	cfg.EncodeTime = zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05.000")
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder
	if opts.Color && isTerminal(w) {
		cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	core := zapcore.NewCore(zapcore.NewConsoleEncoder(cfg), zapcore.Lock(zapcore.AddSync(w)), level)

	return &zapLogger{z: zap.New(core)}, nil
}

// Nop returns a Logger that discards everything.
func Nop() Logger {
	return &zapLogger{z: zap.NewNop()}
}

// ParseLevel maps a level name to a zap level. The empty string means info.
func ParseLevel(level string) (zapcore.Level, error) {
	if level == "" {
		return zapcore.InfoLevel, nil
	}

	l, err := zapcore.ParseLevel(strings.ToLower(level))
	if err != nil {
		return l, fmt.Errorf("unknown log level %q", level)
	}

	return l, nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}

	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func (l *zapLogger) Debug(msg string, fields ...Field) {
	l.z.Debug(msg, toZap(fields)...)
}

func (l *zapLogger) Info(msg string, fields ...Field) {
	l.z.Info(msg, toZap(fields)...)
}

func (l *zapLogger) Warn(msg string, fields ...Field) {
	l.z.Warn(msg, toZap(fields)...)
}

func (l *zapLogger) Error(msg string, fields ...Field) {
	l.z.Error(msg, toZap(fields)...)
}

func (l *zapLogger) With(fields ...Field) Logger {
	return &zapLogger{z: l.z.With(toZap(fields)...)}
}

func (l *zapLogger) Sync() error {
	return l.z.Sync()
}

func toZap(fields []Field) []zap.Field {
	zf := make([]zap.Field, 0, len(fields))
	for _, f := range fields {
		if err, ok := f.Value.(error); ok {
			zf = append(zf, zap.NamedError(f.Key, err))
			continue
		}
		if f.Key == "stack" {
			zf = append(zf, zap.Any(f.Key, f.Value))
			continue
		}
		zf = append(zf, zap.Any(f.Key, sanitizeValue(f.Value)))
	}
	return zf
}

// sanitizeValue truncates long strings so request data cannot flood the log.
func sanitizeValue(v interface{}) interface{} {
	if s, ok := v.(string); ok && len(s) > 100 {
		return s[:100] + "...[truncated]"
	}
	return v
}
