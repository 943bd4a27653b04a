// Package logger provides structured, leveled logging backed by zap.
package logger

import (
	"context"
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Level represents the minimum level a logger emits.
type Level int8

const (
	LevelDebug Level = iota - 1
	LevelInfo
	LevelWarn
	LevelError
)

// LoggerInterface is the logging contract used throughout the application.
// The variadic args are alternating key/value pairs.
type LoggerInterface interface {
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)

	// Caller-skip variants for wrappers that log on behalf of their caller.
	Debugc(ctx context.Context, caller int, msg string, args ...any)
	Infoc(ctx context.Context, caller int, msg string, args ...any)
	Warnc(ctx context.Context, caller int, msg string, args ...any)
	Errorc(ctx context.Context, caller int, msg string, args ...any)
}

// Logger implements LoggerInterface on top of a zap.SugaredLogger.
type Logger struct {
	sugar *zap.SugaredLogger
}

var _ LoggerInterface = (*Logger)(nil)

// New creates a Logger writing console-encoded output to w at the given level.
// service is attached to every entry; extra fields may carry deployment metadata.
func New(w io.Writer, level Level, service string, fields map[string]string) *Logger {
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "ts"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encCfg.EncodeLevel = zapcore.LowercaseLevelEncoder

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encCfg),
		zapcore.AddSync(w),
		zapcore.Level(level),
	)

	zfields := []zap.Field{zap.String("service", service)}
	for k, v := range fields {
		zfields = append(zfields, zap.String(k, v))
	}

	l := zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1)).With(zfields...)
	return &Logger{sugar: l.Sugar()}
}

func (l *Logger) Debug(ctx context.Context, msg string, args ...any) {
	l.sugar.Debugw(msg, args...)
}

func (l *Logger) Info(ctx context.Context, msg string, args ...any) {
	l.sugar.Infow(msg, args...)
}

func (l *Logger) Warn(ctx context.Context, msg string, args ...any) {
	l.sugar.Warnw(msg, args...)
}

func (l *Logger) Error(ctx context.Context, msg string, args ...any) {
	l.sugar.Errorw(msg, args...)
}

func (l *Logger) Debugc(ctx context.Context, caller int, msg string, args ...any) {
	l.sugar.WithOptions(zap.AddCallerSkip(caller)).Debugw(msg, args...)
}

func (l *Logger) Infoc(ctx context.Context, caller int, msg string, args ...any) {
	l.sugar.WithOptions(zap.AddCallerSkip(caller)).Infow(msg, args...)
}

func (l *Logger) Warnc(ctx context.Context, caller int, msg string, args ...any) {
	l.sugar.WithOptions(zap.AddCallerSkip(caller)).Warnw(msg, args...)
}

func (l *Logger) Errorc(ctx context.Context, caller int, msg string, args ...any) {
	l.sugar.WithOptions(zap.AddCallerSkip(caller)).Errorw(msg, args...)
}

// Sync flushes buffered log entries.
func (l *Logger) Sync() error {
	return l.sugar.Sync()
}
