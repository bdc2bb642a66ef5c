// Package logger wraps zap with the level and output settings shared by the
// HomeDrive client and the mock backend.
package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger holds the zap logger used across the application.
type Logger struct {
	// Log is the configured zap logger. It is a no-op logger until Init succeeds.
	Log *zap.Logger
	// level can be changed at runtime with SetLevel.
	level zap.AtomicLevel
}

// New returns a Logger that discards everything until Init is called.
func New() *Logger {
	return &Logger{
		Log:   zap.NewNop(),
		level: zap.NewAtomicLevel(),
	}
}

// Init builds a production zap logger writing JSON to stderr at the given
// level ("debug", "info", "warn", "error"; case-insensitive).
func (l *Logger) Init(level string) error {
	return l.InitWithOutput(level, "stderr")
}

// InitWithOutput is Init with an explicit output path (stdout, stderr or a file).
func (l *Logger) InitWithOutput(level, output string) error {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return err
	}
	l.level.SetLevel(lvl)

	cfg := zap.NewProductionConfig()
	cfg.Level = l.level
	cfg.OutputPaths = []string{output}
	cfg.ErrorOutputPaths = []string{"stderr"}
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	zl, err := cfg.Build()
	if err != nil {
		return err
	}
	l.Log = zl
	return nil
}

// SetLevel changes the level of an initialized logger.
func (l *Logger) SetLevel(level string) error {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return err
	}
	l.level.SetLevel(lvl)
	return nil
}

// Level reports the current level.
func (l *Logger) Level() zapcore.Level {
	return l.level.Level()
}
