package logger

import (
	"io"
	"os"

	charmlog "github.com/charmbracelet/log"
)

type (
	// Logger is the structured logger used across defew.
	Logger interface {
		Debug(msg string, keyvals ...any)
		Info(msg string, keyvals ...any)
		Warn(msg string, keyvals ...any)
		Error(msg string, keyvals ...any)
	}

	loggerImpl struct {
		charmLogger *charmlog.Logger
	}
)

type Config struct {
	Debug  bool
	Output io.Writer
}

// DefaultConfig logs info and above to stderr so generated output on
// stdout stays clean.
func DefaultConfig() *Config {
	return &Config{Output: os.Stderr}
}

func NewLogger(cfg *Config) Logger {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	level := charmlog.InfoLevel
	if cfg.Debug {
		level = charmlog.DebugLevel
	}
	charmLogger := charmlog.NewWithOptions(out, charmlog.Options{
		Prefix: "defew",
		Level:  level,
	})
	return &loggerImpl{charmLogger: charmLogger}
}

// NewNop returns a logger that discards everything.
func NewNop() Logger {
	return NewLogger(&Config{Output: io.Discard})
}

func (l *loggerImpl) Debug(msg string, keyvals ...any) {
	l.charmLogger.Debug(msg, keyvals...)
}

func (l *loggerImpl) Info(msg string, keyvals ...any) {
	l.charmLogger.Info(msg, keyvals...)
}

func (l *loggerImpl) Warn(msg string, keyvals ...any) {
	l.charmLogger.Warn(msg, keyvals...)
}

func (l *loggerImpl) Error(msg string, keyvals ...any) {
	l.charmLogger.Error(msg, keyvals...)
}
