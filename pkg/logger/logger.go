package logger

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/emonshikder007/chat-app/config"
)

// Logger wraps slog so the rest of the app never imports it directly.
// The zero value is usable and falls back to slog.Default().
type Logger struct {
	base *slog.Logger
}

func NewLogger(cfg *config.Config) (*Logger, error) {
	level := slog.LevelInfo
	if cfg.LoggerMode.Level != "" {
		if err := level.UnmarshalText([]byte(cfg.LoggerMode.Level)); err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", cfg.LoggerMode.Level, err)
		}
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.LoggerMode.Development {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	return &Logger{base: slog.New(handler)}, nil
}

func (l *Logger) sl() *slog.Logger {
	if l == nil || l.base == nil {
		return slog.Default()
	}
	return l.base
}

func (l Logger) Debug(msg string, kv ...any) { l.sl().Debug(msg, kv...) }
func (l Logger) Info(msg string, kv ...any) { l.sl().Info(msg, kv...) }
func (l Logger) Warn(msg string, kv ...any) { l.sl().Warn(msg, kv...) }
func (l Logger) Error(msg string, kv ...any) { l.sl().Error(msg, kv...) }

func (l Logger) Infof(format string, args ...any) { l.sl().Info(fmt.Sprintf(format, args...)) }
func (l Logger) Warnf(format string, args ...any) { l.sl().Warn(fmt.Sprintf(format, args...)) }
func (l Logger) Errorf(format string, args ...any) { l.sl().Error(fmt.Sprintf(format, args...)) }
