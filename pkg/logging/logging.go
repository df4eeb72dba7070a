package logging

import (
	"context"
	"io"
	"os"

	"github.com/rs/zerolog"
)

// Logger is the logging interface used across the SDK. Implementations must
// be safe for concurrent use.
type Logger interface {
	Debug(ctx context.Context, msg string, fields map[string]interface{})
	Info(ctx context.Context, msg string, fields map[string]interface{})
	Warn(ctx context.Context, msg string, fields map[string]interface{})
	Error(ctx context.Context, msg string, fields map[string]interface{})
}

// ZerologLogger implements Logger on top of zerolog.
type ZerologLogger struct {
	logger zerolog.Logger
}

// Option represents an option for configuring the logger
type Option func(*ZerologLogger)

// WithLevel sets the minimum level ("debug", "info", "warn", "error")
func WithLevel(level string) Option {
	return func(l *ZerologLogger) {
		parsed, err := zerolog.ParseLevel(level)
		if err != nil {
			return
		}
		l.logger = l.logger.Level(parsed)
	}
}

// WithWriter sets the output writer for the logger
func WithWriter(w io.Writer) Option {
	return func(l *ZerologLogger) {
		l.logger = l.logger.Output(w)
	}
}

// New creates a new logger writing JSON lines to stderr at info level
func New(options ...Option) *ZerologLogger {
	logger := &ZerologLogger{
		logger: zerolog.New(os.Stderr).With().Timestamp().Logger().Level(zerolog.InfoLevel),
	}

	for _, option := range options {
		option(logger)
	}

	return logger
}

func (l *ZerologLogger) emit(event *zerolog.Event, msg string, fields map[string]interface{}) {
	for k, v := range fields {
		event = event.Interface(k, v)
	}
	event.Msg(msg)
}

// Debug logs a message at debug level
func (l *ZerologLogger) Debug(_ context.Context, msg string, fields map[string]interface{}) {
	l.emit(l.logger.Debug(), msg, fields)
}

// Info logs a message at info level
func (l *ZerologLogger) Info(_ context.Context, msg string, fields map[string]interface{}) {
	l.emit(l.logger.Info(), msg, fields)
}

// Warn logs a message at warn level
func (l *ZerologLogger) Warn(_ context.Context, msg string, fields map[string]interface{}) {
	l.emit(l.logger.Warn(), msg, fields)
}

// Error logs a message at error level
func (l *ZerologLogger) Error(_ context.Context, msg string, fields map[string]interface{}) {
	l.emit(l.logger.Error(), msg, fields)
}
