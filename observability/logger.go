package observability

import (
	"log/slog"
	"os"
)

// Logger is the process-wide logger. JSON in production, text otherwise.
var Logger *slog.Logger

// InitLogger initializes the global logger.
func InitLogger(production bool) {
	InitLoggerWithLevel(production, slog.LevelInfo)
}

// InitLoggerWithLevel initializes the global logger at a specific level.
func InitLoggerWithLevel(production bool, level slog.Level) {
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if production {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	Logger = slog.New(handler)
	slog.SetDefault(Logger)
}

func logger() *slog.Logger {
	if Logger == nil {
		InitLogger(false)
	}
	return Logger
}

// Info logs an info message.
func Info(msg string, args ...any) { logger().Info(msg, args...) }

// Warn logs a warning message.
func Warn(msg string, args ...any) { logger().Warn(msg, args...) }

// Error logs an error message.
func Error(msg string, args ...any) { logger().Error(msg, args...) }

// Debug logs a debug message.
func Debug(msg string, args ...any) { logger().Debug(msg, args...) }

// WithSymbol returns a logger scoped to one instrument symbol.
func WithSymbol(symbol string) *slog.Logger {
	return logger().With("symbol", symbol)
}

// WithSession returns a logger scoped to one browser session.
func WithSession(sessionID string) *slog.Logger {
	return logger().With("session_id", sessionID)
}
