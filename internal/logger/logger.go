// Package logger provides structured logging for the bot catalog service.
// It uses Go's slog package with configurable levels and formats.
package logger

import (
	"io"
	"log/slog"
	"os"

	"github.com/edgard/botgames/internal/botdata"
)

// NewLogger creates a slog Logger writing to stdout and installs it as the
// default logger. If jsonOutput is true, logs are formatted as JSON,
// otherwise as text.
func NewLogger(levelStr string, jsonOutput bool) *slog.Logger {
	logger := New(os.Stdout, levelStr, jsonOutput)
	slog.SetDefault(logger)
	return logger
}

// New creates a slog Logger writing to w without touching the default logger.
func New(w io.Writer, levelStr string, jsonOutput bool) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: ParseLevel(levelStr),
	}

	var handler slog.Handler
	if jsonOutput {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	return slog.New(handler)
}

// ParseLevel maps a configured level name to a slog.Level. Unknown names
// yield slog.LevelInfo.
func ParseLevel(levelStr string) slog.Level {
	switch levelStr {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// WithBot returns a logger annotated with the identity of bot.
func WithBot(log *slog.Logger, bot *botdata.BotConfig) *slog.Logger {
	return log.With(
		"bot_id", bot.ID(),
		"command_name", bot.CommandName(),
		"channel_type", bot.ChannelType().String(),
	)
}
