package logger_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edgard/botgames/internal/botdata"
	"github.com/edgard/botgames/internal/logger"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"info":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"error":   slog.LevelError,
		"verbose": slog.LevelInfo,
		"":        slog.LevelInfo,
	}

	for input, expected := range tests {
		assert.Equal(t, expected, logger.ParseLevel(input), "level %q", input)
	}
}

func TestWithBot(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.New(&buf, "debug", true)

	bot := botdata.New()
	bot.SetID(4)
	bot.SetCommandName("one")
	bot.SetChannelType(botdata.ChannelChatRoom)

	logger.WithBot(log, bot).Debug("loaded")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "loaded", entry["msg"])
	assert.EqualValues(t, 4, entry["bot_id"])
	assert.Equal(t, "one", entry["command_name"])
	assert.Equal(t, "CHAT_ROOM", entry["channel_type"])
}

func TestNew_FiltersBelowLevel(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.New(&buf, "warn", false)
	log.Info("hidden")
	assert.Empty(t, buf.String())

	log.Warn("shown")
	assert.Contains(t, buf.String(), "shown")
}
