// Package seed reads bot definitions from a YAML file and writes them to the
// catalog store.
package seed

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/edgard/botgames/internal/botdata"
)

// Writer stores bot configurations.
type Writer interface {
	SaveBot(ctx context.Context, bot *botdata.BotConfig) error
	FindBotByCommand(ctx context.Context, command string) (*botdata.BotConfig, error)
}

type file struct {
	Bots []botEntry `yaml:"bots"`
}

type botEntry struct {
	ID           int64    `yaml:"id"`
	Game         string   `yaml:"game"`
	DisplayName  string   `yaml:"display_name"`
	CommandName  string   `yaml:"command_name"`
	Description  string   `yaml:"description"`
	Executable   string   `yaml:"executable"`
	LibraryPaths []string `yaml:"library_paths"`
	ChannelType  int      `yaml:"channel_type"`
	Enabled      bool     `yaml:"enabled"`
	EmoticonKeys []string `yaml:"emoticon_keys"`
}

func (e botEntry) toBotConfig() *botdata.BotConfig {
	var paths []botdata.LibraryPath
	for _, p := range e.LibraryPaths {
		paths = append(paths, botdata.ParseLibraryPaths(p)...)
	}

	bot := botdata.New()
	bot.SetID(e.ID)
	bot.SetGame(e.Game)
	bot.SetDisplayName(e.DisplayName)
	bot.SetCommandName(e.CommandName)
	bot.SetDescription(e.Description)
	bot.SetExecutableFileName(e.Executable)
	bot.SetLibraryPaths(paths)
	bot.SetChannelType(botdata.ChannelType(e.ChannelType))
	bot.SetEnabled(e.Enabled)
	bot.SetEmoticonKeys(e.EmoticonKeys)
	return bot
}

// Load parses the seed file at path.
func Load(path string) ([]*botdata.BotConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}
	return Parse(data)
}

// Parse decodes seed YAML. Unknown keys are rejected.
func Parse(data []byte) ([]*botdata.BotConfig, error) {
	var f file
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}

	bots := make([]*botdata.BotConfig, 0, len(f.Bots))
	for _, entry := range f.Bots {
		bots = append(bots, entry.toBotConfig())
	}
	return bots, nil
}

// Apply saves every bot with w. Bots with an ID replace the stored row with
// that ID. Bots without one replace the stored bot with the same command name,
// or are inserted when there is none, so applying a seed twice is a no-op.
func Apply(ctx context.Context, w Writer, bots []*botdata.BotConfig, log *slog.Logger) error {
	for _, bot := range bots {
		if bot.ID() == 0 {
			existing, err := w.FindBotByCommand(ctx, bot.CommandName())
			if err != nil {
				return fmt.Errorf("failed to look up bot %q: %w", bot.CommandName(), err)
			}
			if existing != nil {
				bot.SetID(existing.ID())
			}
		}
		if err := w.SaveBot(ctx, bot); err != nil {
			return fmt.Errorf("failed to seed bot %q: %w", bot.CommandName(), err)
		}
	}
	log.InfoContext(ctx, "Seeded bot catalog", "count", len(bots))
	return nil
}
