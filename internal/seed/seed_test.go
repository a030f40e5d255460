package seed_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edgard/botgames/internal/botdata"
	"github.com/edgard/botgames/internal/database"
	"github.com/edgard/botgames/internal/seed"
)

type recordingWriter struct {
	saved  []*botdata.BotConfig
	failOn string
}

func (w *recordingWriter) SaveBot(_ context.Context, bot *botdata.BotConfig) error {
	if bot.CommandName() == w.failOn {
		return errors.New("disk full")
	}
	w.saved = append(w.saved, bot)
	return nil
}

func (w *recordingWriter) FindBotByCommand(context.Context, string) (*botdata.BotConfig, error) {
	return nil, nil
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestParse(t *testing.T) {
	t.Parallel()

	bots, err := seed.Parse([]byte(`
bots:
  - id: 9
    game: Werewolf
    display_name: WerewolfBot
    command_name: wolf
    executable: bots/werewolf
    library_paths: ["classes/", "lib/a.jar;lib/b.jar"]
    channel_type: 2
    enabled: true
    emoticon_keys: ["!start", "!vote"]
  - command_name: draft
`))
	require.NoError(t, err)
	require.Len(t, bots, 2)

	wolf := bots[0]
	assert.Equal(t, int64(9), wolf.ID())
	assert.Equal(t, "Werewolf", wolf.Game())
	assert.Equal(t, "WerewolfBot", wolf.DisplayName())
	assert.Equal(t, "bots/werewolf", wolf.ExecutableFileName())
	assert.Equal(t, []botdata.LibraryPath{
		{Path: "classes/", Dir: true},
		{Path: "lib/a.jar"},
		{Path: "lib/b.jar"},
	}, wolf.LibraryPaths())
	assert.Equal(t, botdata.ChannelGroupChat, wolf.ChannelType())
	assert.True(t, wolf.Enabled())
	assert.Equal(t, []string{"!start", "!vote"}, wolf.EmoticonKeys())

	assert.Zero(t, bots[1].ID())
	assert.False(t, bots[1].Enabled())
}

func TestParse_Errors(t *testing.T) {
	t.Parallel()

	_, err := seed.Parse([]byte("bots:\n  - comand_name: typo\n"))
	assert.Error(t, err)

	_, err = seed.Parse([]byte("bots: {"))
	assert.Error(t, err)

	bots, err := seed.Parse(nil)
	require.NoError(t, err)
	assert.Empty(t, bots)
}

func TestLoad_ExampleCatalog(t *testing.T) {
	t.Parallel()

	bots, err := seed.Load(filepath.Join("..", "..", "bots.example.yaml"))
	require.NoError(t, err)
	require.Len(t, bots, 4)

	var commands []string
	for _, b := range bots {
		commands = append(commands, b.CommandName())
		assert.True(t, b.Enabled())
		assert.True(t, b.HasEmoticonKey("!start"))
	}
	assert.Equal(t, []string{"dice", "lowcard", "cricket", "one"}, commands)
}

func TestLoad_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := seed.Load(filepath.Join(t.TempDir(), "none.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestApply(t *testing.T) {
	t.Parallel()

	bots, err := seed.Parse([]byte("bots:\n  - command_name: a\n  - command_name: b\n  - command_name: c\n"))
	require.NoError(t, err)

	w := &recordingWriter{}
	require.NoError(t, seed.Apply(context.Background(), w, bots, discard()))
	assert.Len(t, w.saved, 3)

	w = &recordingWriter{failOn: "b"}
	err = seed.Apply(context.Background(), w, bots, discard())
	assert.ErrorContains(t, err, `"b"`)
	assert.Len(t, w.saved, 1)
}

func TestApply_TwiceKeepsOneRowPerCommand(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	db, err := database.NewDB(filepath.Join(t.TempDir(), "bots.db"), discard())
	require.NoError(t, err)
	t.Cleanup(func() { database.CloseDB(db) })
	store := database.NewStore(db, discard())

	data := []byte("bots:\n  - command_name: dice\n    display_name: DiceBot\n  - command_name: lowcard\n")
	for i := 0; i < 3; i++ {
		bots, err := seed.Parse(data)
		require.NoError(t, err)
		require.NoError(t, seed.Apply(ctx, store, bots, discard()))
	}

	stored, err := store.ListBots(ctx)
	require.NoError(t, err)
	require.Len(t, stored, 2)
	assert.Equal(t, "dice", stored[0].CommandName())
	assert.Equal(t, "lowcard", stored[1].CommandName())

	updated, err := seed.Parse([]byte("bots:\n  - command_name: DICE\n    display_name: Dice Bot 2\n"))
	require.NoError(t, err)
	require.NoError(t, seed.Apply(ctx, store, updated, discard()))
	assert.Equal(t, stored[0].ID(), updated[0].ID())

	got, err := store.GetBot(ctx, stored[0].ID())
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Dice Bot 2", got.DisplayName())
}

func TestApply_LookupError(t *testing.T) {
	t.Parallel()

	bots, err := seed.Parse([]byte("bots:\n  - command_name: dice\n"))
	require.NoError(t, err)

	err = seed.Apply(context.Background(), failingLookup{&recordingWriter{}}, bots, discard())
	assert.ErrorContains(t, err, "failed to look up bot")
}

type failingLookup struct{ *recordingWriter }

func (failingLookup) FindBotByCommand(context.Context, string) (*botdata.BotConfig, error) {
	return nil, errors.New("database is locked")
}
