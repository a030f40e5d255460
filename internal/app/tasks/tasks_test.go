package tasks_test

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edgard/botgames/internal/app/tasks"
	"github.com/edgard/botgames/internal/botdata"
	"github.com/edgard/botgames/internal/catalog"
	"github.com/edgard/botgames/internal/config"
	"github.com/edgard/botgames/internal/database"
)

func TestRegisterAllTasks(t *testing.T) {
	t.Parallel()

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	db, err := database.NewDB(filepath.Join(t.TempDir(), "bots.db"), log)
	require.NoError(t, err)
	t.Cleanup(func() { database.CloseDB(db) })

	store := database.NewStore(db, log)
	registry := catalog.NewRegistry(store, log)
	taskMap := tasks.RegisterAllTasks(tasks.TaskDeps{Logger: log, Store: store, Registry: registry})

	require.Contains(t, taskMap, config.TaskCatalogReload)
	require.Contains(t, taskMap, config.TaskSQLMaintenance)

	ctx := context.Background()
	bot := botdata.New()
	bot.SetCommandName("one")
	bot.SetDisplayName("OneBot")
	bot.SetChannelType(botdata.ChannelGroupChat)
	bot.SetEnabled(true)
	require.NoError(t, store.SaveBot(ctx, bot))

	require.NoError(t, taskMap[config.TaskCatalogReload](ctx))
	assert.Equal(t, 1, registry.Len())

	assert.NoError(t, taskMap[config.TaskSQLMaintenance](ctx))
}
