// Package tasks implements the scheduled tasks of the bot catalog service.
package tasks

import (
	"context"
	"log/slog"

	"github.com/edgard/botgames/internal/catalog"
	"github.com/edgard/botgames/internal/config"
	"github.com/edgard/botgames/internal/database"
)

// ScheduledTaskFunc is the signature of every scheduled task. The context
// carries the task timeout and is cancelled on shutdown.
type ScheduledTaskFunc func(ctx context.Context) error

// TaskDeps contains the dependencies shared by scheduled tasks.
type TaskDeps struct {
	Logger   *slog.Logger
	Store    database.Store
	Registry *catalog.Registry
}

// RegisterAllTasks returns the known tasks keyed by the name used in the
// scheduler.tasks configuration section.
func RegisterAllTasks(deps TaskDeps) map[string]ScheduledTaskFunc {
	tasks := map[string]ScheduledTaskFunc{
		config.TaskCatalogReload:  newCatalogReloadTask(deps),
		config.TaskSQLMaintenance: newSQLMaintenanceTask(deps),
	}

	deps.Logger.Info("Initialized scheduled tasks", "count", len(tasks))
	return tasks
}
