package tasks

import (
	"context"
	"fmt"
	"time"
)

// newCatalogReloadTask re-reads the bot catalog so that rows added, disabled
// or edited in the store take effect without a restart.
func newCatalogReloadTask(deps TaskDeps) ScheduledTaskFunc {
	log := deps.Logger.With("task", "catalog_reload")

	return func(ctx context.Context) error {
		startTime := time.Now()

		result, err := deps.Registry.Load(ctx)
		if err != nil {
			log.ErrorContext(ctx, "Catalog reload failed", "error", err, "duration", time.Since(startTime))
			return fmt.Errorf("catalog reload failed: %w", err)
		}

		log.DebugContext(ctx, "Catalog reloaded", "loaded", result.Loaded, "duration", time.Since(startTime))
		return nil
	}
}
