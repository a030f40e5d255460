// Package app wires the bot catalog service together and manages the
// lifecycle of its components.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/edgard/botgames/internal/catalog"
	"github.com/edgard/botgames/internal/database"
)

// App owns the catalog registry and the scheduler that keeps it fresh.
type App struct {
	logger    *slog.Logger
	store     database.Store
	registry  *catalog.Registry
	scheduler *Scheduler
}

// New creates an App from its components.
func New(logger *slog.Logger, store database.Store, registry *catalog.Registry, scheduler *Scheduler) *App {
	return &App{
		logger:    logger.With("component", "app"),
		store:     store,
		registry:  registry,
		scheduler: scheduler,
	}
}

// Run loads the catalog, then runs the scheduler until ctx is cancelled or a
// component fails.
func (a *App) Run(ctx context.Context) error {
	a.logger.Info("Starting bot catalog service...")

	if err := a.store.Ping(ctx); err != nil {
		return fmt.Errorf("database unavailable: %w", err)
	}
	if _, err := a.registry.Load(ctx); err != nil {
		return err
	}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := a.scheduler.Start(gCtx); err != nil {
			return fmt.Errorf("failed to start scheduler: %w", err)
		}

		<-gCtx.Done()
		a.logger.Info("Shutdown signal received, stopping scheduler...")

		if err := a.scheduler.Stop(); err != nil {
			a.logger.Error("Error stopping scheduler", "error", err)
		}
		return nil
	})

	a.logger.Info("Bot catalog service running", "bots", a.registry.Len())
	err := g.Wait()

	if err != nil && !errors.Is(err, context.Canceled) {
		a.logger.Error("Bot catalog service stopped due to error", "error", err)
		return err
	}

	a.logger.Info("Bot catalog service stopped gracefully.")
	return nil
}
