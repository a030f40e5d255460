// Package main contains the entrypoint for the bot catalog service.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/joho/godotenv"

	"github.com/edgard/botgames/internal/app"
	"github.com/edgard/botgames/internal/app/tasks"
	"github.com/edgard/botgames/internal/botdata"
	"github.com/edgard/botgames/internal/catalog"
	"github.com/edgard/botgames/internal/config"
	"github.com/edgard/botgames/internal/database"
	"github.com/edgard/botgames/internal/logger"
	"github.com/edgard/botgames/internal/seed"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	exitCode := run(ctx)
	stop()
	os.Exit(exitCode)
}

// run initializes config, logger, database and catalog, then either prints
// the catalog or serves until the context is cancelled. It returns the
// process exit code.
func run(ctx context.Context) int {
	configPath := flag.String("config", "./config.yaml", "Path to configuration file")
	list := flag.Bool("list", false, "Print the loaded bot catalog and exit")
	flag.Parse()

	// .env is optional and only feeds BOT_* variables to the config loader
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("Failed to load .env file", "error", err)
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		slog.Error("Failed to load configuration", "path", *configPath, "error", err)
		return 1
	}

	log := logger.NewLogger(cfg.Logger.Level, cfg.Logger.JSON)
	log.Info("Logger initialized", "level", cfg.Logger.Level, "json", cfg.Logger.JSON)

	db, err := database.NewDB(cfg.Database.Path, log)
	if err != nil {
		log.Error("Failed to open database", "path", cfg.Database.Path, "error", err)
		return 1
	}
	defer database.CloseDB(db)
	store := database.NewStore(db, log)

	if cfg.Catalog.SeedFile != "" {
		bots, err := seed.Load(cfg.Catalog.SeedFile)
		if err != nil {
			log.Error("Failed to load seed file", "path", cfg.Catalog.SeedFile, "error", err)
			return 1
		}
		if err := seed.Apply(ctx, store, bots, log); err != nil {
			log.Error("Failed to seed bot catalog", "error", err)
			return 1
		}
	}

	registry := catalog.NewRegistry(store, log)

	if *list {
		if _, err := registry.Load(ctx); err != nil {
			log.Error("Failed to load bot catalog", "error", err)
			return 1
		}
		printCatalog(os.Stdout, registry.List())
		return 0
	}

	taskMap := tasks.RegisterAllTasks(tasks.TaskDeps{Logger: log, Store: store, Registry: registry})
	sched, err := app.NewScheduler(log, &cfg.Scheduler, taskMap)
	if err != nil {
		log.Error("Failed to create scheduler", "error", err)
		return 1
	}

	if err := app.New(log, store, registry, sched).Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("Bot catalog service stopped due to error", "error", err)
		return 1
	}
	return 0
}

func printCatalog(w io.Writer, bots []*botdata.BotConfig) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tCOMMAND\tDISPLAY NAME\tGAME\tCHANNEL\tTRIGGERS")
	for _, b := range bots {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n",
			b.ID(), b.CommandName(), b.DisplayName(), b.Game(), b.ChannelType(), botdata.JoinEmoticonKeys(b.EmoticonKeys()))
	}
	_ = tw.Flush()
}
