package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"github.com/pocketplanner/pocketplanner/internal/logging"
	"github.com/pocketplanner/pocketplanner/internal/planner"
	"github.com/pocketplanner/pocketplanner/internal/reminders"
	"github.com/pocketplanner/pocketplanner/internal/scheduler"
	"github.com/pocketplanner/pocketplanner/internal/storage"
	"github.com/pocketplanner/pocketplanner/internal/streak"
	"github.com/pocketplanner/pocketplanner/internal/update"
)

func main() {
	_ = godotenv.Load()
	cfg := update.RuntimeConfigFromEnv(update.DefaultRuntimeConfig())

	log := logging.New(cfg.LogPath)
	defer log.Sync()

	var kv storage.KV
	if cfg.StorePath != "" {
		sqlite, err := storage.OpenSQLite(cfg.StorePath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "pocketplanner: open store: %v\n", err)
			os.Exit(1)
		}
		defer sqlite.Close()
		if err := storage.MigrateUp(sqlite.DB()); err != nil {
			fmt.Fprintf(os.Stderr, "pocketplanner: migrate: %v\n", err)
			os.Exit(1)
		}
		kv = sqlite
	} else {
		kv = storage.NewMemory()
	}

	engine := scheduler.NewEngine(cfg.SchedulerBuffer)
	engine.SetAvailable(cfg.AlertsEnabled)
	engine.Start()
	defer engine.Stop()

	records := storage.NewRecords(kv, log)
	rebuilder := reminders.NewRebuilder(records, engine, log)
	tracker := streak.NewTracker(records, log)
	svc := planner.NewService(records, rebuilder, tracker, log)

	program := tea.NewProgram(update.NewModelWithConfig(svc, engine, cfg))
	if _, err := program.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "pocketplanner failed: %v\n", err)
		os.Exit(1)
	}
}
