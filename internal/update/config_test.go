package update

import "testing"

func TestRuntimeConfigDefaults(t *testing.T) {
	cfg := DefaultRuntimeConfig()
	if cfg.FocusWorkMinutes != 25 || cfg.FocusBreakMinutes != 5 {
		t.Fatalf("unexpected focus defaults: %+v", cfg)
	}
	if cfg.SchedulerBuffer != 64 || !cfg.AlertsEnabled {
		t.Fatalf("unexpected runtime defaults: %+v", cfg)
	}
	if cfg.StorePath != "pocketplanner.db" || cfg.LogPath != "pocketplanner.log" {
		t.Fatalf("unexpected path defaults: %+v", cfg)
	}
}

func TestRuntimeConfigFromEnv(t *testing.T) {
	t.Setenv("POCKETPLANNER_STORE_PATH", "data/custom.db")
	t.Setenv("POCKETPLANNER_LOG_PATH", "logs/app.log")
	t.Setenv("POCKETPLANNER_FOCUS_WORK_MINUTES", "30")
	t.Setenv("POCKETPLANNER_FOCUS_BREAK_MINUTES", "7")
	t.Setenv("POCKETPLANNER_SCHEDULER_BUFFER", "128")
	t.Setenv("POCKETPLANNER_ALERTS", "off")

	cfg := RuntimeConfigFromEnv(DefaultRuntimeConfig())
	if cfg.StorePath != "data/custom.db" || cfg.LogPath != "logs/app.log" {
		t.Fatalf("unexpected path overrides: %+v", cfg)
	}
	if cfg.FocusWorkMinutes != 30 || cfg.FocusBreakMinutes != 7 {
		t.Fatalf("unexpected focus config: %+v", cfg)
	}
	if cfg.SchedulerBuffer != 128 {
		t.Fatalf("unexpected buffer override: %+v", cfg)
	}
	if cfg.AlertsEnabled {
		t.Fatal("expected alerts disabled from env")
	}
}

func TestRuntimeConfigIgnoresInvalidEnv(t *testing.T) {
	t.Setenv("POCKETPLANNER_FOCUS_WORK_MINUTES", "soon")
	t.Setenv("POCKETPLANNER_ALERTS", "maybe")

	cfg := RuntimeConfigFromEnv(DefaultRuntimeConfig())
	if cfg.FocusWorkMinutes != 25 {
		t.Fatalf("invalid int should keep default, got %d", cfg.FocusWorkMinutes)
	}
	if !cfg.AlertsEnabled {
		t.Fatal("invalid bool should keep default")
	}
}
