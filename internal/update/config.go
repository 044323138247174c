package update

import (
	"os"
	"strconv"
	"strings"
)

type RuntimeConfig struct {
	StorePath         string
	LogPath           string
	FocusWorkMinutes  int
	FocusBreakMinutes int
	SchedulerBuffer   int
	AlertsEnabled     bool
}

func DefaultRuntimeConfig() RuntimeConfig {
	return RuntimeConfig{
		StorePath:         "pocketplanner.db",
		LogPath:           "pocketplanner.log",
		FocusWorkMinutes:  25,
		FocusBreakMinutes: 5,
		SchedulerBuffer:   64,
		AlertsEnabled:     true,
	}
}

func RuntimeConfigFromEnv(base RuntimeConfig) RuntimeConfig {
	cfg := base
	if v := strings.TrimSpace(os.Getenv("POCKETPLANNER_STORE_PATH")); v != "" {
		cfg.StorePath = v
	}
	if v := strings.TrimSpace(os.Getenv("POCKETPLANNER_LOG_PATH")); v != "" {
		cfg.LogPath = v
	}
	if v, ok := getEnvInt("POCKETPLANNER_FOCUS_WORK_MINUTES"); ok && v > 0 {
		cfg.FocusWorkMinutes = v
	}
	if v, ok := getEnvInt("POCKETPLANNER_FOCUS_BREAK_MINUTES"); ok && v > 0 {
		cfg.FocusBreakMinutes = v
	}
	if v, ok := getEnvInt("POCKETPLANNER_SCHEDULER_BUFFER"); ok && v > 0 {
		cfg.SchedulerBuffer = v
	}
	if v, ok := getEnvBool("POCKETPLANNER_ALERTS"); ok {
		cfg.AlertsEnabled = v
	}
	return cfg
}

func getEnvInt(name string) (int, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

func getEnvBool(name string) (bool, bool) {
	raw := strings.TrimSpace(strings.ToLower(os.Getenv(name)))
	if raw == "" {
		return false, false
	}
	switch raw {
	case "1", "true", "yes", "y", "on":
		return true, true
	case "0", "false", "no", "n", "off":
		return false, true
	default:
		return false, false
	}
}
