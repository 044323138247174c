package suggest

import (
	"math"
	"sort"
	"time"

	"github.com/pocketplanner/pocketplanner/internal/model"
)

const (
	// historyWindow is how many recent log entries feed the prediction.
	historyWindow = 14
	// neutralEnergy is assumed with no history at all.
	neutralEnergy = 3
)

// PredictEnergy returns today's logged level when present, otherwise
// predicts one from recent history: the mean of the last fourteen entries,
// nudged for time of day and weekends, rounded and clamped to [1,5].
func PredictEnergy(entries []model.EnergyLog, now time.Time) int {
	today := model.DayOf(now)
	for _, e := range entries {
		if e.Date == today {
			return clampEnergy(e.Level)
		}
	}

	recent := make([]model.EnergyLog, len(entries))
	copy(recent, entries)
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].Date > recent[j].Date
	})
	if len(recent) > historyWindow {
		recent = recent[:historyWindow]
	}
	if len(recent) == 0 {
		return neutralEnergy
	}

	sum := 0
	for _, e := range recent {
		sum += e.Level
	}
	predicted := float64(sum) / float64(len(recent))

	switch PartOfDay(now) {
	case Morning:
		predicted += 0.5
	case Evening:
		predicted -= 0.5
	}
	if wd := now.Weekday(); wd == time.Saturday || wd == time.Sunday {
		predicted += 0.3
	}

	return clampEnergy(int(math.Round(predicted)))
}

func clampEnergy(v int) int {
	if v < 1 {
		return 1
	}
	if v > 5 {
		return 5
	}
	return v
}
