package model

import (
	"errors"
	"fmt"
	"sort"
)

var ErrInvalidEnergyLevel = errors.New("model: energy level must be between 1 and 5")

// EnergyLogRetention caps how many daily entries the log keeps.
const EnergyLogRetention = 30

type EnergyLog struct {
	Date  Day `json:"date"`
	Level int `json:"level"`
}

func (e EnergyLog) Validate() error {
	if !e.Date.IsValid() {
		return fmt.Errorf("%w: energy log date %q", ErrInvalidDay, e.Date)
	}
	if e.Level < 1 || e.Level > 5 {
		return fmt.Errorf("%w: %d", ErrInvalidEnergyLevel, e.Level)
	}
	return nil
}

// UpsertEnergyLog overwrites any entry for the same date and prunes the log
// to the most recent EnergyLogRetention dates.
func UpsertEnergyLog(entries []EnergyLog, entry EnergyLog) []EnergyLog {
	out := make([]EnergyLog, 0, len(entries)+1)
	for _, e := range entries {
		if e.Date != entry.Date {
			out = append(out, e)
		}
	}
	out = append(out, entry)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date > out[j].Date
	})
	if len(out) > EnergyLogRetention {
		out = out[:EnergyLogRetention]
	}
	return out
}
