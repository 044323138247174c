package model

import "errors"

// StreakData is a singleton record. Version is bumped on every persisted
// write and checked before saving so that two overlapping evaluations cannot
// both count the same day.
type StreakData struct {
	CurrentStreak      int `json:"currentStreak"`
	LongestStreak      int `json:"longestStreak"`
	LastCheckedDate    Day `json:"lastCheckedDate,omitempty"`
	LastCompletionDate Day `json:"lastCompletionDate,omitempty"`
	Version            int `json:"version"`
}

func (s StreakData) Validate() error {
	if s.CurrentStreak < 0 || s.LongestStreak < 0 {
		return errors.New("model: streak counts must not be negative")
	}
	if s.CurrentStreak > s.LongestStreak {
		return errors.New("model: current streak exceeds longest streak")
	}
	return nil
}
