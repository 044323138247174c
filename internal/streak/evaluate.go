package streak

import (
	"github.com/pocketplanner/pocketplanner/internal/model"
)

// DayComplete reports whether the day counts as done. A day with no tasks
// never counts. An incomplete task can be rescued by a completed micro-task
// linked to it: one rescued task marks the whole day complete.
func DayComplete(tasks []model.Task, today model.Day) bool {
	todays := make([]model.Task, 0)
	for _, t := range tasks {
		if t.Date == today {
			todays = append(todays, t)
		}
	}
	if len(todays) == 0 {
		return false
	}

	allCompleted := true
	for _, t := range todays {
		if !t.Completed {
			allCompleted = false
			break
		}
	}
	if allCompleted {
		return true
	}

	for _, t := range todays {
		if t.Completed {
			continue
		}
		if hasCompletedMicroTask(tasks, t.ID) {
			return true
		}
	}
	return false
}

func hasCompletedMicroTask(tasks []model.Task, parentID string) bool {
	for _, t := range tasks {
		if t.LinkedToTaskID == parentID && t.Completed {
			return true
		}
	}
	return false
}

// Evaluate applies the daily streak transition and reports whether the
// record changed. Calling it again the same day is a no-op: both branches
// gate on the record already carrying today's date.
func Evaluate(rec model.StreakData, tasks []model.Task, today model.Day) (model.StreakData, bool) {
	complete := DayComplete(tasks, today)

	if complete {
		if rec.LastCompletionDate == today {
			return rec, false
		}
		if rec.LastCompletionDate == today.AddDays(-1) || rec.CurrentStreak == 0 {
			rec.CurrentStreak++
		} else {
			rec.CurrentStreak = 1
		}
		if rec.CurrentStreak > rec.LongestStreak {
			rec.LongestStreak = rec.CurrentStreak
		}
		rec.LastCompletionDate = today
		rec.LastCheckedDate = today
		return rec, true
	}

	if rec.LastCheckedDate == today {
		return rec, false
	}
	if rec.LastCompletionDate != "" && model.DaysBetween(rec.LastCompletionDate, today) > 1 {
		rec.CurrentStreak = 0
		rec.LastCheckedDate = today
		return rec, true
	}
	return rec, false
}
