package suggest

import (
	"sort"
	"time"

	"github.com/pocketplanner/pocketplanner/internal/model"
)

// MaxSuggestions caps the ranked list shown to the user.
const MaxSuggestions = 5

type DayPart string

const (
	Morning   DayPart = "morning"
	Afternoon DayPart = "afternoon"
	Evening   DayPart = "evening"
)

// PartOfDay buckets a local time: [6,12) morning, [12,18) afternoon, the
// rest evening.
func PartOfDay(t time.Time) DayPart {
	switch h := t.Hour(); {
	case h >= 6 && h < 12:
		return Morning
	case h >= 12 && h < 18:
		return Afternoon
	default:
		return Evening
	}
}

type Ranked struct {
	Task  model.Task
	Score int
}

// Score computes the additive suggestion score for one task.
func Score(task model.Task, energy int, part DayPart, now time.Time) int {
	score := priorityBase(task.Priority)
	score += focusEnergyMatch(task.FocusType, energy)
	score += timeOfDayBonus(task.FocusType, part)
	score += deadlineUrgency(task.Deadline, now)
	return score
}

// Rank scores the incomplete tasks and returns the top five. The sort is
// stable, so ties keep their original order.
func Rank(tasks []model.Task, energy int, now time.Time) []Ranked {
	part := PartOfDay(now)
	out := make([]Ranked, 0, len(tasks))
	for _, task := range tasks {
		if task.Completed {
			continue
		}
		out = append(out, Ranked{Task: task, Score: Score(task, energy, part, now)})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	if len(out) > MaxSuggestions {
		out = out[:MaxSuggestions]
	}
	return out
}

func priorityBase(p model.Priority) int {
	switch p {
	case model.PriorityHigh:
		return 3
	case model.PriorityMedium:
		return 2
	case model.PriorityLow:
		return 1
	default:
		return 0
	}
}

func focusEnergyMatch(f model.FocusType, energy int) int {
	switch f {
	case model.FocusDeep:
		switch {
		case energy >= 4:
			return 3
		case energy == 3:
			return 1
		default:
			return -1
		}
	case model.FocusCreative:
		if energy >= 3 {
			return 2
		}
		return -1
	case model.FocusAdministrative:
		if energy >= 2 {
			return 1
		}
		return 0
	case model.FocusLowEnergy:
		switch {
		case energy <= 2:
			return 3
		case energy == 3:
			return 1
		default:
			return 0
		}
	default:
		return 0
	}
}

func timeOfDayBonus(f model.FocusType, part DayPart) int {
	switch part {
	case Morning:
		switch f {
		case model.FocusDeep:
			return 2
		case model.FocusCreative:
			return 1
		}
	case Afternoon:
		if f == model.FocusAdministrative {
			return 1
		}
	case Evening:
		switch f {
		case model.FocusLowEnergy:
			return 2
		case model.FocusAdministrative:
			return 1
		}
	}
	return 0
}

func deadlineUrgency(deadline *time.Time, now time.Time) int {
	if deadline == nil {
		return 0
	}
	until := deadline.Sub(now)
	switch {
	case until <= 24*time.Hour:
		return 4
	case until <= 72*time.Hour:
		return 2
	case until <= 7*24*time.Hour:
		return 1
	default:
		return 0
	}
}
