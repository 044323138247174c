package reminders

import (
	"fmt"
	"sort"
	"time"

	"github.com/pocketplanner/pocketplanner/internal/model"
)

const (
	// FinalWarningOffset is fixed and independent of the configured lead time.
	FinalWarningOffset = 15 * time.Minute
	// HalfwayThreshold is the minimum estimate before a halfway reminder is
	// worth firing.
	HalfwayThreshold = 30 * time.Minute
)

// Planned is one reminder the calculator wants scheduled.
type Planned struct {
	Type      model.NotificationType
	TriggerAt time.Time
}

// BuildPlan computes the reminder instants for a deadline. A deadline at or
// before now gates the whole plan: nothing is produced. Every returned
// instant is strictly in the future. The plan is sorted by trigger time.
func BuildPlan(deadline, now time.Time, lead, estimated time.Duration) []Planned {
	if !deadline.After(now) {
		return nil
	}

	plan := []Planned{{Type: model.NotificationDueTime, TriggerAt: deadline}}

	finalWarning := deadline.Add(-FinalWarningOffset)
	if finalWarning.After(now) {
		plan = append(plan, Planned{Type: model.NotificationFinalWarning, TriggerAt: finalWarning})
	}

	if estimated > 0 {
		taskStart := deadline.Add(-estimated)
		preStart := taskStart.Add(-lead)
		if preStart.After(now) && taskStart.After(now) {
			plan = append(plan, Planned{Type: model.NotificationPreStart, TriggerAt: preStart})
		}
		if estimated > HalfwayThreshold {
			halfway := taskStart.Add(estimated / 2)
			if halfway.After(now) && halfway.Before(deadline) {
				plan = append(plan, Planned{Type: model.NotificationHalfway, TriggerAt: halfway})
			}
		}
	} else {
		preStart := deadline.Add(-lead)
		if preStart.After(now) {
			plan = append(plan, Planned{Type: model.NotificationPreStart, TriggerAt: preStart})
		}
	}

	sort.SliceStable(plan, func(i, j int) bool {
		return plan[i].TriggerAt.Before(plan[j].TriggerAt)
	})
	return plan
}

// MessageFor returns the fixed alert copy for a reminder type.
func MessageFor(kind model.NotificationType, taskTitle string) (title, body string) {
	switch kind {
	case model.NotificationPreStart:
		return "Time to start", fmt.Sprintf("Start now to finish %q before its deadline.", taskTitle)
	case model.NotificationHalfway:
		return "Halfway checkpoint", fmt.Sprintf("You should be about halfway through %q.", taskTitle)
	case model.NotificationFinalWarning:
		return "Final warning", fmt.Sprintf("%q is due in 15 minutes.", taskTitle)
	case model.NotificationDueTime:
		return "Deadline reached", fmt.Sprintf("%q is due now.", taskTitle)
	case model.NotificationSnooze:
		return "Snoozed reminder", fmt.Sprintf("Back to %q.", taskTitle)
	default:
		return "Reminder", taskTitle
	}
}
