package reminders

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pocketplanner/pocketplanner/internal/model"
	"github.com/pocketplanner/pocketplanner/internal/storage"
)

// Scheduler is the platform alert boundary. The rebuilder only decides when
// and what; delivery belongs to the implementation behind this interface.
type Scheduler interface {
	Schedule(at time.Time, title, body, taskID, kind string) (string, error)
	Cancel(handle string)
	Available() bool
}

// Rebuilder reconciles a task's recorded alerts with the plan its deadline
// currently calls for. It diffs instead of cancel-all/reschedule-all, so an
// unchanged reminder keeps its handle across rebuilds.
type Rebuilder struct {
	records *storage.Records
	sched   Scheduler
	log     *zap.SugaredLogger
}

func NewRebuilder(records *storage.Records, sched Scheduler, log *zap.SugaredLogger) *Rebuilder {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Rebuilder{records: records, sched: sched, log: log}
}

// Rebuild brings the task's scheduled alerts in line with its deadline.
// Completed tasks and tasks without a deadline converge to zero alerts.
// A scheduler rejection drops that single reminder; the rest proceed.
func (b *Rebuilder) Rebuild(ctx context.Context, task model.Task, now time.Time) error {
	var plan []Planned
	if task.Deadline != nil && !task.Completed {
		settings := b.records.Settings(ctx)
		plan = BuildPlan(*task.Deadline, now, settings.Lead(), task.EstimatedDuration())
	}

	desired := make(map[string]Planned, len(plan))
	for _, p := range plan {
		desired[planKey(p.Type, p.TriggerAt)] = p
	}

	kept := make([]model.ScheduledNotification, 0)
	for _, rec := range b.records.Notifications(ctx) {
		if rec.TaskID != task.ID {
			kept = append(kept, rec)
			continue
		}
		key := planKey(rec.Type, rec.TriggerAt)
		if _, ok := desired[key]; ok {
			kept = append(kept, rec)
			delete(desired, key)
			continue
		}
		b.sched.Cancel(rec.Handle)
	}

	for _, p := range plan {
		if _, ok := desired[planKey(p.Type, p.TriggerAt)]; !ok {
			continue
		}
		title, body := MessageFor(p.Type, task.Title)
		handle, err := b.sched.Schedule(p.TriggerAt, title, body, task.ID, string(p.Type))
		if err != nil {
			b.log.Warnw("reminder dropped",
				"task", task.ID, "type", p.Type, "at", p.TriggerAt, "error", err)
			continue
		}
		kept = append(kept, model.ScheduledNotification{
			ID:        uuid.NewString(),
			TaskID:    task.ID,
			Type:      p.Type,
			TriggerAt: p.TriggerAt,
			Handle:    handle,
		})
	}

	return b.records.SaveNotifications(ctx, kept)
}

// CancelTask cancels and forgets every alert recorded for the task.
func (b *Rebuilder) CancelTask(ctx context.Context, taskID string) error {
	kept := make([]model.ScheduledNotification, 0)
	for _, rec := range b.records.Notifications(ctx) {
		if rec.TaskID != taskID {
			kept = append(kept, rec)
			continue
		}
		b.sched.Cancel(rec.Handle)
	}
	return b.records.SaveNotifications(ctx, kept)
}

// Snooze schedules one extra alert for the task after the given delay.
func (b *Rebuilder) Snooze(ctx context.Context, task model.Task, delay time.Duration, now time.Time) error {
	if delay <= 0 {
		return fmt.Errorf("reminders: snooze delay must be positive")
	}
	title, body := MessageFor(model.NotificationSnooze, task.Title)
	at := now.Add(delay)
	handle, err := b.sched.Schedule(at, title, body, task.ID, string(model.NotificationSnooze))
	if err != nil {
		return fmt.Errorf("schedule snooze: %w", err)
	}
	records := append(b.records.Notifications(ctx), model.ScheduledNotification{
		ID:        uuid.NewString(),
		TaskID:    task.ID,
		Type:      model.NotificationSnooze,
		TriggerAt: at,
		Handle:    handle,
	})
	return b.records.SaveNotifications(ctx, records)
}

func planKey(kind model.NotificationType, at time.Time) string {
	return string(kind) + "@" + at.UTC().Format(time.RFC3339)
}
