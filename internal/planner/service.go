package planner

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pocketplanner/pocketplanner/internal/model"
	"github.com/pocketplanner/pocketplanner/internal/reminders"
	"github.com/pocketplanner/pocketplanner/internal/storage"
	"github.com/pocketplanner/pocketplanner/internal/streak"
	"github.com/pocketplanner/pocketplanner/internal/suggest"
)

var (
	ErrTaskNotFound      = errors.New("planner: task not found")
	ErrTimeBlockNotFound = errors.New("planner: time block not found")
	ErrParentCompleted   = errors.New("planner: parent task is already completed")
)

// Service owns every mutation of the persisted records. Screens call it and
// render what it returns; nothing else writes to the store.
type Service struct {
	records   *storage.Records
	reminders *reminders.Rebuilder
	streaks   *streak.Tracker
	log       *zap.SugaredLogger
	now       func() time.Time
}

func NewService(records *storage.Records, rb *reminders.Rebuilder, tracker *streak.Tracker, log *zap.SugaredLogger) *Service {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Service{
		records:   records,
		reminders: rb,
		streaks:   tracker,
		log:       log,
		now:       time.Now,
	}
}

// NewServiceWithClock pins the service clock. Tests only.
func NewServiceWithClock(records *storage.Records, rb *reminders.Rebuilder, tracker *streak.Tracker, log *zap.SugaredLogger, now func() time.Time) *Service {
	s := NewService(records, rb, tracker, log)
	s.now = now
	return s
}

// TaskDraft is the user-supplied part of a new task.
type TaskDraft struct {
	Title            string
	Date             model.Day
	Deadline         *time.Time
	EstimatedMinutes int
	Priority         model.Priority
	Importance       int
	Urgency          int
	FocusType        model.FocusType
}

func (s *Service) Tasks(ctx context.Context) []model.Task {
	return s.records.Tasks(ctx)
}

func (s *Service) TimeBlocks(ctx context.Context) []model.TimeBlock {
	return s.records.TimeBlocks(ctx)
}

func (s *Service) Settings(ctx context.Context) model.NotificationSettings {
	return s.records.Settings(ctx)
}

func (s *Service) SaveSettings(ctx context.Context, settings model.NotificationSettings) error {
	return s.records.SaveSettings(ctx, settings)
}

func (s *Service) CreateTask(ctx context.Context, draft TaskDraft) (model.Task, error) {
	now := s.now()
	date := draft.Date
	if date == "" {
		date = model.DayOf(now)
	}
	task := model.Task{
		ID:               uuid.NewString(),
		Title:            strings.TrimSpace(draft.Title),
		Date:             date,
		Deadline:         draft.Deadline,
		EstimatedMinutes: draft.EstimatedMinutes,
		Priority:         draft.Priority,
		Importance:       draft.Importance,
		Urgency:          draft.Urgency,
		FocusType:        draft.FocusType,
		CreatedAt:        now,
	}
	if err := task.Validate(); err != nil {
		return model.Task{}, err
	}

	tasks := append(s.records.Tasks(ctx), task)
	if err := s.records.SaveTasks(ctx, tasks); err != nil {
		return model.Task{}, fmt.Errorf("save tasks: %w", err)
	}
	if task.Deadline != nil {
		if err := s.reminders.Rebuild(ctx, task, now); err != nil {
			s.log.Warnw("reminder rebuild failed", "task", task.ID, "error", err)
		}
	}
	return task, nil
}

// ToggleTask flips completion. Completing a task cancels its pending alerts
// and re-evaluates the streak; reopening it rebuilds them.
func (s *Service) ToggleTask(ctx context.Context, id string) (model.Task, error) {
	tasks := s.records.Tasks(ctx)
	idx := indexOfTask(tasks, id)
	if idx < 0 {
		return model.Task{}, fmt.Errorf("%w: %s", ErrTaskNotFound, id)
	}
	tasks[idx].Completed = !tasks[idx].Completed
	if err := s.records.SaveTasks(ctx, tasks); err != nil {
		return model.Task{}, fmt.Errorf("save tasks: %w", err)
	}

	task := tasks[idx]
	now := s.now()
	if err := s.reminders.Rebuild(ctx, task, now); err != nil {
		s.log.Warnw("reminder rebuild failed", "task", task.ID, "error", err)
	}
	if _, err := s.streaks.Check(ctx, model.DayOf(now)); err != nil {
		s.log.Warnw("streak check failed", "error", err)
	}
	return task, nil
}

func (s *Service) DeleteTask(ctx context.Context, id string) error {
	tasks := s.records.Tasks(ctx)
	idx := indexOfTask(tasks, id)
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrTaskNotFound, id)
	}
	tasks = append(tasks[:idx], tasks[idx+1:]...)
	if err := s.records.SaveTasks(ctx, tasks); err != nil {
		return fmt.Errorf("save tasks: %w", err)
	}
	// Time blocks linked to this task are left alone; their snapshot title
	// keeps rendering and the dangling id simply fails to resolve.
	if err := s.reminders.CancelTask(ctx, id); err != nil {
		s.log.Warnw("cancel reminders failed", "task", id, "error", err)
	}
	return nil
}

// CreateMicroCommitment adds a small next step linked to an open parent
// task. The micro-task inherits the parent's planning attributes and is
// dated today, which lets a completed step rescue the day's streak.
func (s *Service) CreateMicroCommitment(ctx context.Context, parentID, step string) (model.Task, error) {
	tasks := s.records.Tasks(ctx)
	idx := indexOfTask(tasks, parentID)
	if idx < 0 {
		return model.Task{}, fmt.Errorf("%w: %s", ErrTaskNotFound, parentID)
	}
	parent := tasks[idx]
	if parent.Completed {
		return model.Task{}, fmt.Errorf("%w: %s", ErrParentCompleted, parentID)
	}

	now := s.now()
	micro := model.Task{
		ID:               uuid.NewString(),
		Title:            strings.TrimSpace(step),
		Date:             model.DayOf(now),
		Deadline:         parent.Deadline,
		EstimatedMinutes: 0,
		Priority:         parent.Priority,
		Importance:       parent.Importance,
		Urgency:          parent.Urgency,
		FocusType:        parent.FocusType,
		LinkedToTaskID:   parent.ID,
		IsMicroTask:      true,
		CreatedAt:        now,
	}
	if err := micro.Validate(); err != nil {
		return model.Task{}, err
	}

	tasks[idx].HasMicroTaskActive = true
	tasks = append(tasks, micro)
	if err := s.records.SaveTasks(ctx, tasks); err != nil {
		return model.Task{}, fmt.Errorf("save tasks: %w", err)
	}
	return micro, nil
}

func (s *Service) CreateTimeBlock(ctx context.Context, title, start, end string, date model.Day, linkedTaskID string) (model.TimeBlock, error) {
	if date == "" {
		date = model.DayOf(s.now())
	}
	block := model.TimeBlock{
		ID:           uuid.NewString(),
		Title:        strings.TrimSpace(title),
		StartTime:    strings.TrimSpace(start),
		EndTime:      strings.TrimSpace(end),
		Date:         date,
		LinkedTaskID: linkedTaskID,
	}
	if linkedTaskID != "" {
		if idx := indexOfTask(s.records.Tasks(ctx), linkedTaskID); idx >= 0 {
			block.LinkedTaskTitle = s.records.Tasks(ctx)[idx].Title
		}
	}
	if err := block.Validate(); err != nil {
		return model.TimeBlock{}, err
	}
	blocks := append(s.records.TimeBlocks(ctx), block)
	if err := s.records.SaveTimeBlocks(ctx, blocks); err != nil {
		return model.TimeBlock{}, fmt.Errorf("save time blocks: %w", err)
	}
	return block, nil
}

func (s *Service) DeleteTimeBlock(ctx context.Context, id string) error {
	blocks := s.records.TimeBlocks(ctx)
	for i, b := range blocks {
		if b.ID == id {
			blocks = append(blocks[:i], blocks[i+1:]...)
			return s.records.SaveTimeBlocks(ctx, blocks)
		}
	}
	return fmt.Errorf("%w: %s", ErrTimeBlockNotFound, id)
}

// BlockTaskTitle resolves a block's linked task title, falling back to the
// snapshot when the task is gone.
func (s *Service) BlockTaskTitle(ctx context.Context, block model.TimeBlock) string {
	if block.LinkedTaskID != "" {
		tasks := s.records.Tasks(ctx)
		if idx := indexOfTask(tasks, block.LinkedTaskID); idx >= 0 {
			return tasks[idx].Title
		}
	}
	return block.LinkedTaskTitle
}

func (s *Service) LogEnergy(ctx context.Context, date model.Day, level int) error {
	entry := model.EnergyLog{Date: date, Level: level}
	if entry.Date == "" {
		entry.Date = model.DayOf(s.now())
	}
	if err := entry.Validate(); err != nil {
		return err
	}
	entries := model.UpsertEnergyLog(s.records.EnergyLog(ctx), entry)
	return s.records.SaveEnergyLog(ctx, entries)
}

// Suggestions ranks the incomplete tasks against the current (or predicted)
// energy level.
func (s *Service) Suggestions(ctx context.Context) ([]suggest.Ranked, int) {
	now := s.now()
	energy := suggest.PredictEnergy(s.records.EnergyLog(ctx), now)
	return suggest.Rank(s.records.Tasks(ctx), energy, now), energy
}

func (s *Service) CheckStreak(ctx context.Context) (model.StreakData, error) {
	return s.streaks.Check(ctx, model.DayOf(s.now()))
}

func (s *Service) Snooze(ctx context.Context, taskID string, delay time.Duration) error {
	tasks := s.records.Tasks(ctx)
	idx := indexOfTask(tasks, taskID)
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrTaskNotFound, taskID)
	}
	return s.reminders.Snooze(ctx, tasks[idx], delay, s.now())
}

func indexOfTask(tasks []model.Task, id string) int {
	for i, t := range tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}
