package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrInvalidPriority  = errors.New("model: invalid task priority")
	ErrInvalidFocusType = errors.New("model: invalid focus type")
	ErrInvalidRating    = errors.New("model: rating must be between 1 and 5")
)

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

func (p Priority) IsValid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	default:
		return false
	}
}

type FocusType string

const (
	FocusDeep           FocusType = "deep-focus"
	FocusCreative       FocusType = "creative"
	FocusAdministrative FocusType = "administrative"
	FocusLowEnergy      FocusType = "low-energy"
)

func (f FocusType) IsValid() bool {
	switch f {
	case FocusDeep, FocusCreative, FocusAdministrative, FocusLowEnergy:
		return true
	default:
		return false
	}
}

type Task struct {
	ID                 string     `json:"id"`
	Title              string     `json:"title"`
	Completed          bool       `json:"completed"`
	Date               Day        `json:"date"`
	Deadline           *time.Time `json:"deadline,omitempty"`
	EstimatedMinutes   int        `json:"estimatedDuration,omitempty"`
	Priority           Priority   `json:"priority,omitempty"`
	Importance         int        `json:"importance,omitempty"`
	Urgency            int        `json:"urgency,omitempty"`
	FocusType          FocusType  `json:"focusType,omitempty"`
	LinkedToTaskID     string     `json:"linkedToTaskId,omitempty"`
	IsMicroTask        bool       `json:"isMicroTask,omitempty"`
	HasMicroTaskActive bool       `json:"hasMicroTaskActive,omitempty"`
	CreatedAt          time.Time  `json:"createdAt"`
}

func (t Task) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return errors.New("model: task id is required")
	}
	if strings.TrimSpace(t.Title) == "" {
		return errors.New("model: task title is required")
	}
	if !t.Date.IsValid() {
		return fmt.Errorf("%w: task date %q", ErrInvalidDay, t.Date)
	}
	if t.Priority != "" && !t.Priority.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidPriority, t.Priority)
	}
	if t.FocusType != "" && !t.FocusType.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidFocusType, t.FocusType)
	}
	if t.Importance != 0 && (t.Importance < 1 || t.Importance > 5) {
		return fmt.Errorf("%w: importance %d", ErrInvalidRating, t.Importance)
	}
	if t.Urgency != 0 && (t.Urgency < 1 || t.Urgency > 5) {
		return fmt.Errorf("%w: urgency %d", ErrInvalidRating, t.Urgency)
	}
	if t.EstimatedMinutes < 0 {
		return errors.New("model: estimated duration must not be negative")
	}
	if t.IsMicroTask && strings.TrimSpace(t.LinkedToTaskID) == "" {
		return errors.New("model: micro-task requires a linked parent task id")
	}
	return nil
}

// EstimatedDuration returns the estimate as a duration, zero when unset.
func (t Task) EstimatedDuration() time.Duration {
	if t.EstimatedMinutes <= 0 {
		return 0
	}
	return time.Duration(t.EstimatedMinutes) * time.Minute
}
