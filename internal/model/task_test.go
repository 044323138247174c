package model

import (
	"errors"
	"testing"
	"time"
)

func TestTaskValidateSuccess(t *testing.T) {
	now := time.Date(2026, 8, 31, 9, 0, 0, 0, time.UTC)
	deadline := now.Add(3 * time.Hour)
	task := Task{
		ID:               "task-1",
		Title:            "Draft quarterly summary",
		Date:             "2026-08-31",
		Deadline:         &deadline,
		EstimatedMinutes: 45,
		Priority:         PriorityHigh,
		Importance:       4,
		Urgency:          3,
		FocusType:        FocusDeep,
		CreatedAt:        now,
	}
	if err := task.Validate(); err != nil {
		t.Fatalf("expected valid task, got error: %v", err)
	}
}

func TestTaskValidateInvalidEnums(t *testing.T) {
	task := Task{
		ID:    "task-1",
		Title: "Bad priority",
		Date:  "2026-08-31",
	}

	task.Priority = Priority("urgent")
	err := task.Validate()
	if err == nil || !errors.Is(err, ErrInvalidPriority) {
		t.Fatalf("expected ErrInvalidPriority, got: %v", err)
	}

	task.Priority = PriorityLow
	task.FocusType = FocusType("social")
	err = task.Validate()
	if err == nil || !errors.Is(err, ErrInvalidFocusType) {
		t.Fatalf("expected ErrInvalidFocusType, got: %v", err)
	}
}

func TestTaskValidateRatingBounds(t *testing.T) {
	task := Task{
		ID:         "task-1",
		Title:      "Out of range",
		Date:       "2026-08-31",
		Importance: 6,
	}
	if err := task.Validate(); err == nil || !errors.Is(err, ErrInvalidRating) {
		t.Fatalf("expected ErrInvalidRating, got: %v", err)
	}

	task.Importance = 0
	task.Urgency = -1
	if err := task.Validate(); err == nil || !errors.Is(err, ErrInvalidRating) {
		t.Fatalf("expected ErrInvalidRating for urgency, got: %v", err)
	}
}

func TestTaskValidateMicroTaskRequiresParent(t *testing.T) {
	task := Task{
		ID:          "micro-1",
		Title:       "Open the document",
		Date:        "2026-08-31",
		IsMicroTask: true,
	}
	if err := task.Validate(); err == nil {
		t.Fatal("expected error for micro-task without parent link")
	}

	task.LinkedToTaskID = "task-1"
	if err := task.Validate(); err != nil {
		t.Fatalf("expected valid micro-task, got: %v", err)
	}
}

func TestTaskValidateRejectsLegacyDate(t *testing.T) {
	task := Task{
		ID:    "task-1",
		Title: "Legacy date",
		Date:  "Monday, August 31, 2026",
	}
	if err := task.Validate(); err == nil || !errors.Is(err, ErrInvalidDay) {
		t.Fatalf("expected ErrInvalidDay, got: %v", err)
	}
}
