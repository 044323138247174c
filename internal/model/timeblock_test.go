package model

import (
	"errors"
	"testing"
)

func TestTimeBlockValidateSuccess(t *testing.T) {
	block := TimeBlock{
		ID:        "block-1",
		Title:     "Morning writing",
		StartTime: "09:00 AM",
		EndTime:   "10:30 AM",
		Date:      "2026-08-31",
	}
	if err := block.Validate(); err != nil {
		t.Fatalf("expected valid block, got: %v", err)
	}
}

func TestTimeBlockValidateRejectsBadClock(t *testing.T) {
	block := TimeBlock{
		ID:        "block-1",
		Title:     "Bad clock",
		StartTime: "14:00",
		EndTime:   "03:00 PM",
		Date:      "2026-08-31",
	}
	if err := block.Validate(); err == nil || !errors.Is(err, ErrInvalidClock) {
		t.Fatalf("expected ErrInvalidClock, got: %v", err)
	}

	block.StartTime = "02:00 PM"
	block.EndTime = "25:00 PM"
	if err := block.Validate(); err == nil || !errors.Is(err, ErrInvalidClock) {
		t.Fatalf("expected ErrInvalidClock for end time, got: %v", err)
	}
}

func TestTimeBlockDanglingLinkIsValid(t *testing.T) {
	block := TimeBlock{
		ID:           "block-1",
		Title:        "Linked work",
		StartTime:    "01:00 PM",
		EndTime:      "02:00 PM",
		Date:         "2026-08-31",
		LinkedTaskID: "deleted-task",
	}
	if err := block.Validate(); err != nil {
		t.Fatalf("dangling link must be tolerated, got: %v", err)
	}
}
