package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrInvalidClock = errors.New("model: time must be in 12-hour HH:MM AM/PM form")

const clockLayout = "03:04 PM"

// ParseClock validates a 12-hour display time such as "09:30 AM".
func ParseClock(raw string) (time.Time, error) {
	t, err := time.Parse(clockLayout, strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidClock, raw)
	}
	return t, nil
}

type TimeBlock struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	StartTime       string `json:"startTime"`
	EndTime         string `json:"endTime"`
	Date            Day    `json:"date"`
	LinkedTaskID    string `json:"linkedTaskId,omitempty"`
	LinkedTaskTitle string `json:"linkedTaskTitle,omitempty"`
}

func (b TimeBlock) Validate() error {
	if strings.TrimSpace(b.ID) == "" {
		return errors.New("model: time block id is required")
	}
	if strings.TrimSpace(b.Title) == "" {
		return errors.New("model: time block title is required")
	}
	if !b.Date.IsValid() {
		return fmt.Errorf("%w: time block date %q", ErrInvalidDay, b.Date)
	}
	if _, err := ParseClock(b.StartTime); err != nil {
		return err
	}
	if _, err := ParseClock(b.EndTime); err != nil {
		return err
	}
	return nil
}
