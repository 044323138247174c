package model

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func TestParseDayCanonical(t *testing.T) {
	day, err := ParseDay("2026-08-31")
	if err != nil {
		t.Fatalf("parse canonical day: %v", err)
	}
	if day != "2026-08-31" {
		t.Fatalf("unexpected day: %q", day)
	}
}

func TestParseDayNormalizesLegacyLayouts(t *testing.T) {
	cases := []string{
		"Monday, August 31, 2026",
		"August 31, 2026",
		"  2026-08-31  ",
	}
	for _, raw := range cases {
		day, err := ParseDay(raw)
		if err != nil {
			t.Fatalf("parse %q: %v", raw, err)
		}
		if day != "2026-08-31" {
			t.Fatalf("parse %q: got %q, want 2026-08-31", raw, day)
		}
	}
}

func TestDayUnmarshalNormalizesLegacyLayouts(t *testing.T) {
	var task Task
	if err := json.Unmarshal([]byte(`{"id":"t","title":"x","date":"Monday, August 31, 2026"}`), &task); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if task.Date != "2026-08-31" {
		t.Fatalf("expected canonical day after unmarshal, got %q", task.Date)
	}

	// Unrecognized strings are kept verbatim rather than failing the read.
	var day Day
	if err := json.Unmarshal([]byte(`"someday"`), &day); err != nil {
		t.Fatalf("unmarshal garbage day: %v", err)
	}
	if day != "someday" {
		t.Fatalf("expected verbatim day, got %q", day)
	}
}

func TestParseDayRejectsGarbage(t *testing.T) {
	for _, raw := range []string{"", "31/08/2026", "someday"} {
		if _, err := ParseDay(raw); err == nil || !errors.Is(err, ErrInvalidDay) {
			t.Fatalf("parse %q: expected ErrInvalidDay, got %v", raw, err)
		}
	}
}

func TestDayArithmetic(t *testing.T) {
	day := DayOf(time.Date(2026, 8, 31, 23, 30, 0, 0, time.UTC))
	if day != "2026-08-31" {
		t.Fatalf("unexpected day of: %q", day)
	}
	if got := day.AddDays(-1); got != "2026-08-30" {
		t.Fatalf("add days: got %q", got)
	}
	if got := DaysBetween("2026-08-28", day); got != 3 {
		t.Fatalf("days between: got %d, want 3", got)
	}
	if got := DaysBetween(day, "2026-08-28"); got != -3 {
		t.Fatalf("reverse days between: got %d, want -3", got)
	}
}
