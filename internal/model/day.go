package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrInvalidDay = errors.New("model: invalid day key")

const dayLayout = "2006-01-02"

// Legacy layouts still found in stores written by older clients. They are
// accepted on read and always rewritten in the canonical ISO form.
var legacyDayLayouts = []string{
	"Monday, January 2, 2006",
	"January 2, 2006",
}

// Day is a calendar day key in canonical ISO form, e.g. "2026-08-31".
type Day string

func DayOf(t time.Time) Day {
	return Day(t.Format(dayLayout))
}

// ParseDay normalizes a raw day string into the canonical form.
func ParseDay(raw string) (Day, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", fmt.Errorf("%w: empty", ErrInvalidDay)
	}
	if t, err := time.Parse(dayLayout, trimmed); err == nil {
		return DayOf(t), nil
	}
	for _, layout := range legacyDayLayouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return DayOf(t), nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidDay, raw)
}

// UnmarshalJSON normalizes legacy layouts from older stores into the
// canonical form. Strings no layout recognizes are kept verbatim so a
// single odd record cannot fail the whole read.
func (d *Day) UnmarshalJSON(b []byte) error {
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	if parsed, err := ParseDay(raw); err == nil {
		*d = parsed
		return nil
	}
	*d = Day(raw)
	return nil
}

func (d Day) IsValid() bool {
	_, err := time.Parse(dayLayout, string(d))
	return err == nil
}

func (d Day) Time() (time.Time, error) {
	t, err := time.Parse(dayLayout, string(d))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDay, d)
	}
	return t, nil
}

func (d Day) AddDays(n int) Day {
	t, err := d.Time()
	if err != nil {
		return d
	}
	return DayOf(t.AddDate(0, 0, n))
}

// DaysBetween returns the number of whole days from a to b. Positive when b
// is later than a.
func DaysBetween(a, b Day) int {
	at, err := a.Time()
	if err != nil {
		return 0
	}
	bt, err := b.Time()
	if err != nil {
		return 0
	}
	return int(bt.Sub(at).Hours() / 24)
}
