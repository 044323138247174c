package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrInvalidNotificationType = errors.New("model: invalid notification type")

type NotificationType string

const (
	NotificationPreStart     NotificationType = "pre-start"
	NotificationDueTime      NotificationType = "due-time"
	NotificationHalfway      NotificationType = "halfway-reminder"
	NotificationFinalWarning NotificationType = "final-warning"
	NotificationSnooze       NotificationType = "snooze"
)

func (n NotificationType) IsValid() bool {
	switch n {
	case NotificationPreStart, NotificationDueTime, NotificationHalfway, NotificationFinalWarning, NotificationSnooze:
		return true
	default:
		return false
	}
}

// ScheduledNotification records one pending alert and the opaque platform
// handle needed to cancel it.
type ScheduledNotification struct {
	ID        string           `json:"id"`
	TaskID    string           `json:"taskId"`
	Type      NotificationType `json:"type"`
	TriggerAt time.Time        `json:"triggerAt"`
	Handle    string           `json:"handle"`
}

func (n ScheduledNotification) Validate() error {
	if strings.TrimSpace(n.ID) == "" {
		return errors.New("model: notification id is required")
	}
	if strings.TrimSpace(n.TaskID) == "" {
		return errors.New("model: notification task_id is required")
	}
	if !n.Type.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidNotificationType, n.Type)
	}
	if n.TriggerAt.IsZero() {
		return errors.New("model: notification trigger time is required")
	}
	return nil
}

const DefaultLeadMinutes = 15

type NotificationSettings struct {
	LeadMinutes      int  `json:"reminderLeadTime"`
	SoundEnabled     bool `json:"soundEnabled"`
	VibrationEnabled bool `json:"vibrationEnabled"`
}

func DefaultNotificationSettings() NotificationSettings {
	return NotificationSettings{
		LeadMinutes:      DefaultLeadMinutes,
		SoundEnabled:     true,
		VibrationEnabled: true,
	}
}

// Lead returns the configured lead time, falling back to the default when the
// stored value is unusable.
func (s NotificationSettings) Lead() time.Duration {
	if s.LeadMinutes <= 0 {
		return DefaultLeadMinutes * time.Minute
	}
	return time.Duration(s.LeadMinutes) * time.Minute
}
