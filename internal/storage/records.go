package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/pocketplanner/pocketplanner/internal/model"
)

// Fixed record keys, matching the formats older clients wrote.
const (
	KeyTasks         = "tasks"
	KeyTimeBlocks    = "timeBlocks"
	KeyStreakData    = "streakData"
	KeyEnergyLog     = "dailyEnergyLog"
	KeyNotifications = "scheduled_notifications"
	KeySettings      = "notification_settings"
)

const schemaVersion = 1

var (
	ErrSchemaVersion   = errors.New("storage: unsupported schema version")
	ErrVersionConflict = errors.New("storage: streak record version conflict")
)

// envelope wraps every persisted record with an explicit schema version so
// unknown shapes are rejected instead of trusted.
type envelope struct {
	Version int             `json:"version"`
	Data    json.RawMessage `json:"data"`
}

// Records is the typed layer over the raw KV. Reads never fail the caller:
// a missing, corrupt, or unknown-version record degrades to the default
// value and is logged.
type Records struct {
	kv  KV
	log *zap.SugaredLogger
}

func NewRecords(kv KV, log *zap.SugaredLogger) *Records {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Records{kv: kv, log: log}
}

func (r *Records) Tasks(ctx context.Context) []model.Task {
	var out []model.Task
	if err := r.load(ctx, KeyTasks, &out); err != nil && !errors.Is(err, ErrNotFound) {
		r.log.Warnw("read tasks failed, using empty list", "error", err)
		return nil
	}
	return out
}

func (r *Records) SaveTasks(ctx context.Context, tasks []model.Task) error {
	return r.save(ctx, KeyTasks, tasks)
}

func (r *Records) TimeBlocks(ctx context.Context) []model.TimeBlock {
	var out []model.TimeBlock
	if err := r.load(ctx, KeyTimeBlocks, &out); err != nil && !errors.Is(err, ErrNotFound) {
		r.log.Warnw("read time blocks failed, using empty list", "error", err)
		return nil
	}
	return out
}

func (r *Records) SaveTimeBlocks(ctx context.Context, blocks []model.TimeBlock) error {
	return r.save(ctx, KeyTimeBlocks, blocks)
}

func (r *Records) EnergyLog(ctx context.Context) []model.EnergyLog {
	var out []model.EnergyLog
	if err := r.load(ctx, KeyEnergyLog, &out); err != nil && !errors.Is(err, ErrNotFound) {
		r.log.Warnw("read energy log failed, using empty list", "error", err)
		return nil
	}
	return out
}

func (r *Records) SaveEnergyLog(ctx context.Context, entries []model.EnergyLog) error {
	return r.save(ctx, KeyEnergyLog, entries)
}

func (r *Records) Notifications(ctx context.Context) []model.ScheduledNotification {
	var out []model.ScheduledNotification
	if err := r.load(ctx, KeyNotifications, &out); err != nil && !errors.Is(err, ErrNotFound) {
		r.log.Warnw("read scheduled notifications failed, using empty list", "error", err)
		return nil
	}
	return out
}

func (r *Records) SaveNotifications(ctx context.Context, items []model.ScheduledNotification) error {
	return r.save(ctx, KeyNotifications, items)
}

func (r *Records) Settings(ctx context.Context) model.NotificationSettings {
	out := model.DefaultNotificationSettings()
	if err := r.load(ctx, KeySettings, &out); err != nil {
		if !errors.Is(err, ErrNotFound) {
			r.log.Warnw("read notification settings failed, using defaults", "error", err)
		}
		return model.DefaultNotificationSettings()
	}
	return out
}

func (r *Records) SaveSettings(ctx context.Context, settings model.NotificationSettings) error {
	return r.save(ctx, KeySettings, settings)
}

func (r *Records) Streak(ctx context.Context) model.StreakData {
	var out model.StreakData
	if err := r.load(ctx, KeyStreakData, &out); err != nil {
		if !errors.Is(err, ErrNotFound) {
			r.log.Warnw("read streak record failed, using zero record", "error", err)
		}
		return model.StreakData{}
	}
	return out
}

// SaveStreak persists the streak record only if nobody else has written it
// since rec was loaded. The stored version must match rec.Version. It
// returns the persisted copy, which carries rec.Version+1, so the caller
// can keep it and save again without re-reading.
func (r *Records) SaveStreak(ctx context.Context, rec model.StreakData) (model.StreakData, error) {
	current := r.Streak(ctx)
	if current.Version != rec.Version {
		return rec, fmt.Errorf("%w: have %d, want %d", ErrVersionConflict, current.Version, rec.Version)
	}
	rec.Version++
	if err := r.save(ctx, KeyStreakData, rec); err != nil {
		return rec, err
	}
	return rec, nil
}

func (r *Records) load(ctx context.Context, key string, out any) error {
	raw, err := r.kv.Get(ctx, key)
	if err != nil {
		return err
	}
	var env envelope
	if err := json.Unmarshal([]byte(raw), &env); err != nil {
		return fmt.Errorf("decode %s envelope: %w", key, err)
	}
	if env.Version != schemaVersion {
		return fmt.Errorf("%w: %s has version %d", ErrSchemaVersion, key, env.Version)
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}
	return nil
}

func (r *Records) save(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	payload, err := json.Marshal(envelope{Version: schemaVersion, Data: data})
	if err != nil {
		return fmt.Errorf("encode %s envelope: %w", key, err)
	}
	return r.kv.Set(ctx, key, string(payload))
}
