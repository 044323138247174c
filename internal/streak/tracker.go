package streak

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/pocketplanner/pocketplanner/internal/model"
	"github.com/pocketplanner/pocketplanner/internal/storage"
)

// maxAttempts bounds the reload-and-retry loop on a version conflict. The
// second attempt re-reads a record that already carries today's date, so it
// settles without writing.
const maxAttempts = 2

// Tracker owns the read-evaluate-save cycle for the streak record. Several
// screens poll it redundantly; the version check in the records layer keeps
// overlapping cycles from double-counting a day.
type Tracker struct {
	records *storage.Records
	log     *zap.SugaredLogger
}

func NewTracker(records *storage.Records, log *zap.SugaredLogger) *Tracker {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Tracker{records: records, log: log}
}

func (t *Tracker) Check(ctx context.Context, today model.Day) (model.StreakData, error) {
	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		rec := t.records.Streak(ctx)
		tasks := t.records.Tasks(ctx)

		next, changed := Evaluate(rec, tasks, today)
		if !changed {
			return rec, nil
		}
		saved, err := t.records.SaveStreak(ctx, next)
		if err == nil {
			return saved, nil
		}
		if !errors.Is(err, storage.ErrVersionConflict) {
			return rec, err
		}
		lastErr = err
		t.log.Infow("streak record changed underneath us, retrying", "attempt", attempt+1)
	}
	return t.records.Streak(ctx), fmt.Errorf("streak: giving up after %d attempts: %w", maxAttempts, lastErr)
}
