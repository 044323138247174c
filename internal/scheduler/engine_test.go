package scheduler

import (
	"errors"
	"testing"
	"time"
)

func TestEngineEmitsInTriggerOrder(t *testing.T) {
	engine := NewEngine(8)
	engine.Start()
	defer engine.Stop()

	now := time.Now().UTC()
	if _, err := engine.Schedule(now.Add(80*time.Millisecond), "later", "", "task-1", "due-time"); err != nil {
		t.Fatalf("schedule later: %v", err)
	}
	if _, err := engine.Schedule(now.Add(20*time.Millisecond), "sooner", "", "task-1", "pre-start"); err != nil {
		t.Fatalf("schedule sooner: %v", err)
	}

	first := waitAlert(t, engine.C(), time.Second)
	second := waitAlert(t, engine.C(), time.Second)
	if first.Title != "sooner" || second.Title != "later" {
		t.Fatalf("unexpected order: first=%s second=%s", first.Title, second.Title)
	}
}

func TestEngineCancelSuppressesDelivery(t *testing.T) {
	engine := NewEngine(8)
	engine.Start()
	defer engine.Stop()

	now := time.Now().UTC()
	handle, err := engine.Schedule(now.Add(30*time.Millisecond), "cancelled", "", "task-1", "due-time")
	if err != nil {
		t.Fatalf("schedule: %v", err)
	}
	if _, err := engine.Schedule(now.Add(60*time.Millisecond), "kept", "", "task-1", "final-warning"); err != nil {
		t.Fatalf("schedule kept: %v", err)
	}
	engine.Cancel(handle)

	got := waitAlert(t, engine.C(), time.Second)
	if got.Title != "kept" {
		t.Fatalf("expected only the kept alert, got %q", got.Title)
	}
}

func TestEngineUnavailableRefusesSchedule(t *testing.T) {
	engine := NewEngine(1)
	engine.SetAvailable(false)
	if _, err := engine.Schedule(time.Now().Add(time.Minute), "t", "b", "task-1", "due-time"); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}

func TestEngineNonBlockingDropsWhenConsumerIsSlow(t *testing.T) {
	engine := NewEngine(1)
	engine.Start()
	defer engine.Stop()

	at := time.Now().UTC().Add(20 * time.Millisecond)
	for i := 0; i < 25; i++ {
		if _, err := engine.Schedule(at, "burst", "", "task-1", "due-time"); err != nil {
			t.Fatalf("schedule alert: %v", err)
		}
	}

	time.Sleep(120 * time.Millisecond)
	if engine.Dropped() == 0 {
		t.Fatalf("expected dropped alerts > 0, got %d", engine.Dropped())
	}
}

func TestScheduleValidatesTriggerTime(t *testing.T) {
	engine := NewEngine(1)
	if _, err := engine.Schedule(time.Time{}, "t", "b", "task-1", "due-time"); !errors.Is(err, ErrInvalidTriggerTime) {
		t.Fatalf("expected ErrInvalidTriggerTime, got %v", err)
	}
}

func TestCancelAllEmptiesPending(t *testing.T) {
	engine := NewEngine(4)
	engine.Start()
	defer engine.Stop()

	at := time.Now().UTC().Add(time.Hour)
	for i := 0; i < 3; i++ {
		if _, err := engine.Schedule(at, "future", "", "task-1", "pre-start"); err != nil {
			t.Fatalf("schedule: %v", err)
		}
	}
	engine.CancelAll()
	if got := engine.Pending(); got != 0 {
		t.Fatalf("expected no pending alerts, got %d", got)
	}
}

func waitAlert(t *testing.T, ch <-chan Alert, timeout time.Duration) Alert {
	t.Helper()
	select {
	case alert := <-ch:
		return alert
	case <-time.After(timeout):
		t.Fatalf("timed out waiting for alert")
		return Alert{}
	}
}
