package update

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pocketplanner/pocketplanner/internal/planner"
	"github.com/pocketplanner/pocketplanner/internal/reminders"
	"github.com/pocketplanner/pocketplanner/internal/scheduler"
	"github.com/pocketplanner/pocketplanner/internal/storage"
	"github.com/pocketplanner/pocketplanner/internal/streak"
)

type stubScheduler struct{}

func (stubScheduler) Schedule(at time.Time, title, body, taskID, kind string) (string, error) {
	return "h", nil
}
func (stubScheduler) Cancel(string)   {}
func (stubScheduler) Available() bool { return true }

func newTestModel(t *testing.T) Model {
	t.Helper()
	records := storage.NewRecords(storage.NewMemory(), nil)
	rb := reminders.NewRebuilder(records, stubScheduler{}, nil)
	tracker := streak.NewTracker(records, nil)
	svc := planner.NewService(records, rb, tracker, nil)
	return NewModel(svc)
}

func TestNewModelDefaults(t *testing.T) {
	m := newTestModel(t)
	if m.CurrentView != ViewToday {
		t.Fatalf("expected default view %q, got %q", ViewToday, m.CurrentView)
	}
	if m.Keys.Quit != "q" {
		t.Fatalf("expected quit key q, got %q", m.Keys.Quit)
	}
	if m.Focus.WorkDurationSec != 25*60 {
		t.Fatalf("unexpected focus default: %d", m.Focus.WorkDurationSec)
	}
}

func TestUpdateKeySwitchesView(t *testing.T) {
	m := newTestModel(t)
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'2'}})
	next := updated.(Model)
	if next.CurrentView != ViewBlocks {
		t.Fatalf("expected blocks view, got %q", next.CurrentView)
	}

	updated, _ = next.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'3'}})
	next = updated.(Model)
	if next.CurrentView != ViewFocus {
		t.Fatalf("expected focus view, got %q", next.CurrentView)
	}
}

func TestUpdateSwitchViewMsg(t *testing.T) {
	m := newTestModel(t)
	updated, _ := m.Update(SwitchViewMsg{View: ViewBlocks})
	next := updated.(Model)
	if next.CurrentView != ViewBlocks {
		t.Fatalf("expected blocks view, got %q", next.CurrentView)
	}

	updated, _ = next.Update(SwitchViewMsg{View: View("Unknown")})
	next = updated.(Model)
	if next.CurrentView != ViewBlocks {
		t.Fatalf("expected view unchanged for unknown view, got %q", next.CurrentView)
	}
}

func TestUpdateStatusAndError(t *testing.T) {
	m := newTestModel(t)
	updated, _ := m.Update(SetStatusMsg{Text: "ready", IsError: false})
	next := updated.(Model)
	if next.Status.Text != "ready" || next.Status.IsError {
		t.Fatalf("unexpected status: %+v", next.Status)
	}

	errMsg := errors.New("boom")
	updated, _ = next.Update(AppErrorMsg{Err: errMsg})
	next = updated.(Model)
	if next.LastError == nil || next.LastError.Error() != "boom" {
		t.Fatalf("expected last error boom, got: %v", next.LastError)
	}
	if !next.Status.IsError || next.Status.Text != "boom" {
		t.Fatalf("unexpected error status: %+v", next.Status)
	}

	updated, _ = next.Update(ClearStatusMsg{})
	next = updated.(Model)
	if next.Status.Text != "" || next.Status.IsError {
		t.Fatalf("expected cleared status, got: %+v", next.Status)
	}
}

func TestUpdateQuitKey(t *testing.T) {
	m := newTestModel(t)
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	next := updated.(Model)
	if !next.Quitting {
		t.Fatal("expected quitting flag true")
	}
	if cmd == nil {
		t.Fatal("expected quit command")
	}
}

func TestViewContainsCoreState(t *testing.T) {
	m := newTestModel(t)
	m.SelectedTaskID = "task-42"
	m.Status = StatusBar{Text: "all good"}
	out := m.View()
	if !strings.Contains(out, "view: Today") {
		t.Fatalf("expected view text in output: %q", out)
	}
	if !strings.Contains(out, "selected: task-42") {
		t.Fatalf("expected selected task in output: %q", out)
	}
	if !strings.Contains(out, "status: all good") {
		t.Fatalf("expected status in output: %q", out)
	}
}

func TestViewRendersAlertNotification(t *testing.T) {
	m := newTestModel(t)
	alert := scheduler.Alert{
		Handle:    "h-1",
		Title:     "Deadline soon",
		Body:      "Wrap up",
		TriggerAt: time.Date(2026, 8, 31, 9, 0, 0, 0, time.UTC),
	}
	updated, _ := m.Update(AlertDueMsg{Alert: alert})
	next := updated.(Model)

	out := next.View()
	if !strings.Contains(out, "notification: [ALERT] Deadline soon @ 09:00:00") {
		t.Fatalf("expected alert notification in view, got: %q", out)
	}

	next.Status = StatusBar{Text: "boom", IsError: true}
	if out := next.View(); !strings.Contains(out, "status: error: boom") {
		t.Fatalf("expected error-level status line, got: %q", out)
	}
}

func TestQuickAddWithKeyboard(t *testing.T) {
	m := newTestModel(t)
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'a'}})
	next := updated.(Model)
	if !next.Today.CaptureMode {
		t.Fatal("expected capture mode after a")
	}

	updated, _ = next.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("write tests")})
	next = updated.(Model)
	updated, _ = next.Update(tea.KeyMsg{Type: tea.KeyEnter})
	next = updated.(Model)

	if len(next.Today.Items) != 1 {
		t.Fatalf("expected 1 task today, got %d", len(next.Today.Items))
	}
	if next.Today.Items[0].Title != "write tests" {
		t.Fatalf("unexpected title %q", next.Today.Items[0].Title)
	}
}

func TestWidgetsFollowStateAfterUpdate(t *testing.T) {
	m := newTestModel(t)
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'a'}})
	next := updated.(Model)
	updated, _ = next.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("sync widgets")})
	next = updated.(Model)
	updated, _ = next.Update(tea.KeyMsg{Type: tea.KeyEnter})
	next = updated.(Model)

	// The returned model must carry the refreshed widgets, not just the
	// refreshed state.
	if got := len(next.todayList.Items()); got != len(next.Today.Items) {
		t.Fatalf("list widget has %d items, state has %d", got, len(next.Today.Items))
	}
	if got := len(next.Today.Items); got != 1 {
		t.Fatalf("expected 1 task after quick add, got %d", got)
	}
}

func TestToggleTaskWithKeyboard(t *testing.T) {
	m := newTestModel(t)
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'a'}})
	next := updated.(Model)
	updated, _ = next.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("ship it")})
	next = updated.(Model)
	updated, _ = next.Update(tea.KeyMsg{Type: tea.KeyEnter})
	next = updated.(Model)
	updated, _ = next.Update(tea.KeyMsg{Type: tea.KeyEsc})
	next = updated.(Model)

	updated, _ = next.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{' '}})
	next = updated.(Model)
	if len(next.Today.Items) != 1 || !next.Today.Items[0].Completed {
		t.Fatalf("expected completed task, got %+v", next.Today.Items)
	}
	if next.Streak.CurrentStreak != 1 {
		t.Fatalf("expected streak 1 after completing only task, got %d", next.Streak.CurrentStreak)
	}
}

func TestPaletteEnergyCommand(t *testing.T) {
	m := newTestModel(t)
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'/'}})
	next := updated.(Model)
	if !next.Palette.Active {
		t.Fatal("expected palette active")
	}
	updated, _ = next.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("energy 4")})
	next = updated.(Model)
	updated, _ = next.Update(tea.KeyMsg{Type: tea.KeyEnter})
	next = updated.(Model)

	if next.Palette.Active {
		t.Fatal("expected palette closed after execute")
	}
	if next.Status.IsError {
		t.Fatalf("unexpected error status: %+v", next.Status)
	}
	if next.EnergyLevel != 4 {
		t.Fatalf("expected energy 4 after log, got %d", next.EnergyLevel)
	}
}

func TestPaletteImportCommand(t *testing.T) {
	m := newTestModel(t)
	path := filepath.Join(t.TempDir(), "plan.yaml")
	if err := os.WriteFile(path, []byte("tasks:\n  - title: Imported task\n"), 0o644); err != nil {
		t.Fatalf("write plan file: %v", err)
	}

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'/'}})
	next := updated.(Model)
	updated, _ = next.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("import " + path)})
	next = updated.(Model)
	updated, _ = next.Update(tea.KeyMsg{Type: tea.KeyEnter})
	next = updated.(Model)

	if next.Status.IsError {
		t.Fatalf("unexpected error status: %+v", next.Status)
	}
	if len(next.Today.Items) != 1 || next.Today.Items[0].Title != "Imported task" {
		t.Fatalf("expected imported task in today view, got %+v", next.Today.Items)
	}

	updated, _ = next.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'/'}})
	next = updated.(Model)
	updated, _ = next.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("import " + filepath.Join(t.TempDir(), "missing.yaml"))})
	next = updated.(Model)
	updated, _ = next.Update(tea.KeyMsg{Type: tea.KeyEnter})
	next = updated.(Model)
	if !next.Status.IsError {
		t.Fatalf("expected error status for missing file, got %+v", next.Status)
	}
}

func TestParseDelay(t *testing.T) {
	cases := []struct {
		in   string
		want time.Duration
	}{
		{"10m", 10 * time.Minute},
		{"10 minutes", 10 * time.Minute},
		{"2 hours", 2 * time.Hour},
		{"1 hr", time.Hour},
	}
	for _, tc := range cases {
		got, err := parseDelay(tc.in)
		if err != nil {
			t.Fatalf("parseDelay(%q): %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("parseDelay(%q) = %s, want %s", tc.in, got, tc.want)
		}
	}
	if _, err := parseDelay("soonish"); err == nil {
		t.Fatal("expected error for unparseable delay")
	}
}
