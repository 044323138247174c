package streak

import (
	"testing"

	"github.com/pocketplanner/pocketplanner/internal/model"
)

const today = model.Day("2026-08-31")

func task(id string, day model.Day, completed bool) model.Task {
	return model.Task{ID: id, Title: "task " + id, Date: day, Completed: completed}
}

func TestEvaluateContinuesStreakFromYesterday(t *testing.T) {
	rec := model.StreakData{
		CurrentStreak:      3,
		LongestStreak:      5,
		LastCompletionDate: today.AddDays(-1),
	}
	tasks := []model.Task{task("a", today, true), task("b", today, true)}

	next, changed := Evaluate(rec, tasks, today)
	if !changed {
		t.Fatal("expected an update")
	}
	if next.CurrentStreak != 4 || next.LongestStreak != 5 {
		t.Fatalf("unexpected streaks: %#v", next)
	}
	if next.LastCompletionDate != today || next.LastCheckedDate != today {
		t.Fatalf("dates not advanced: %#v", next)
	}
}

func TestEvaluateNewRecordExtendsLongest(t *testing.T) {
	rec := model.StreakData{
		CurrentStreak:      3,
		LongestStreak:      3,
		LastCompletionDate: today.AddDays(-1),
	}
	next, _ := Evaluate(rec, []model.Task{task("a", today, true)}, today)
	if next.CurrentStreak != 4 || next.LongestStreak != 4 {
		t.Fatalf("longest streak should track current: %#v", next)
	}
}

func TestEvaluateGapRestartsAtOne(t *testing.T) {
	rec := model.StreakData{
		CurrentStreak:      7,
		LongestStreak:      9,
		LastCompletionDate: today.AddDays(-3),
	}
	next, changed := Evaluate(rec, []model.Task{task("a", today, true)}, today)
	if !changed || next.CurrentStreak != 1 {
		t.Fatalf("gap should restart streak at 1: %#v", next)
	}
	if next.LongestStreak != 9 {
		t.Fatalf("longest must be preserved: %#v", next)
	}
}

func TestEvaluateIdempotentSameDay(t *testing.T) {
	rec := model.StreakData{LastCompletionDate: today.AddDays(-1), CurrentStreak: 2, LongestStreak: 2}
	tasks := []model.Task{task("a", today, true)}

	once, changed := Evaluate(rec, tasks, today)
	if !changed {
		t.Fatal("first evaluation should update")
	}
	twice, changed := Evaluate(once, tasks, today)
	if changed {
		t.Fatal("second evaluation the same day must not change anything")
	}
	if twice != once {
		t.Fatalf("record drifted on re-evaluation: %#v vs %#v", twice, once)
	}
}

func TestEvaluateEmptyDayNeverCounts(t *testing.T) {
	rec := model.StreakData{CurrentStreak: 2, LongestStreak: 2, LastCompletionDate: today.AddDays(-1)}
	next, changed := Evaluate(rec, nil, today)
	if changed {
		t.Fatalf("a day with no tasks must not change the record: %#v", next)
	}
}

func TestEvaluateIncompleteYesterdayDoesNotReset(t *testing.T) {
	rec := model.StreakData{
		CurrentStreak:      4,
		LongestStreak:      4,
		LastCompletionDate: today.AddDays(-1),
	}
	tasks := []model.Task{task("a", today, false)}

	next, changed := Evaluate(rec, tasks, today)
	if changed || next.CurrentStreak != 4 {
		t.Fatalf("one incomplete day after yesterday's completion must not reset: %#v", next)
	}
}

func TestEvaluateIncompleteAfterGapResets(t *testing.T) {
	rec := model.StreakData{
		CurrentStreak:      4,
		LongestStreak:      6,
		LastCompletionDate: today.AddDays(-3),
	}
	tasks := []model.Task{task("a", today, false)}

	next, changed := Evaluate(rec, tasks, today)
	if !changed || next.CurrentStreak != 0 {
		t.Fatalf("a >1 day gap must reset the streak: %#v", next)
	}
	if next.LastCheckedDate != today {
		t.Fatalf("checked date not advanced: %#v", next)
	}

	// Checking again the same day is a no-op.
	again, changed := Evaluate(next, tasks, today)
	if changed || again != next {
		t.Fatalf("repeated check must not change the record: %#v", again)
	}
}

func TestEvaluateMicroTaskRescue(t *testing.T) {
	parent := task("parent", today, false)
	parent.HasMicroTaskActive = true
	micro := task("micro", today, true)
	micro.IsMicroTask = true
	micro.LinkedToTaskID = parent.ID

	rec := model.StreakData{LastCompletionDate: today.AddDays(-1), CurrentStreak: 1, LongestStreak: 1}
	next, changed := Evaluate(rec, []model.Task{parent, micro}, today)
	if !changed || next.CurrentStreak != 2 {
		t.Fatalf("completed micro-task must rescue the day: %#v", next)
	}
}

func TestEvaluateIncompleteMicroTaskDoesNotRescue(t *testing.T) {
	parent := task("parent", today, false)
	micro := task("micro", today, false)
	micro.IsMicroTask = true
	micro.LinkedToTaskID = parent.ID

	rec := model.StreakData{LastCompletionDate: today.AddDays(-1), CurrentStreak: 1, LongestStreak: 1}
	if _, changed := Evaluate(rec, []model.Task{parent, micro}, today); changed {
		t.Fatal("incomplete micro-task must not rescue the day")
	}
}

func TestEvaluateZeroStreakIncrementsFromAnyGap(t *testing.T) {
	// currentStreak == 0 increments rather than resetting to 1; the result
	// is the same number but exercises the stated rule.
	rec := model.StreakData{LastCompletionDate: today.AddDays(-10)}
	next, changed := Evaluate(rec, []model.Task{task("a", today, true)}, today)
	if !changed || next.CurrentStreak != 1 || next.LongestStreak != 1 {
		t.Fatalf("unexpected record: %#v", next)
	}
}
