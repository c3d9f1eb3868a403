package schedule

import "testing"

type scheduledHabit struct {
	ID uint
}

type habitCompletion struct {
	ID      uint
	HabitID uint
}

type elementKey struct {
	RoutineID uint
	ElementID uint
}

type routineStep struct {
	RoutineID uint
	ID        uint
}

type stepLog struct {
	ID        uint
	RoutineID uint
	ElementID uint
	Skipped   bool
}

func TestAttachAllKeepsEveryLogInInputOrder(t *testing.T) {
	t.Parallel()

	habits := []scheduledHabit{{ID: 1}, {ID: 2}}
	logs := []habitCompletion{
		{ID: 30, HabitID: 1},
		{ID: 20, HabitID: 1},
		{ID: 15, HabitID: 3},
		{ID: 10, HabitID: 1},
	}

	joined := AttachAll(habits, logs,
		func(item scheduledHabit) uint { return item.ID },
		func(entry habitCompletion) uint { return entry.HabitID },
	)

	if len(joined) != 2 {
		t.Fatalf("expected 2 joined habits, got %d", len(joined))
	}
	if len(joined[0].Logs) != 3 {
		t.Fatalf("expected 3 logs for habit 1, got %d", len(joined[0].Logs))
	}
	for index, wantID := range []uint{30, 20, 10} {
		if joined[0].Logs[index].ID != wantID {
			t.Fatalf("log %d: expected id %d, got %d", index, wantID, joined[0].Logs[index].ID)
		}
	}
	if joined[1].Logs == nil || len(joined[1].Logs) != 0 {
		t.Fatalf("expected empty non-nil logs for habit 2, got %#v", joined[1].Logs)
	}
}

func TestAttachFirstPicksFirstMatchPerElement(t *testing.T) {
	t.Parallel()

	steps := []routineStep{{RoutineID: 7, ID: 1}, {RoutineID: 7, ID: 2}, {RoutineID: 8, ID: 1}}
	logs := []stepLog{
		{ID: 100, RoutineID: 7, ElementID: 1, Skipped: true},
		{ID: 101, RoutineID: 7, ElementID: 1, Skipped: false},
		{ID: 102, RoutineID: 8, ElementID: 1},
	}

	joined := AttachFirst(steps, logs,
		func(item routineStep) elementKey { return elementKey{RoutineID: item.RoutineID, ElementID: item.ID} },
		func(entry stepLog) elementKey { return elementKey{RoutineID: entry.RoutineID, ElementID: entry.ElementID} },
	)

	if joined[0].Log == nil || joined[0].Log.ID != 100 || !joined[0].Log.Skipped {
		t.Fatalf("expected first log 100 for element 7/1, got %#v", joined[0].Log)
	}
	if joined[1].Log != nil {
		t.Fatalf("expected no log for element 7/2, got %#v", joined[1].Log)
	}
	if joined[2].Log == nil || joined[2].Log.ID != 102 {
		t.Fatalf("expected log 102 for element 8/1, got %#v", joined[2].Log)
	}
}
