package services

import (
	"errors"
	"testing"
	"time"

	"github.com/terraincognita07/daymate/internal/schedule"
)

func TestRoutineCreateAssignsElementOrder(t *testing.T) {
	repos, user := newServiceTestRepositories(t)
	service := NewRoutineService(repos.Routines, time.UTC)

	view := createMorningRoutine(t, service, user.ID, "Stretch", "Shower", "Coffee")
	if len(view.RoutineElements) != 3 {
		t.Fatalf("expected 3 elements, got %d", len(view.RoutineElements))
	}
	for index, element := range view.RoutineElements {
		if element.Order != index+1 {
			t.Fatalf("element %d: expected order %d, got %d", index, index+1, element.Order)
		}
		if element.CompletedAt != nil || element.IsSkipped {
			t.Fatalf("expected no completion on a fresh element, got %#v", element)
		}
	}
	if got := view.RepeatDays.Ints(); len(got) != 5 || got[0] != 0 || got[4] != 4 {
		t.Fatalf("unexpected repeat days %v", got)
	}
}

func TestRoutineCreateRejectsInvalidInput(t *testing.T) {
	repos, user := newServiceTestRepositories(t)
	service := NewRoutineService(repos.Routines, time.UTC)

	_, err := service.Create(user.ID, RoutineInput{
		Title:            "",
		StartTimeMinutes: 1440,
		RepeatDays:       []int{1, 1},
	}, testMonday)

	var validation *ValidationError
	if !errors.As(err, &validation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(validation.Errors) != 3 {
		t.Fatalf("expected 3 field errors, got %#v", validation.Errors)
	}
}

func TestRoutineUpdateDiffsElements(t *testing.T) {
	repos, user := newServiceTestRepositories(t)
	service := NewRoutineService(repos.Routines, time.UTC)
	created := createMorningRoutine(t, service, user.ID, "A", "B")

	first := created.RoutineElements[0].ID
	second := created.RoutineElements[1].ID
	updates := []schedule.ElementUpdate{
		{ID: uintPointer(first), Title: stringPointer("X")},
		{Title: stringPointer("new"), DurationMinutes: intPointer(5)},
	}

	updated, err := service.Update(user.ID, created.ID, RoutinePatch{Elements: &updates}, testMonday)
	if err != nil {
		t.Fatalf("update routine: %v", err)
	}
	if len(updated.RoutineElements) != 2 {
		t.Fatalf("expected exactly 2 elements, got %d", len(updated.RoutineElements))
	}
	if updated.RoutineElements[0].ID != first || updated.RoutineElements[0].Title != "X" {
		t.Fatalf("expected element %d retitled X, got %#v", first, updated.RoutineElements[0])
	}
	if updated.RoutineElements[1].Title != "new" || updated.RoutineElements[1].ID == second {
		t.Fatalf("expected a newly created element, got %#v", updated.RoutineElements[1])
	}
	if updated.Title != "Morning" || updated.StartTimeMinutes != 480 {
		t.Fatalf("expected omitted fields to keep their values, got %q %d", updated.Title, updated.StartTimeMinutes)
	}
}

func TestRoutineUpdateWithEmptyElementsDeletesAll(t *testing.T) {
	repos, user := newServiceTestRepositories(t)
	service := NewRoutineService(repos.Routines, time.UTC)
	created := createMorningRoutine(t, service, user.ID, "A", "B", "C")

	empty := []schedule.ElementUpdate{}
	updated, err := service.Update(user.ID, created.ID, RoutinePatch{Elements: &empty}, testMonday)
	if err != nil {
		t.Fatalf("update routine: %v", err)
	}
	if len(updated.RoutineElements) != 0 {
		t.Fatalf("expected all elements deleted, got %d", len(updated.RoutineElements))
	}
}

func TestRoutineUpdateWithoutElementsKeepsThem(t *testing.T) {
	repos, user := newServiceTestRepositories(t)
	service := NewRoutineService(repos.Routines, time.UTC)
	created := createMorningRoutine(t, service, user.ID, "A", "B")

	updated, err := service.Update(user.ID, created.ID, RoutinePatch{Title: stringPointer("Evening")}, testMonday)
	if err != nil {
		t.Fatalf("update routine: %v", err)
	}
	if updated.Title != "Evening" || len(updated.RoutineElements) != 2 {
		t.Fatalf("expected retitled routine with 2 elements, got %q with %d", updated.Title, len(updated.RoutineElements))
	}
}

func TestRoutineUpdateRejectsForeignElement(t *testing.T) {
	repos, user := newServiceTestRepositories(t)
	service := NewRoutineService(repos.Routines, time.UTC)
	mine := createMorningRoutine(t, service, user.ID, "A")
	other := createMorningRoutine(t, service, user.ID, "B")

	updates := []schedule.ElementUpdate{{ID: uintPointer(other.RoutineElements[0].ID), Title: stringPointer("stolen")}}
	_, err := service.Update(user.ID, mine.ID, RoutinePatch{Elements: &updates}, testMonday)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRoutineLookupsAreOwnerScoped(t *testing.T) {
	repos, user := newServiceTestRepositories(t)
	stranger := createServiceTestUser(t, repos, "stranger")
	service := NewRoutineService(repos.Routines, time.UTC)
	created := createMorningRoutine(t, service, user.ID, "A")

	if _, err := service.Get(stranger.ID, created.ID, testMonday); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for foreign routine, got %v", err)
	}
	if err := service.Delete(stranger.ID, created.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound deleting foreign routine, got %v", err)
	}
	if err := service.RecordLogs(stranger.ID, created.ID, nil, testMonday); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound logging foreign routine, got %v", err)
	}
}

func TestRoutineRecordLogsOverwritesSameDay(t *testing.T) {
	repos, user := newServiceTestRepositories(t)
	service := NewRoutineService(repos.Routines, time.UTC)
	created := createMorningRoutine(t, service, user.ID, "A", "B")
	elementID := created.RoutineElements[0].ID

	morning := testMonday.Add(8 * time.Hour)
	if err := service.RecordLogs(user.ID, created.ID, []RoutineLogEntry{{ElementID: elementID, DurationMinutes: 3, IsSkipped: true}}, morning); err != nil {
		t.Fatalf("first record: %v", err)
	}
	later := morning.Add(time.Hour)
	if err := service.RecordLogs(user.ID, created.ID, []RoutineLogEntry{{ElementID: elementID, DurationMinutes: 7}}, later); err != nil {
		t.Fatalf("second record: %v", err)
	}

	start, end := DayRange(morning, time.UTC)
	logs, err := repos.Routines.LogsForDay(user.ID, []uint{created.ID}, start, end)
	if err != nil {
		t.Fatalf("load logs: %v", err)
	}
	if len(logs) != 1 {
		t.Fatalf("expected a single log for the day, got %d", len(logs))
	}
	if logs[0].IsSkipped || logs[0].DurationSeconds != 420 {
		t.Fatalf("expected overwritten log (not skipped, 420s), got %#v", logs[0])
	}

	view, err := service.Get(user.ID, created.ID, later)
	if err != nil {
		t.Fatalf("get routine: %v", err)
	}
	if view.RoutineElements[0].CompletedDurationSeconds == nil || *view.RoutineElements[0].CompletedDurationSeconds != 420 {
		t.Fatalf("expected completed duration 420, got %#v", view.RoutineElements[0])
	}
	if view.RoutineElements[1].CompletedAt != nil {
		t.Fatalf("expected unlogged element to stay empty, got %#v", view.RoutineElements[1])
	}
}

func TestRoutineRecordLogsRejectsUnknownElement(t *testing.T) {
	repos, user := newServiceTestRepositories(t)
	service := NewRoutineService(repos.Routines, time.UTC)
	created := createMorningRoutine(t, service, user.ID, "A")

	err := service.RecordLogs(user.ID, created.ID, []RoutineLogEntry{{ElementID: 9999}}, testMonday)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRoutineListDeletedReturnsSoftDeletedOnly(t *testing.T) {
	repos, user := newServiceTestRepositories(t)
	service := NewRoutineService(repos.Routines, time.UTC)
	kept := createMorningRoutine(t, service, user.ID, "A")
	removed := createMorningRoutine(t, service, user.ID, "B")

	if err := service.Delete(user.ID, removed.ID); err != nil {
		t.Fatalf("delete routine: %v", err)
	}

	live, err := service.List(user.ID, false, testMonday)
	if err != nil {
		t.Fatalf("list live: %v", err)
	}
	if len(live) != 1 || live[0].ID != kept.ID {
		t.Fatalf("expected only kept routine, got %#v", live)
	}

	deleted, err := service.List(user.ID, true, testMonday)
	if err != nil {
		t.Fatalf("list deleted: %v", err)
	}
	if len(deleted) != 1 || deleted[0].ID != removed.ID || deleted[0].DeletedAt == nil {
		t.Fatalf("expected only removed routine with deleted_at, got %#v", deleted)
	}
	if len(deleted[0].RoutineElements) != 1 {
		t.Fatalf("expected deleted routine to keep its elements, got %d", len(deleted[0].RoutineElements))
	}
}
