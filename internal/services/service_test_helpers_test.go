package services

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/terraincognita07/daymate/internal/db"
	"github.com/terraincognita07/daymate/internal/models"
)

// 2026-10-12 is a Monday.
var testMonday = time.Date(2026, 10, 12, 0, 0, 0, 0, time.UTC)

func newServiceTestRepositories(t *testing.T) (*db.Repositories, models.User) {
	t.Helper()

	database, err := db.OpenSQLite(filepath.Join(t.TempDir(), "daymate-services.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close(database)
	})

	repos := db.NewRepositories(database)
	return repos, createServiceTestUser(t, repos, "planner")
}

func createServiceTestUser(t *testing.T, repos *db.Repositories, username string) models.User {
	t.Helper()

	user := models.User{Username: username, Email: username + "@example.com", Nickname: username, PasswordHash: "hash"}
	if err := repos.Users.Create(&user); err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func createMorningRoutine(t *testing.T, service *RoutineService, userID uint, elementTitles ...string) RoutineView {
	t.Helper()

	elements := make([]RoutineElementInput, 0, len(elementTitles))
	for _, title := range elementTitles {
		elements = append(elements, RoutineElementInput{Title: title, DurationMinutes: 10})
	}
	view, err := service.Create(userID, RoutineInput{
		Title:            "Morning",
		StartTimeMinutes: 480,
		RepeatDays:       []int{0, 1, 2, 3, 4},
		Elements:         elements,
	}, testMonday.Add(7*time.Hour))
	if err != nil {
		t.Fatalf("create routine: %v", err)
	}
	return view
}

func uintPointer(value uint) *uint       { return &value }
func intPointer(value int) *int          { return &value }
func stringPointer(value string) *string { return &value }
func boolPointer(value bool) *bool       { return &value }
