package api

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/terraincognita07/daymate/internal/db"
	"github.com/terraincognita07/daymate/internal/services"
	"gorm.io/gorm"
)

// 2026-10-12 is a Monday; 2026-10-17 is a Saturday.
var (
	testMondayMorning   = time.Date(2026, 10, 12, 7, 30, 0, 0, time.UTC)
	testSaturdayMorning = time.Date(2026, 10, 17, 7, 30, 0, 0, time.UTC)
)

const testPassword = "sunrise1"

func newTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	return newTestAppAt(t, func() time.Time { return testMondayMorning })
}

func newTestAppAt(t *testing.T, now func() time.Time) (*fiber.App, *gorm.DB) {
	t.Helper()

	database, err := db.OpenSQLite(filepath.Join(t.TempDir(), "daymate-api-test.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close(database)
	})

	handler, err := NewHandler(HandlerConfig{
		Database: database,
		Location: time.UTC,
		Tokens:   services.TokenSettings{Secret: []byte(strings.Repeat("s", 32))},
		Logger:   log.New(testLogWriter{t: t}),
		Now:      now,
	})
	if err != nil {
		t.Fatalf("init handler: %v", err)
	}

	app := fiber.New(fiber.Config{ErrorHandler: handler.ErrorHandler})
	app.Use(recover.New())
	RegisterRoutes(app, handler)
	app.Use(handler.NotFound)
	return app, database
}

type testLogWriter struct {
	t *testing.T
}

func (writer testLogWriter) Write(p []byte) (int, error) {
	writer.t.Log(strings.TrimRight(string(p), "\n"))
	return len(p), nil
}
