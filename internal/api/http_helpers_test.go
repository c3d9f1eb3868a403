package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/terraincognita07/daymate/internal/services"
)

func TestBearerToken(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		header string
		want   string
		ok     bool
	}{
		{name: "empty", header: ""},
		{name: "scheme only", header: "Bearer"},
		{name: "other scheme", header: "Basic dXNlcjpwYXNz"},
		{name: "bearer", header: "Bearer abc.def", want: "abc.def", ok: true},
		{name: "lowercase scheme", header: "bearer abc.def", want: "abc.def", ok: true},
		{name: "extra spaces", header: "  Bearer   abc.def  ", want: "abc.def", ok: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := bearerToken(tt.header)
			if got != tt.want || ok != tt.ok {
				t.Fatalf("bearerToken(%q) = %q, %v; want %q, %v", tt.header, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestRespondErrorMapsDomainErrors(t *testing.T) {
	t.Parallel()

	handler := &Handler{logger: log.New(testLogWriter{t: t})}

	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{name: "not found", err: fmt.Errorf("%w: habit 3", services.ErrNotFound), status: http.StatusNotFound, message: "data does not exist"},
		{name: "conflict", err: services.ErrEmailTaken, status: http.StatusConflict, message: "email already exists"},
		{name: "unauthorized", err: services.ErrInvalidToken, status: http.StatusUnauthorized, message: "could not validate credentials"},
		{name: "forbidden", err: services.ErrUsernameImmutable, status: http.StatusForbidden, message: "username cannot be changed"},
		{name: "validation", err: services.NewValidationError("bad", "body", "title"), status: http.StatusUnprocessableEntity, message: "Validation Error"},
		{name: "rate limit", err: errTooManyLoginAttempts, status: http.StatusTooManyRequests, message: "too many login attempts"},
		{name: "internal", err: errors.New("connection reset"), status: http.StatusInternalServerError, message: internalErrorMessage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/", func(c *fiber.Ctx) error {
				return handler.respondError(c, tt.err)
			})

			response := sendRequest(t, app, httptest.NewRequest(http.MethodGet, "/", nil))
			expectStatus(t, response, tt.status)
			if message := readAPIError(t, response).Message; message != tt.message {
				t.Fatalf("expected message %q, got %q", tt.message, message)
			}
		})
	}
}

func TestRecoveredPanicBecomesInternalError(t *testing.T) {
	t.Parallel()

	handler := &Handler{logger: log.New(testLogWriter{t: t})}
	app := fiber.New(fiber.Config{ErrorHandler: handler.ErrorHandler})
	app.Use(recover.New())
	app.Get("/panic", func(c *fiber.Ctx) error {
		panic("boom")
	})

	response := doJSON(t, app, http.MethodGet, "/panic", "", nil)
	expectStatus(t, response, http.StatusInternalServerError)
	if message := readAPIError(t, response).Message; message != internalErrorMessage {
		t.Fatalf("expected generic message, got %q", message)
	}
}
