package services

import (
	"errors"
	"strings"
)

// Error kinds. The HTTP layer maps each kind to a status code with errors.Is.
var (
	ErrNotFound     = errors.New("data does not exist")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
)

// Specific failures keep a client-safe message and unwrap to their kind.
var (
	ErrUsernameTaken      = &DomainError{Kind: ErrConflict, Message: "username already exists"}
	ErrEmailTaken         = &DomainError{Kind: ErrConflict, Message: "email already exists"}
	ErrInvalidCredentials = &DomainError{Kind: ErrUnauthorized, Message: "invalid credentials"}
	ErrInvalidToken       = &DomainError{Kind: ErrUnauthorized, Message: "could not validate credentials"}
	ErrUsernameImmutable  = &DomainError{Kind: ErrForbidden, Message: "username cannot be changed"}
)

type DomainError struct {
	Kind    error
	Message string
}

func (err *DomainError) Error() string {
	return err.Message
}

func (err *DomainError) Unwrap() error {
	return err.Kind
}

// PublicMessage returns the text that may be shown to a client for err.
// Context added by wrapping is dropped.
func PublicMessage(err error) string {
	var domain *DomainError
	if errors.As(err, &domain) {
		return domain.Message
	}
	for _, kind := range []error{ErrNotFound, ErrConflict, ErrUnauthorized, ErrForbidden} {
		if errors.Is(err, kind) {
			return kind.Error()
		}
	}
	return ""
}

type FieldError struct {
	Location []string `json:"location"`
	Message  string   `json:"message"`
}

// ValidationError collects every invalid field of one request.
type ValidationError struct {
	Errors []FieldError
}

func (err *ValidationError) Error() string {
	if err == nil || len(err.Errors) == 0 {
		return "validation failed"
	}
	parts := make([]string, 0, len(err.Errors))
	for _, field := range err.Errors {
		parts = append(parts, strings.Join(field.Location, ".")+": "+field.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (err *ValidationError) Add(message string, location ...string) {
	err.Errors = append(err.Errors, FieldError{Location: location, Message: message})
}

// OrNil returns nil when nothing was added, so callers can `return v.OrNil()`.
func (err *ValidationError) OrNil() error {
	if err == nil || len(err.Errors) == 0 {
		return nil
	}
	return err
}

func NewValidationError(message string, location ...string) *ValidationError {
	validation := &ValidationError{}
	validation.Add(message, location...)
	return validation
}
