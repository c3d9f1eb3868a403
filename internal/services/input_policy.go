package services

import (
	"fmt"
	"net/mail"
	"strings"
	"unicode/utf8"
)

const (
	MaxTitleLength    = 255
	MinutesPerDay     = 1440
	MinUsernameLength = 3
	MinPasswordLength = 6
	// bcrypt refuses longer input.
	MaxPasswordBytes  = 72
)

func checkTitle(validation *ValidationError, title string, location ...string) {
	length := utf8.RuneCountInString(strings.TrimSpace(title))
	if length == 0 {
		validation.Add("title must not be empty", location...)
		return
	}
	if utf8.RuneCountInString(title) > MaxTitleLength {
		validation.Add(fmt.Sprintf("title must be at most %d characters", MaxTitleLength), location...)
	}
}

func checkPassword(validation *ValidationError, password string, location ...string) {
	if utf8.RuneCountInString(password) < MinPasswordLength {
		validation.Add(fmt.Sprintf("password must be at least %d characters", MinPasswordLength), location...)
		return
	}
	if len(password) > MaxPasswordBytes {
		validation.Add(fmt.Sprintf("password must be at most %d bytes", MaxPasswordBytes), location...)
	}
}

func checkRange(validation *ValidationError, value int, minimum int, maximum int, location ...string) {
	if value < minimum || value > maximum {
		validation.Add(fmt.Sprintf("value must be between %d and %d", minimum, maximum), location...)
	}
}

func NormalizeEmail(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

func validEmail(email string) bool {
	if email == "" || strings.ContainsAny(email, " \t\r\n") {
		return false
	}
	parsed, err := mail.ParseAddress(email)
	if err != nil || parsed.Address != email {
		return false
	}
	at := strings.LastIndex(email, "@")
	return at > 0 && strings.Contains(email[at+1:], ".")
}
