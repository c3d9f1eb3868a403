package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/terraincognita07/daymate/internal/db"
	"github.com/terraincognita07/daymate/internal/models"
	"github.com/terraincognita07/daymate/internal/services"
	"gorm.io/gorm"
)

func TestGenerateTemporaryPasswordMinimumLength(t *testing.T) {
	t.Parallel()

	password, err := generateTemporaryPassword(4)
	if err != nil {
		t.Fatalf("generateTemporaryPassword returned error: %v", err)
	}
	if len(password) != minTemporaryPasswordLength {
		t.Fatalf("generateTemporaryPassword minimum len = %d, want %d", len(password), minTemporaryPasswordLength)
	}
}

func TestGenerateTemporaryPasswordAlphabet(t *testing.T) {
	t.Parallel()

	password, err := generateTemporaryPassword(24)
	if err != nil {
		t.Fatalf("generateTemporaryPassword returned error: %v", err)
	}
	if len(password) != 24 {
		t.Fatalf("generateTemporaryPassword len = %d, want 24", len(password))
	}

	for _, char := range password {
		if !strings.ContainsRune(temporaryPasswordAlphabet, char) {
			t.Fatalf("password %q contains char %q outside alphabet", password, char)
		}
	}
}

func TestGenerateTemporaryPasswordVaries(t *testing.T) {
	t.Parallel()

	seen := make(map[string]struct{}, 16)
	for range 16 {
		password, err := generateTemporaryPassword(temporaryPasswordLength)
		if err != nil {
			t.Fatalf("generateTemporaryPassword returned error: %v", err)
		}
		seen[password] = struct{}{}
	}
	if len(seen) < 16 {
		t.Fatalf("expected 16 distinct passwords, got %d", len(seen))
	}
}

func TestRunResetPasswordCommandGeneratesTemporaryPassword(t *testing.T) {
	t.Parallel()

	database := newResetTestDatabase(t)

	var out bytes.Buffer
	if err := RunResetPasswordCommand(database, " early-bird ", "", &out); err != nil {
		t.Fatalf("reset password: %v", err)
	}

	output := out.String()
	prefix := "Temporary password: "
	index := strings.Index(output, prefix)
	if index < 0 {
		t.Fatalf("expected temporary password in output, got %q", output)
	}
	temporary := strings.TrimSpace(output[index+len(prefix):])
	if len(temporary) != temporaryPasswordLength {
		t.Fatalf("temporary password len = %d, want %d", len(temporary), temporaryPasswordLength)
	}

	assertResetPasswordWorks(t, database, temporary)
}

func TestRunResetPasswordCommandUsesGivenPassword(t *testing.T) {
	t.Parallel()

	database := newResetTestDatabase(t)

	var out bytes.Buffer
	if err := RunResetPasswordCommand(database, "early-bird", "chosen-secret", &out); err != nil {
		t.Fatalf("reset password: %v", err)
	}
	if strings.Contains(out.String(), "Temporary password") {
		t.Fatalf("did not expect a temporary password in output, got %q", out.String())
	}
	assertResetPasswordWorks(t, database, "chosen-secret")
}

func TestRunResetPasswordCommandErrors(t *testing.T) {
	t.Parallel()

	database := newResetTestDatabase(t)

	tests := []struct {
		name     string
		username string
		password string
		want     string
	}{
		{name: "missing username", username: "  ", want: "username is required"},
		{name: "unknown user", username: "night-owl", want: "user night-owl not found"},
		{name: "short password", username: "early-bird", password: "abc", want: "password must be at least"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := RunResetPasswordCommand(database, tc.username, tc.password, &bytes.Buffer{})
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("error = %q, want it to contain %q", err.Error(), tc.want)
			}
		})
	}
}

func TestPromptNewPasswordRequiresTerminal(t *testing.T) {
	t.Parallel()

	file, err := os.CreateTemp(t.TempDir(), "stdin")
	if err != nil {
		t.Fatalf("create temp file: %v", err)
	}
	t.Cleanup(func() {
		_ = file.Close()
	})

	if _, err := PromptNewPassword(file, &bytes.Buffer{}); err == nil {
		t.Fatal("expected error when stdin is not a terminal")
	}
	if _, err := PromptNewPassword(nil, &bytes.Buffer{}); err == nil {
		t.Fatal("expected error for nil stdin")
	}
}

func TestReadLineTrimsLineEnding(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  string
	}{
		{input: "secret\n", want: "secret"},
		{input: "secret\r\n", want: "secret"},
		{input: "no-newline", want: "no-newline"},
		{input: "", want: ""},
	}
	for _, tc := range tests {
		got, err := readLine(strings.NewReader(tc.input))
		if err != nil {
			t.Fatalf("readLine(%q) returned error: %v", tc.input, err)
		}
		if got != tc.want {
			t.Fatalf("readLine(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

func newResetTestDatabase(t *testing.T) *gorm.DB {
	t.Helper()

	database, err := db.OpenSQLite(filepath.Join(t.TempDir(), "daymate-cli.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close(database)
	})

	user := models.User{Username: "early-bird", Email: "early-bird@example.com", Nickname: "Bird", PasswordHash: "hash"}
	if err := database.Create(&user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return database
}

func assertResetPasswordWorks(t *testing.T, database *gorm.DB, password string) {
	t.Helper()

	repos := db.NewRepositories(database)
	auth := services.NewAuthService(repos.Users, repos.RevokedTokens, services.TokenSettings{})
	if _, err := auth.Authenticate("early-bird", password); err != nil {
		t.Fatalf("authenticate with reset password: %v", err)
	}
}
