package cli

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"math/big"
	"strings"

	"github.com/terraincognita07/daymate/internal/db"
	"github.com/terraincognita07/daymate/internal/services"
	"gorm.io/gorm"
)

const (
	temporaryPasswordLength    = 12
	minTemporaryPasswordLength = 8
	temporaryPasswordAlphabet  = "ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz23456789"
)

// RunResetPasswordCommand replaces the password of username. An empty password
// is replaced by a generated temporary one, which is printed to out.
func RunResetPasswordCommand(database *gorm.DB, username string, password string, out io.Writer) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return errors.New("username is required")
	}

	generated := password == ""
	if generated {
		temporary, err := generateTemporaryPassword(temporaryPasswordLength)
		if err != nil {
			return fmt.Errorf("generate temporary password: %w", err)
		}
		password = temporary
	}

	err := database.Transaction(func(tx *gorm.DB) error {
		repos := db.NewRepositories(tx)
		auth := services.NewAuthService(repos.Users, repos.RevokedTokens, services.TokenSettings{})
		return auth.ResetPassword(username, password)
	})
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return fmt.Errorf("user %s not found", username)
		}
		return err
	}

	fmt.Fprintf(out, "Password reset for %s\n", username)
	if generated {
		fmt.Fprintf(out, "Temporary password: %s\n", password)
	}
	return nil
}

// generateTemporaryPassword draws every character uniformly from the
// unambiguous alphabet, so a printed password survives being read aloud.
func generateTemporaryPassword(length int) (string, error) {
	if length < minTemporaryPasswordLength {
		length = minTemporaryPasswordLength
	}

	limit := big.NewInt(int64(len(temporaryPasswordAlphabet)))
	password := make([]byte, length)
	for index := range password {
		position, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", err
		}
		password[index] = temporaryPasswordAlphabet[position.Int64()]
	}
	return string(password), nil
}
