package api

import (
	"errors"
	"time"

	"github.com/charmbracelet/log"
	"github.com/terraincognita07/daymate/internal/services"
	"gorm.io/gorm"
)

const (
	loginAttemptLimit  = 10
	loginAttemptWindow = 15 * time.Minute
)

type Handler struct {
	db           *gorm.DB
	location     *time.Location
	tokens       services.TokenSettings
	cookieSecure bool
	logger       *log.Logger
	now          func() time.Time
	loginLimiter *attemptLimiter
}

type HandlerConfig struct {
	Database     *gorm.DB
	Location     *time.Location
	Tokens       services.TokenSettings
	CookieSecure bool
	Logger       *log.Logger
	// Now overrides the clock. Tests pin it to a known weekday.
	Now func() time.Time
}

func NewHandler(cfg HandlerConfig) (*Handler, error) {
	if cfg.Database == nil {
		return nil, errors.New("database is required")
	}
	if len(cfg.Tokens.Secret) == 0 {
		return nil, errors.New("token secret is required")
	}

	location := cfg.Location
	if location == nil {
		location = time.UTC
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	return &Handler{
		db:           cfg.Database,
		location:     location,
		tokens:       cfg.Tokens,
		cookieSecure: cfg.CookieSecure,
		logger:       logger,
		now:          now,
		loginLimiter: newAttemptLimiter(),
	}, nil
}
