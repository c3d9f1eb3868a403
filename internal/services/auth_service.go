package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/terraincognita07/daymate/internal/db"
	"github.com/terraincognita07/daymate/internal/models"
	"golang.org/x/crypto/bcrypt"
)

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"

	DefaultAccessTokenTTL  = time.Hour
	DefaultRefreshTokenTTL = 30 * 24 * time.Hour
)

type AuthUserRepository interface {
	FindByID(userID uint) (models.User, error)
	FindByUsername(username string) (models.User, error)
	ExistsByUsername(username string) (bool, error)
	ExistsByNormalizedEmail(email string, excludeUserID uint) (bool, error)
	Create(user *models.User) error
	Save(user *models.User) error
}

type RevokedTokenRepository interface {
	Revoke(token *models.RevokedToken) error
	IsRevoked(tokenID string) (bool, error)
	PurgeExpired(now time.Time) (int64, error)
}

type TokenClaims struct {
	UserID uint   `json:"uid"`
	Type   string `json:"type"`
	jwt.RegisteredClaims
}

type TokenPair struct {
	AccessToken      string
	RefreshToken     string
	RefreshExpiresAt time.Time
}

type TokenSettings struct {
	Secret     []byte
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

type SignupInput struct {
	Username        string
	Password        string
	PasswordConfirm string
	Email           string
	Nickname        string
}

type AuthService struct {
	users    AuthUserRepository
	revoked  RevokedTokenRepository
	settings TokenSettings
}

func NewAuthService(users AuthUserRepository, revoked RevokedTokenRepository, settings TokenSettings) *AuthService {
	if settings.AccessTTL <= 0 {
		settings.AccessTTL = DefaultAccessTokenTTL
	}
	if settings.RefreshTTL <= 0 {
		settings.RefreshTTL = DefaultRefreshTokenTTL
	}
	return &AuthService{users: users, revoked: revoked, settings: settings}
}

func (service *AuthService) Signup(input SignupInput) (models.User, error) {
	username := strings.TrimSpace(input.Username)
	email := NormalizeEmail(input.Email)
	nickname := strings.TrimSpace(input.Nickname)
	if nickname == "" {
		nickname = username
	}

	validation := &ValidationError{}
	if len([]rune(username)) < MinUsernameLength {
		validation.Add(fmt.Sprintf("username must be at least %d characters", MinUsernameLength), "body", "username")
	}
	checkPassword(validation, input.Password, "body", "password")
	if input.Password != input.PasswordConfirm {
		validation.Add("passwords do not match", "body", "password_confirm")
	}
	if !validEmail(email) {
		validation.Add("email is not valid", "body", "email")
	}
	if err := validation.OrNil(); err != nil {
		return models.User{}, err
	}

	usernameTaken, err := service.users.ExistsByUsername(username)
	if err != nil {
		return models.User{}, fmt.Errorf("check username: %w", err)
	}
	if usernameTaken {
		return models.User{}, ErrUsernameTaken
	}
	emailTaken, err := service.users.ExistsByNormalizedEmail(email, 0)
	if err != nil {
		return models.User{}, fmt.Errorf("check email: %w", err)
	}
	if emailTaken {
		return models.User{}, ErrEmailTaken
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		Username:     username,
		Email:        email,
		Nickname:     nickname,
		PasswordHash: string(passwordHash),
	}
	if err := service.users.Create(&user); err != nil {
		if db.IsUniqueViolation(err) {
			return models.User{}, ErrUsernameTaken
		}
		return models.User{}, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

func (service *AuthService) Authenticate(username string, password string) (models.User, error) {
	user, err := service.users.FindByUsername(strings.TrimSpace(username))
	if err != nil {
		if db.IsNotFound(err) {
			return models.User{}, ErrInvalidCredentials
		}
		return models.User{}, fmt.Errorf("load user: %w", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return models.User{}, ErrInvalidCredentials
	}
	return user, nil
}

func (service *AuthService) IssueTokens(user models.User, now time.Time) (TokenPair, error) {
	access, _, err := service.signToken(user.ID, TokenTypeAccess, service.settings.AccessTTL, now)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, refreshExpiresAt, err := service.signToken(user.ID, TokenTypeRefresh, service.settings.RefreshTTL, now)
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{AccessToken: access, RefreshToken: refresh, RefreshExpiresAt: refreshExpiresAt}, nil
}

func (service *AuthService) IssueAccessToken(user models.User, now time.Time) (string, error) {
	token, _, err := service.signToken(user.ID, TokenTypeAccess, service.settings.AccessTTL, now)
	return token, err
}

func (service *AuthService) signToken(userID uint, tokenType string, ttl time.Duration, now time.Time) (string, time.Time, error) {
	expiresAt := now.Add(ttl)
	claims := TokenClaims{
		UserID: userID,
		Type:   tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   fmt.Sprintf("%d", userID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(service.settings.Secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign %s token: %w", tokenType, err)
	}
	return signed, expiresAt, nil
}

// ParseToken verifies signature, expiry and type. Refresh tokens are also checked against revocations.
func (service *AuthService) ParseToken(raw string, expectedType string, now time.Time) (TokenClaims, error) {
	claims := TokenClaims{}
	token, err := jwt.ParseWithClaims(strings.TrimSpace(raw), &claims, func(token *jwt.Token) (any, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return service.settings.Secret, nil
	}, jwt.WithTimeFunc(func() time.Time { return now }), jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		return TokenClaims{}, ErrInvalidToken
	}
	if claims.Type != expectedType || claims.UserID == 0 {
		return TokenClaims{}, ErrInvalidToken
	}

	if expectedType == TokenTypeRefresh {
		revoked, err := service.revoked.IsRevoked(claims.ID)
		if err != nil {
			return TokenClaims{}, fmt.Errorf("check revoked token: %w", err)
		}
		if revoked {
			return TokenClaims{}, ErrInvalidToken
		}
	}
	return claims, nil
}

// UserFromToken resolves the user behind a valid token of the expected type.
func (service *AuthService) UserFromToken(raw string, expectedType string, now time.Time) (models.User, error) {
	claims, err := service.ParseToken(raw, expectedType, now)
	if err != nil {
		return models.User{}, err
	}
	user, err := service.users.FindByID(claims.UserID)
	if err != nil {
		if db.IsNotFound(err) {
			return models.User{}, ErrInvalidToken
		}
		return models.User{}, fmt.Errorf("load token user: %w", err)
	}
	return user, nil
}

// Revoke blocks a refresh token until its expiry. Invalid tokens are ignored so logout is idempotent.
func (service *AuthService) Revoke(rawRefresh string, now time.Time) error {
	claims, err := service.ParseToken(rawRefresh, TokenTypeRefresh, now)
	if err != nil {
		if errors.Is(err, ErrInvalidToken) {
			return nil
		}
		return err
	}

	if _, err := service.revoked.PurgeExpired(now); err != nil {
		return fmt.Errorf("purge revoked tokens: %w", err)
	}
	entry := models.RevokedToken{
		ID:        claims.ID,
		UserID:    claims.UserID,
		ExpiresAt: claims.ExpiresAt.Time.UTC(),
	}
	if err := service.revoked.Revoke(&entry); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

func (service *AuthService) ResetPassword(username string, newPassword string) error {
	validation := &ValidationError{}
	checkPassword(validation, newPassword, "password")
	if err := validation.OrNil(); err != nil {
		return err
	}

	user, err := service.users.FindByUsername(strings.TrimSpace(username))
	if err != nil {
		if db.IsNotFound(err) {
			return fmt.Errorf("%w: user %q", ErrNotFound, username)
		}
		return fmt.Errorf("load user: %w", err)
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	user.PasswordHash = string(passwordHash)
	if err := service.users.Save(&user); err != nil {
		return fmt.Errorf("save user: %w", err)
	}
	return nil
}
