package api

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/daymate/internal/models"
	"github.com/terraincognita07/daymate/internal/services"
)

type tokenResponse struct {
	AccessToken string             `json:"access_token"`
	TokenType   string             `json:"token_type"`
	User        *services.UserView `json:"user,omitempty"`
}

func (handler *Handler) Signup(c *fiber.Ctx) error {
	payload := signupInput{}
	if err := parseBody(c, &payload); err != nil {
		return handler.respondError(c, err)
	}

	var view services.UserView
	err := handler.inTransaction(c, func(svc *services.Services) error {
		user, err := svc.Auth.Signup(payload.input())
		if err != nil {
			return err
		}
		view, err = svc.Users.Me(user.ID)
		return err
	})
	if err != nil {
		return handler.respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(view)
}

func (handler *Handler) Login(c *fiber.Ctx) error {
	payload := credentialsInput{}
	if err := parseBody(c, &payload); err != nil {
		return handler.respondError(c, err)
	}

	now := handler.now()
	limiterKey := loginLimiterKey(c, payload.Username)
	if handler.loginLimiter.tooManyRecent(limiterKey, now, loginAttemptLimit, loginAttemptWindow) {
		return handler.respondError(c, errTooManyLoginAttempts)
	}

	var (
		pair services.TokenPair
		view services.UserView
	)
	err := handler.inTransaction(c, func(svc *services.Services) error {
		user, err := svc.Auth.Authenticate(payload.Username, payload.Password)
		if err != nil {
			return err
		}
		if pair, err = svc.Auth.IssueTokens(user, now); err != nil {
			return err
		}
		view, err = svc.Users.Me(user.ID)
		return err
	})
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			handler.loginLimiter.addFailure(limiterKey, now, loginAttemptWindow)
		}
		return handler.respondError(c, err)
	}

	handler.loginLimiter.reset(limiterKey)
	handler.setRefreshCookie(c, pair.RefreshToken, pair.RefreshExpiresAt)
	return c.JSON(tokenResponse{AccessToken: pair.AccessToken, TokenType: "bearer", User: &view})
}

// Refresh trades the refresh cookie for a new access token. A rejected cookie is cleared.
func (handler *Handler) Refresh(c *fiber.Ctx) error {
	includeUser, err := queryFlag(c, "include_user_info")
	if err != nil {
		return handler.respondError(c, err)
	}

	rawToken := strings.TrimSpace(c.Cookies(refreshCookieName))
	if rawToken == "" {
		return handler.respondError(c, services.ErrInvalidToken)
	}

	response := tokenResponse{TokenType: "bearer"}
	err = handler.inTransaction(c, func(svc *services.Services) error {
		user, err := svc.Auth.UserFromToken(rawToken, services.TokenTypeRefresh, handler.now())
		if err != nil {
			return err
		}
		if response.AccessToken, err = svc.Auth.IssueAccessToken(user, handler.now()); err != nil {
			return err
		}
		if includeUser {
			view, err := svc.Users.Me(user.ID)
			if err != nil {
				return err
			}
			response.User = &view
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, services.ErrUnauthorized) {
			handler.clearRefreshCookie(c)
		}
		return handler.respondError(c, err)
	}
	return c.JSON(response)
}

func (handler *Handler) Logout(c *fiber.Ctx) error {
	rawToken := strings.TrimSpace(c.Cookies(refreshCookieName))
	if rawToken != "" {
		err := handler.inTransaction(c, func(svc *services.Services) error {
			return svc.Auth.Revoke(rawToken, handler.now())
		})
		if err != nil {
			return handler.respondError(c, err)
		}
	}

	handler.clearRefreshCookie(c)
	return c.SendStatus(fiber.StatusNoContent)
}

func (handler *Handler) GetMe(c *fiber.Ctx) error {
	user := mustCurrentUser(c)
	var view services.UserView
	err := handler.inTransaction(c, func(svc *services.Services) error {
		var err error
		view, err = svc.Users.Me(user.ID)
		return err
	})
	if err != nil {
		return handler.respondError(c, err)
	}
	return c.JSON(view)
}

func (handler *Handler) UpdateMe(c *fiber.Ctx) error {
	user := mustCurrentUser(c)
	payload := updateMeInput{}
	if err := parseBody(c, &payload); err != nil {
		return handler.respondError(c, err)
	}

	var view services.UserView
	err := handler.inTransaction(c, func(svc *services.Services) error {
		var err error
		view, err = svc.Users.UpdateProfile(user.ID, services.UpdateProfileInput{
			Username: payload.Username,
			Password: payload.Password,
			Email:    payload.Email,
			Nickname: payload.Nickname,
		})
		return err
	})
	if err != nil {
		return handler.respondError(c, err)
	}
	return c.JSON(view)
}

// mustCurrentUser is only called behind AuthRequired.
func mustCurrentUser(c *fiber.Ctx) *models.User {
	user, ok := currentUser(c)
	if !ok || user == nil {
		panic("api: handler registered without AuthRequired")
	}
	return user
}
