package api

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/daymate/internal/models"
	"github.com/terraincognita07/daymate/internal/services"
)

func (handler *Handler) authenticateRequest(c *fiber.Ctx) (*models.User, error) {
	rawToken, ok := bearerToken(c.Get(fiber.HeaderAuthorization))
	if !ok {
		return nil, services.ErrInvalidToken
	}

	var user models.User
	err := handler.inTransaction(c, func(svc *services.Services) error {
		var err error
		user, err = svc.Auth.UserFromToken(rawToken, services.TokenTypeAccess, handler.now())
		return err
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
