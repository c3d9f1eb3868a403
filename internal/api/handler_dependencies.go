package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/daymate/internal/db"
	"github.com/terraincognita07/daymate/internal/services"
	"gorm.io/gorm"
)

// inTransaction runs fn with services bound to one transaction for this request.
// Any error returned by fn rolls the transaction back, domain errors included.
func (handler *Handler) inTransaction(c *fiber.Ctx, fn func(svc *services.Services) error) error {
	return handler.db.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		return fn(services.New(db.NewRepositories(tx), handler.location, handler.tokens))
	})
}
