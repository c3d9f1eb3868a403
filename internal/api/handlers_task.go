package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/daymate/internal/services"
)

// GetDailyTasks returns the todos, routines and habits for ?date=YYYY-MM-DD.
func (handler *Handler) GetDailyTasks(c *fiber.Ctx) error {
	user := mustCurrentUser(c)

	var view services.DailyView
	err := handler.inTransaction(c, func(svc *services.Services) error {
		var err error
		view, err = svc.Tasks.DailyView(user.ID, c.Query("date"))
		return err
	})
	if err != nil {
		return handler.respondError(c, err)
	}
	return c.JSON(view)
}
