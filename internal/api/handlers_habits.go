package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/daymate/internal/services"
)

func (handler *Handler) ListHabits(c *fiber.Ctx) error {
	user := mustCurrentUser(c)
	params := services.HabitListParams{LogTargetDate: c.Query("log_target_date")}

	var err error
	if params.Limit, err = queryInt(c, "limit"); err != nil {
		return handler.respondError(c, err)
	}
	if params.LastID, err = queryInt(c, "last_id"); err != nil {
		return handler.respondError(c, err)
	}
	if params.Activated, err = queryBool(c, "activated"); err != nil {
		return handler.respondError(c, err)
	}
	if params.Deleted, err = queryFlag(c, "deleted"); err != nil {
		return handler.respondError(c, err)
	}

	var views []services.HabitWithLogsView
	err = handler.inTransaction(c, func(svc *services.Services) error {
		views, err = svc.Habits.List(user.ID, params, handler.now())
		return err
	})
	if err != nil {
		return handler.respondError(c, err)
	}
	return c.JSON(views)
}

func (handler *Handler) CreateHabit(c *fiber.Ctx) error {
	user := mustCurrentUser(c)
	payload := habitPayload{}
	if err := parseBody(c, &payload); err != nil {
		return handler.respondError(c, err)
	}

	var view services.HabitView
	err := handler.inTransaction(c, func(svc *services.Services) error {
		var err error
		view, err = svc.Habits.Create(user.ID, payload.input())
		return err
	})
	if err != nil {
		return handler.respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(view)
}

func (handler *Handler) UpdateHabit(c *fiber.Ctx) error {
	user := mustCurrentUser(c)
	habitID, err := parseIDParam(c, "id")
	if err != nil {
		return handler.respondError(c, err)
	}
	payload := habitPayload{}
	if err := parseBody(c, &payload); err != nil {
		return handler.respondError(c, err)
	}

	var view services.HabitView
	err = handler.inTransaction(c, func(svc *services.Services) error {
		view, err = svc.Habits.Update(user.ID, habitID, payload.input())
		return err
	})
	if err != nil {
		return handler.respondError(c, err)
	}
	return c.JSON(view)
}

func (handler *Handler) DeleteHabit(c *fiber.Ctx) error {
	user := mustCurrentUser(c)
	habitID, err := parseIDParam(c, "id")
	if err != nil {
		return handler.respondError(c, err)
	}

	err = handler.inTransaction(c, func(svc *services.Services) error {
		return svc.Habits.Delete(user.ID, habitID)
	})
	if err != nil {
		return handler.respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (handler *Handler) AchieveHabit(c *fiber.Ctx) error {
	user := mustCurrentUser(c)
	habitID, err := parseIDParam(c, "id")
	if err != nil {
		return handler.respondError(c, err)
	}

	var view services.HabitLogView
	err = handler.inTransaction(c, func(svc *services.Services) error {
		view, err = svc.Habits.Achieve(user.ID, habitID, handler.now())
		return err
	})
	if err != nil {
		return handler.respondError(c, err)
	}
	return c.JSON(view)
}

func (handler *Handler) DeleteHabitLog(c *fiber.Ctx) error {
	user := mustCurrentUser(c)
	habitID, err := parseIDParam(c, "id")
	if err != nil {
		return handler.respondError(c, err)
	}
	logID, err := parseIDParam(c, "log_id")
	if err != nil {
		return handler.respondError(c, err)
	}

	err = handler.inTransaction(c, func(svc *services.Services) error {
		return svc.Habits.DeleteLog(user.ID, habitID, logID)
	})
	if err != nil {
		return handler.respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
