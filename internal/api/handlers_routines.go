package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/daymate/internal/services"
)

func (handler *Handler) ListRoutines(c *fiber.Ctx) error {
	user := mustCurrentUser(c)
	deleted, err := queryFlag(c, "deleted")
	if err != nil {
		return handler.respondError(c, err)
	}

	var views []services.RoutineView
	err = handler.inTransaction(c, func(svc *services.Services) error {
		views, err = svc.Routines.List(user.ID, deleted, handler.now())
		return err
	})
	if err != nil {
		return handler.respondError(c, err)
	}
	return c.JSON(views)
}

func (handler *Handler) CreateRoutine(c *fiber.Ctx) error {
	user := mustCurrentUser(c)
	payload := routineCreatePayload{}
	if err := parseBody(c, &payload); err != nil {
		return handler.respondError(c, err)
	}

	var view services.RoutineView
	err := handler.inTransaction(c, func(svc *services.Services) error {
		var err error
		view, err = svc.Routines.Create(user.ID, payload.input(), handler.now())
		return err
	})
	if err != nil {
		return handler.respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(view)
}

func (handler *Handler) GetRoutine(c *fiber.Ctx) error {
	user := mustCurrentUser(c)
	routineID, err := parseIDParam(c, "id")
	if err != nil {
		return handler.respondError(c, err)
	}

	var view services.RoutineView
	err = handler.inTransaction(c, func(svc *services.Services) error {
		view, err = svc.Routines.Get(user.ID, routineID, handler.now())
		return err
	})
	if err != nil {
		return handler.respondError(c, err)
	}
	return c.JSON(view)
}

// UpdateRoutine applies a partial update. The element diff and the field changes commit together.
func (handler *Handler) UpdateRoutine(c *fiber.Ctx) error {
	user := mustCurrentUser(c)
	routineID, err := parseIDParam(c, "id")
	if err != nil {
		return handler.respondError(c, err)
	}
	payload := routineUpdatePayload{}
	if err := parseBody(c, &payload); err != nil {
		return handler.respondError(c, err)
	}

	var view services.RoutineView
	err = handler.inTransaction(c, func(svc *services.Services) error {
		view, err = svc.Routines.Update(user.ID, routineID, payload.patch(), handler.now())
		return err
	})
	if err != nil {
		return handler.respondError(c, err)
	}
	return c.JSON(view)
}

func (handler *Handler) DeleteRoutine(c *fiber.Ctx) error {
	user := mustCurrentUser(c)
	routineID, err := parseIDParam(c, "id")
	if err != nil {
		return handler.respondError(c, err)
	}

	err = handler.inTransaction(c, func(svc *services.Services) error {
		return svc.Routines.Delete(user.ID, routineID)
	})
	if err != nil {
		return handler.respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (handler *Handler) RecordRoutineLogs(c *fiber.Ctx) error {
	user := mustCurrentUser(c)
	routineID, err := parseIDParam(c, "routine_id")
	if err != nil {
		return handler.respondError(c, err)
	}
	payload := routineLogPayload{}
	if err := parseBody(c, &payload); err != nil {
		return handler.respondError(c, err)
	}

	err = handler.inTransaction(c, func(svc *services.Services) error {
		return svc.Routines.RecordLogs(user.ID, routineID, payload.entries(), handler.now())
	})
	if err != nil {
		return handler.respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
