package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/daymate/internal/services"
)

func (handler *Handler) ListTodos(c *fiber.Ctx) error {
	user := mustCurrentUser(c)
	limit, err := queryInt(c, "limit")
	if err != nil {
		return handler.respondError(c, err)
	}
	offset, err := queryInt(c, "offset")
	if err != nil {
		return handler.respondError(c, err)
	}
	completed, err := queryFlag(c, "completed")
	if err != nil {
		return handler.respondError(c, err)
	}

	params := services.TodoListParams{
		Limit:     limit,
		Completed: completed,
		StartDate: c.Query("start_date"),
		EndDate:   c.Query("end_date"),
	}
	if offset != nil {
		params.Offset = *offset
	}

	var views []services.TodoView
	err = handler.inTransaction(c, func(svc *services.Services) error {
		views, err = svc.Todos.List(user.ID, params)
		return err
	})
	if err != nil {
		return handler.respondError(c, err)
	}
	return c.JSON(views)
}

func (handler *Handler) CreateTodo(c *fiber.Ctx) error {
	user := mustCurrentUser(c)
	payload := todoCreatePayload{}
	if err := parseBody(c, &payload); err != nil {
		return handler.respondError(c, err)
	}

	var view services.TodoView
	err := handler.inTransaction(c, func(svc *services.Services) error {
		var err error
		view, err = svc.Todos.Create(user.ID, payload.input())
		return err
	})
	if err != nil {
		return handler.respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(view)
}

func (handler *Handler) GetTodo(c *fiber.Ctx) error {
	user := mustCurrentUser(c)
	todoID, err := parseIDParam(c, "id")
	if err != nil {
		return handler.respondError(c, err)
	}

	var view services.TodoView
	err = handler.inTransaction(c, func(svc *services.Services) error {
		view, err = svc.Todos.Get(user.ID, todoID)
		return err
	})
	if err != nil {
		return handler.respondError(c, err)
	}
	return c.JSON(view)
}

func (handler *Handler) UpdateTodo(c *fiber.Ctx) error {
	user := mustCurrentUser(c)
	todoID, err := parseIDParam(c, "id")
	if err != nil {
		return handler.respondError(c, err)
	}
	payload := todoUpdatePayload{}
	if err := parseBody(c, &payload); err != nil {
		return handler.respondError(c, err)
	}

	var view services.TodoView
	err = handler.inTransaction(c, func(svc *services.Services) error {
		view, err = svc.Todos.Update(user.ID, todoID, payload.input(), handler.now())
		return err
	})
	if err != nil {
		return handler.respondError(c, err)
	}
	return c.JSON(view)
}

func (handler *Handler) DeleteTodo(c *fiber.Ctx) error {
	user := mustCurrentUser(c)
	todoID, err := parseIDParam(c, "id")
	if err != nil {
		return handler.respondError(c, err)
	}

	err = handler.inTransaction(c, func(svc *services.Services) error {
		return svc.Todos.Delete(user.ID, todoID)
	})
	if err != nil {
		return handler.respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (handler *Handler) ReorderTodos(c *fiber.Ctx) error {
	user := mustCurrentUser(c)
	payload := todoOrderPayload{}
	if err := parseBody(c, &payload); err != nil {
		return handler.respondError(c, err)
	}

	err := handler.inTransaction(c, func(svc *services.Services) error {
		return svc.Todos.Reorder(user.ID, payload.orders())
	})
	if err != nil {
		return handler.respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
