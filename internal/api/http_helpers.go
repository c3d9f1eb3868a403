package api

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/daymate/internal/services"
)

const internalErrorMessage = "Internal Server Error"

var errTooManyLoginAttempts = fiber.NewError(fiber.StatusTooManyRequests, "too many login attempts")

func apiError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"message": message})
}

// respondError is the single place where errors become HTTP responses.
func (handler *Handler) respondError(c *fiber.Ctx, err error) error {
	var validation *services.ValidationError
	if errors.As(err, &validation) {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"message": "Validation Error",
			"errors":  validation.Errors,
		})
	}

	switch {
	case errors.Is(err, services.ErrNotFound):
		return apiError(c, fiber.StatusNotFound, services.PublicMessage(err))
	case errors.Is(err, services.ErrConflict):
		return apiError(c, fiber.StatusConflict, services.PublicMessage(err))
	case errors.Is(err, services.ErrUnauthorized):
		c.Set(fiber.HeaderWWWAuthenticate, "Bearer")
		return apiError(c, fiber.StatusUnauthorized, services.PublicMessage(err))
	case errors.Is(err, services.ErrForbidden):
		return apiError(c, fiber.StatusForbidden, services.PublicMessage(err))
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) && fiberErr.Code < fiber.StatusInternalServerError {
		return apiError(c, fiberErr.Code, fiberErr.Message)
	}

	handler.logger.Error("request failed",
		"method", c.Method(),
		"path", c.Path(),
		"request_id", c.Locals("requestid"),
		"err", err,
	)
	return apiError(c, fiber.StatusInternalServerError, internalErrorMessage)
}

// ErrorHandler covers errors that escape handlers: routing misses, body limits and recovered panics.
func (handler *Handler) ErrorHandler(c *fiber.Ctx, err error) error {
	return handler.respondError(c, err)
}

func parseBody(c *fiber.Ctx, out any) error {
	if len(c.Body()) == 0 {
		return services.NewValidationError("request body is required", "body")
	}
	if err := c.BodyParser(out); err != nil {
		return services.NewValidationError("request body is not valid JSON for this endpoint", "body")
	}
	return nil
}

func parseIDParam(c *fiber.Ctx, name string) (uint, error) {
	value, err := strconv.ParseUint(strings.TrimSpace(c.Params(name)), 10, 64)
	if err != nil || value == 0 {
		return 0, services.NewValidationError("must be a positive integer", "path", name)
	}
	return uint(value), nil
}

func queryInt(c *fiber.Ctx, key string) (*int, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return nil, services.NewValidationError("must be an integer", "query", key)
	}
	return &value, nil
}

func queryBool(c *fiber.Ctx, key string) (*bool, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, services.NewValidationError("must be a boolean", "query", key)
	}
	return &value, nil
}

func queryFlag(c *fiber.Ctx, key string) (bool, error) {
	value, err := queryBool(c, key)
	if err != nil || value == nil {
		return false, err
	}
	return *value, nil
}
