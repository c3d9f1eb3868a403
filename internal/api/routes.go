package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)
	app.Get("/favicon.ico", sendNoContent)

	auth := app.Group("/auth")
	auth.Post("/signup", handler.Signup)
	auth.Post("/login", handler.Login)
	auth.Post("/refresh", handler.Refresh)
	auth.Post("/logout", handler.Logout)

	users := app.Group("/users", handler.AuthRequired)
	users.Get("/me", handler.GetMe)
	users.Put("/me", handler.UpdateMe)

	app.Get("/task", handler.AuthRequired, handler.GetDailyTasks)

	todos := app.Group("/todos", handler.AuthRequired)
	todos.Get("", handler.ListTodos)
	todos.Post("", handler.CreateTodo)
	todos.Put("/order", handler.ReorderTodos)
	todos.Get("/:id", handler.GetTodo)
	todos.Put("/:id", handler.UpdateTodo)
	todos.Delete("/:id", handler.DeleteTodo)

	habits := app.Group("/habits", handler.AuthRequired)
	habits.Get("", handler.ListHabits)
	habits.Post("", handler.CreateHabit)
	habits.Post("/achieve/:id", handler.AchieveHabit)
	habits.Put("/:id", handler.UpdateHabit)
	habits.Delete("/:id", handler.DeleteHabit)
	habits.Delete("/:id/logs/:log_id", handler.DeleteHabitLog)

	routines := app.Group("/routines", handler.AuthRequired)
	routines.Get("", handler.ListRoutines)
	routines.Post("", handler.CreateRoutine)
	routines.Put("/log/:routine_id", handler.RecordRoutineLogs)
	routines.Get("/:id", handler.GetRoutine)
	routines.Put("/:id", handler.UpdateRoutine)
	routines.Delete("/:id", handler.DeleteRoutine)
}

func sendNoContent(c *fiber.Ctx) error {
	return c.SendStatus(fiber.StatusNoContent)
}
