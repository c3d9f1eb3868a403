package services

import (
	"time"

	"github.com/terraincognita07/daymate/internal/db"
)

// Services is the set of request-scoped services built over one repository set.
type Services struct {
	Auth     *AuthService
	Users    *UserService
	Todos    *TodoService
	Habits   *HabitService
	Routines *RoutineService
	Tasks    *TaskService
}

func New(repos *db.Repositories, location *time.Location, tokens TokenSettings) *Services {
	return &Services{
		Auth:     NewAuthService(repos.Users, repos.RevokedTokens, tokens),
		Users:    NewUserService(repos.Users, location),
		Todos:    NewTodoService(repos.Todos, location),
		Habits:   NewHabitService(repos.Habits, location),
		Routines: NewRoutineService(repos.Routines, location),
		Tasks:    NewTaskService(repos.Todos, repos.Habits, repos.Routines, location),
	}
}
