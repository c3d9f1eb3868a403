package db

import "gorm.io/gorm"

// Repositories bundles every repository over one handle, which may be a transaction.
type Repositories struct {
	Users         *UserRepository
	Todos         *TodoRepository
	Habits        *HabitRepository
	Routines      *RoutineRepository
	RevokedTokens *RevokedTokenRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		Users:         NewUserRepository(database),
		Todos:         NewTodoRepository(database),
		Habits:        NewHabitRepository(database),
		Routines:      NewRoutineRepository(database),
		RevokedTokens: NewRevokedTokenRepository(database),
	}
}
