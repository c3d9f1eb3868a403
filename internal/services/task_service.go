package services

import (
	"fmt"
	"strings"
	"time"
)

// TaskService assembles the daily view: todos for the day, plus the routines and habits due on it.
type TaskService struct {
	todos     TodoRepository
	habits    *HabitService
	routines  *RoutineService
	location  *time.Location
	presenter presenter
}

func NewTaskService(todos TodoRepository, habits HabitRepository, routines RoutineRepository, location *time.Location) *TaskService {
	location = locationOrUTC(location)
	return &TaskService{
		todos:     todos,
		habits:    NewHabitService(habits, location),
		routines:  NewRoutineService(routines, location),
		location:  location,
		presenter: presenter{location: location},
	}
}

func (service *TaskService) DailyView(userID uint, rawDate string) (DailyView, error) {
	if strings.TrimSpace(rawDate) == "" {
		return DailyView{}, NewValidationError("date is required", "query", "date")
	}
	day, err := ParseDay(rawDate, service.location)
	if err != nil {
		return DailyView{}, NewValidationError("date must use YYYY-MM-DD format", "query", "date")
	}
	return service.DailyViewOn(userID, day)
}

func (service *TaskService) DailyViewOn(userID uint, day time.Time) (DailyView, error) {
	start, end := DayRange(day, service.location)

	todos, err := service.todos.ListForDay(userID, start, end)
	if err != nil {
		return DailyView{}, fmt.Errorf("load todos for day: %w", err)
	}
	SortDailyTodos(todos)

	routines, err := service.routines.DueOn(userID, start)
	if err != nil {
		return DailyView{}, err
	}
	habits, err := service.habits.DueOn(userID, start)
	if err != nil {
		return DailyView{}, err
	}

	return DailyView{
		TodoList:    service.presenter.todos(todos),
		RoutineList: routines,
		HabitList:   habits,
	}, nil
}
