package services

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/terraincognita07/daymate/internal/db"
	"github.com/terraincognita07/daymate/internal/models"
)

const (
	DefaultListLimit = 30
	MaxListLimit     = 100
)

type TodoRepository interface {
	FindByIDForUser(todoID uint, userID uint) (models.Todo, error)
	Create(todo *models.Todo) error
	Save(todo *models.Todo) error
	DeleteForUser(todoID uint, userID uint) error
	UpdateOrderForUser(todoID uint, userID uint, order int) error
	List(userID uint, filter db.TodoListFilter) ([]models.Todo, error)
	ListForDay(userID uint, start time.Time, end time.Time) ([]models.Todo, error)
}

type TodoInput struct {
	Title      string
	Content    string
	TargetDate string
	Order      int
}

type TodoUpdateInput struct {
	Title      string
	Content    *string
	TargetDate string
	Order      *int
	Completed  *bool
}

type TodoListParams struct {
	Limit     *int
	Offset    int
	Completed bool
	StartDate string
	EndDate   string
}

type TodoOrder struct {
	ID    uint
	Order int
}

type TodoService struct {
	todos     TodoRepository
	location  *time.Location
	presenter presenter
}

func NewTodoService(todos TodoRepository, location *time.Location) *TodoService {
	location = locationOrUTC(location)
	return &TodoService{todos: todos, location: location, presenter: presenter{location: location}}
}

func (service *TodoService) Create(userID uint, input TodoInput) (TodoView, error) {
	validation := &ValidationError{}
	checkTitle(validation, input.Title, "body", "title")
	targetDate := service.parseDayField(validation, input.TargetDate, "body", "target_date")
	if err := validation.OrNil(); err != nil {
		return TodoView{}, err
	}

	todo := models.Todo{
		UserID:     userID,
		Title:      strings.TrimSpace(input.Title),
		Content:    input.Content,
		TargetDate: targetDate.UTC(),
		Order:      input.Order,
	}
	if err := service.todos.Create(&todo); err != nil {
		return TodoView{}, fmt.Errorf("create todo: %w", err)
	}
	return service.presenter.todo(todo), nil
}

func (service *TodoService) Get(userID uint, todoID uint) (TodoView, error) {
	todo, err := service.load(userID, todoID)
	if err != nil {
		return TodoView{}, err
	}
	return service.presenter.todo(todo), nil
}

// Update replaces title and target date. Completed only touches completed_at when the state flips.
func (service *TodoService) Update(userID uint, todoID uint, input TodoUpdateInput, now time.Time) (TodoView, error) {
	validation := &ValidationError{}
	checkTitle(validation, input.Title, "body", "title")
	targetDate := service.parseDayField(validation, input.TargetDate, "body", "target_date")
	if err := validation.OrNil(); err != nil {
		return TodoView{}, err
	}

	todo, err := service.load(userID, todoID)
	if err != nil {
		return TodoView{}, err
	}

	todo.Title = strings.TrimSpace(input.Title)
	todo.TargetDate = targetDate.UTC()
	if input.Content != nil {
		todo.Content = *input.Content
	}
	if input.Order != nil {
		todo.Order = *input.Order
	}
	if input.Completed != nil && *input.Completed != todo.Completed() {
		if *input.Completed {
			completedAt := now.UTC()
			todo.CompletedAt = &completedAt
		} else {
			todo.CompletedAt = nil
		}
	}

	if err := service.todos.Save(&todo); err != nil {
		return TodoView{}, fmt.Errorf("save todo: %w", err)
	}
	return service.presenter.todo(todo), nil
}

func (service *TodoService) Delete(userID uint, todoID uint) error {
	if err := service.todos.DeleteForUser(todoID, userID); err != nil {
		if db.IsNotFound(err) {
			return fmt.Errorf("%w: todo %d", ErrNotFound, todoID)
		}
		return fmt.Errorf("delete todo: %w", err)
	}
	return nil
}

// Reorder applies every position or none: an unknown id fails the whole batch.
func (service *TodoService) Reorder(userID uint, orders []TodoOrder) error {
	for _, entry := range orders {
		if err := service.todos.UpdateOrderForUser(entry.ID, userID, entry.Order); err != nil {
			if db.IsNotFound(err) {
				return fmt.Errorf("%w: todo %d", ErrNotFound, entry.ID)
			}
			return fmt.Errorf("update todo order: %w", err)
		}
	}
	return nil
}

func (service *TodoService) List(userID uint, params TodoListParams) ([]TodoView, error) {
	validation := &ValidationError{}
	limit := checkLimit(validation, params.Limit, "query", "limit")
	if params.Offset < 0 {
		validation.Add("offset must not be negative", "query", "offset")
	}

	filter := db.TodoListFilter{Completed: params.Completed, Limit: limit, Offset: params.Offset}
	if strings.TrimSpace(params.StartDate) != "" {
		filter.From = service.parseDayField(validation, params.StartDate, "query", "start_date")
	}
	if strings.TrimSpace(params.EndDate) != "" {
		endDay := service.parseDayField(validation, params.EndDate, "query", "end_date")
		if !endDay.IsZero() {
			filter.To = endDay.AddDate(0, 0, 1)
		}
	}
	if err := validation.OrNil(); err != nil {
		return nil, err
	}

	todos, err := service.todos.List(userID, filter)
	if err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}
	return service.presenter.todos(todos), nil
}

func (service *TodoService) load(userID uint, todoID uint) (models.Todo, error) {
	todo, err := service.todos.FindByIDForUser(todoID, userID)
	if err != nil {
		if db.IsNotFound(err) {
			return models.Todo{}, fmt.Errorf("%w: todo %d", ErrNotFound, todoID)
		}
		return models.Todo{}, fmt.Errorf("load todo: %w", err)
	}
	return todo, nil
}

func (service *TodoService) parseDayField(validation *ValidationError, raw string, location ...string) time.Time {
	day, err := ParseDay(raw, service.location)
	if err != nil {
		validation.Add("date must use YYYY-MM-DD format", location...)
		return time.Time{}
	}
	return day
}

// SortDailyTodos puts open todos first, then completed ones by completion time (newest first).
// Ties fall back to target date ascending, then most recently updated.
func SortDailyTodos(todos []models.Todo) {
	sort.SliceStable(todos, func(i, j int) bool {
		left, right := todos[i], todos[j]
		if left.Completed() != right.Completed() {
			return !left.Completed()
		}
		if left.Completed() && !left.CompletedAt.Equal(*right.CompletedAt) {
			return left.CompletedAt.After(*right.CompletedAt)
		}
		if !left.TargetDate.Equal(right.TargetDate) {
			return left.TargetDate.Before(right.TargetDate)
		}
		if !left.UpdatedAt.Equal(right.UpdatedAt) {
			return left.UpdatedAt.After(right.UpdatedAt)
		}
		return left.ID < right.ID
	})
}

func checkLimit(validation *ValidationError, raw *int, location ...string) int {
	if raw == nil {
		return DefaultListLimit
	}
	if *raw < 1 || *raw > MaxListLimit {
		validation.Add(fmt.Sprintf("limit must be between 1 and %d", MaxListLimit), location...)
		return DefaultListLimit
	}
	return *raw
}
