package services

import (
	"errors"
	"testing"
	"time"

	"github.com/terraincognita07/daymate/internal/db"
	"github.com/terraincognita07/daymate/internal/models"
	"gorm.io/gorm"
)

type todoRepositoryStub struct {
	todos map[uint]models.Todo
	saved int
}

func newTodoRepositoryStub(todos ...models.Todo) *todoRepositoryStub {
	stub := &todoRepositoryStub{todos: make(map[uint]models.Todo)}
	for _, todo := range todos {
		stub.todos[todo.ID] = todo
	}
	return stub
}

func (stub *todoRepositoryStub) FindByIDForUser(todoID uint, userID uint) (models.Todo, error) {
	todo, ok := stub.todos[todoID]
	if !ok || todo.UserID != userID {
		return models.Todo{}, gorm.ErrRecordNotFound
	}
	return todo, nil
}

func (stub *todoRepositoryStub) Create(todo *models.Todo) error {
	todo.ID = uint(len(stub.todos) + 1)
	stub.todos[todo.ID] = *todo
	return nil
}

func (stub *todoRepositoryStub) Save(todo *models.Todo) error {
	stub.saved++
	stub.todos[todo.ID] = *todo
	return nil
}

func (stub *todoRepositoryStub) DeleteForUser(todoID uint, userID uint) error {
	if _, err := stub.FindByIDForUser(todoID, userID); err != nil {
		return err
	}
	delete(stub.todos, todoID)
	return nil
}

func (stub *todoRepositoryStub) UpdateOrderForUser(todoID uint, userID uint, order int) error {
	todo, err := stub.FindByIDForUser(todoID, userID)
	if err != nil {
		return err
	}
	todo.Order = order
	stub.todos[todoID] = todo
	return nil
}

func (stub *todoRepositoryStub) List(userID uint, filter db.TodoListFilter) ([]models.Todo, error) {
	return nil, nil
}

func (stub *todoRepositoryStub) ListForDay(userID uint, start time.Time, end time.Time) ([]models.Todo, error) {
	return nil, nil
}

func TestTodoUpdateTogglesCompletedAtOnlyOnStateChange(t *testing.T) {
	t.Parallel()

	stub := newTodoRepositoryStub(models.Todo{ID: 1, UserID: 7, Title: "t", TargetDate: testMonday})
	service := NewTodoService(stub, time.UTC)

	firstCompletion := testMonday.Add(9 * time.Hour)
	view, err := service.Update(7, 1, TodoUpdateInput{Title: "t", TargetDate: "2026-10-12", Completed: boolPointer(true)}, firstCompletion)
	if err != nil {
		t.Fatalf("complete todo: %v", err)
	}
	if !view.Completed || view.CompletedAt == nil || !view.CompletedAt.Equal(firstCompletion) {
		t.Fatalf("expected completion at %v, got %#v", firstCompletion, view)
	}

	view, err = service.Update(7, 1, TodoUpdateInput{Title: "t", TargetDate: "2026-10-12", Completed: boolPointer(true)}, firstCompletion.Add(time.Hour))
	if err != nil {
		t.Fatalf("re-complete todo: %v", err)
	}
	if !view.CompletedAt.Equal(firstCompletion) {
		t.Fatalf("expected completed_at to stay %v, got %v", firstCompletion, view.CompletedAt)
	}

	view, err = service.Update(7, 1, TodoUpdateInput{Title: "t", TargetDate: "2026-10-12", Completed: boolPointer(false)}, firstCompletion)
	if err != nil {
		t.Fatalf("reopen todo: %v", err)
	}
	if view.Completed || view.CompletedAt != nil {
		t.Fatalf("expected reopened todo, got %#v", view)
	}
}

func TestTodoLookupsHideOtherUsersTodos(t *testing.T) {
	t.Parallel()

	stub := newTodoRepositoryStub(models.Todo{ID: 1, UserID: 7, Title: "t", TargetDate: testMonday})
	service := NewTodoService(stub, time.UTC)

	if _, err := service.Get(8, 1); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on get, got %v", err)
	}
	if err := service.Delete(8, 1); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on delete, got %v", err)
	}
	if err := service.Reorder(8, []TodoOrder{{ID: 1, Order: 3}}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on reorder, got %v", err)
	}
	if stub.todos[1].Order != 0 {
		t.Fatalf("expected order untouched, got %d", stub.todos[1].Order)
	}
}

func TestTodoCreateValidatesInput(t *testing.T) {
	t.Parallel()

	service := NewTodoService(newTodoRepositoryStub(), time.UTC)
	tests := []struct {
		name  string
		input TodoInput
		field string
	}{
		{name: "empty title", input: TodoInput{Title: "  ", TargetDate: "2026-10-12"}, field: "title"},
		{name: "bad date", input: TodoInput{Title: "ok", TargetDate: "12.10.2026"}, field: "target_date"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Create(1, tt.input)
			var validation *ValidationError
			if !errors.As(err, &validation) {
				t.Fatalf("expected validation error, got %v", err)
			}
			location := validation.Errors[0].Location
			if location[len(location)-1] != tt.field {
				t.Fatalf("expected error on %s, got %v", tt.field, location)
			}
		})
	}
}

func TestTodoListValidatesPaging(t *testing.T) {
	t.Parallel()

	service := NewTodoService(newTodoRepositoryStub(), time.UTC)
	if _, err := service.List(1, TodoListParams{Limit: intPointer(101)}); err == nil {
		t.Fatal("expected limit above 100 to fail")
	}
	if _, err := service.List(1, TodoListParams{Offset: -1}); err == nil {
		t.Fatal("expected negative offset to fail")
	}
	if _, err := service.List(1, TodoListParams{StartDate: "2026-10-01", EndDate: "2026-10-31"}); err != nil {
		t.Fatalf("expected valid range, got %v", err)
	}
}
