package db

import (
	"time"

	"github.com/terraincognita07/daymate/internal/models"
	"gorm.io/gorm"
)

type TodoListFilter struct {
	Completed bool
	// From and To bound target_date as a half-open range. Zero values leave the side open.
	From   time.Time
	To     time.Time
	Limit  int
	Offset int
}

type TodoRepository struct {
	database *gorm.DB
}

func NewTodoRepository(database *gorm.DB) *TodoRepository {
	return &TodoRepository{database: database}
}

func (repo *TodoRepository) FindByIDForUser(todoID uint, userID uint) (models.Todo, error) {
	var todo models.Todo
	if err := repo.database.Scopes(ownedBy(userID)).Where("id = ?", todoID).First(&todo).Error; err != nil {
		return models.Todo{}, err
	}
	return todo, nil
}

func (repo *TodoRepository) Create(todo *models.Todo) error {
	return repo.database.Create(todo).Error
}

func (repo *TodoRepository) Save(todo *models.Todo) error {
	return repo.database.Save(todo).Error
}

func (repo *TodoRepository) DeleteForUser(todoID uint, userID uint) error {
	result := repo.database.Scopes(ownedBy(userID)).Where("id = ?", todoID).Delete(&models.Todo{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (repo *TodoRepository) UpdateOrderForUser(todoID uint, userID uint, order int) error {
	result := repo.database.Model(&models.Todo{}).
		Scopes(ownedBy(userID)).
		Where("id = ?", todoID).
		Update("position", order)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (repo *TodoRepository) List(userID uint, filter TodoListFilter) ([]models.Todo, error) {
	query := repo.database.Scopes(ownedBy(userID))
	if filter.Completed {
		query = query.Where("completed_at IS NOT NULL").Order("completed_at DESC").Order("id DESC")
	} else {
		query = query.Where("completed_at IS NULL").
			Order("target_date ASC").
			Order("position ASC").
			Order("updated_at DESC").
			Order("id DESC")
	}
	if !filter.From.IsZero() {
		query = query.Where("target_date >= ?", filter.From.UTC())
	}
	if !filter.To.IsZero() {
		query = query.Where("target_date < ?", filter.To.UTC())
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	todos := make([]models.Todo, 0)
	if err := query.Find(&todos).Error; err != nil {
		return nil, err
	}
	return todos, nil
}

// ListForDay returns todos targeted at [start, end), overdue todos still open at end,
// and todos completed inside [start, end). Ordering is left to the caller.
func (repo *TodoRepository) ListForDay(userID uint, start time.Time, end time.Time) ([]models.Todo, error) {
	start, end = start.UTC(), end.UTC()

	todos := make([]models.Todo, 0)
	err := repo.database.
		Scopes(ownedBy(userID)).
		Where(
			"((target_date >= ? AND target_date < ?) OR (target_date < ? AND completed_at IS NULL) OR (completed_at >= ? AND completed_at < ?))",
			start, end, end, start, end,
		).
		Order("id ASC").
		Find(&todos).Error
	if err != nil {
		return nil, err
	}
	return todos, nil
}
