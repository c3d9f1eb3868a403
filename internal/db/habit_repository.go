package db

import (
	"time"

	"github.com/terraincognita07/daymate/internal/models"
	"gorm.io/gorm"
)

type HabitListFilter struct {
	Limit int
	// LastID is an exclusive cursor on the descending id order. Zero starts from the newest habit.
	LastID    uint
	Activated *bool
	Deleted   bool
}

type HabitRepository struct {
	database *gorm.DB
}

func NewHabitRepository(database *gorm.DB) *HabitRepository {
	return &HabitRepository{database: database}
}

func (repo *HabitRepository) FindByIDForUser(habitID uint, userID uint) (models.Habit, error) {
	var habit models.Habit
	if err := repo.database.Scopes(ownedBy(userID)).Where("id = ?", habitID).First(&habit).Error; err != nil {
		return models.Habit{}, err
	}
	return habit, nil
}

func (repo *HabitRepository) Create(habit *models.Habit) error {
	return repo.database.Create(habit).Error
}

func (repo *HabitRepository) Save(habit *models.Habit) error {
	return repo.database.Save(habit).Error
}

func (repo *HabitRepository) SoftDeleteForUser(habitID uint, userID uint) error {
	result := repo.database.Scopes(ownedBy(userID)).Where("id = ?", habitID).Delete(&models.Habit{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (repo *HabitRepository) List(userID uint, filter HabitListFilter) ([]models.Habit, error) {
	query := visibility(repo.database.Scopes(ownedBy(userID)), filter.Deleted)
	if filter.Activated != nil {
		query = query.Where("activated = ?", *filter.Activated)
	}
	if filter.LastID > 0 {
		query = query.Where("id < ?", filter.LastID)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	habits := make([]models.Habit, 0)
	if err := query.Order("id DESC").Find(&habits).Error; err != nil {
		return nil, err
	}
	return habits, nil
}

func (repo *HabitRepository) CreateLog(entry *models.HabitLog) error {
	return repo.database.Create(entry).Error
}

func (repo *HabitRepository) DeleteLogForUser(habitID uint, logID uint, userID uint) error {
	result := repo.database.
		Scopes(ownedBy(userID)).
		Where("id = ? AND habit_id = ?", logID, habitID).
		Delete(&models.HabitLog{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// LogsForDay returns logs of the given habits completed inside [start, end), newest first.
func (repo *HabitRepository) LogsForDay(userID uint, habitIDs []uint, start time.Time, end time.Time) ([]models.HabitLog, error) {
	logs := make([]models.HabitLog, 0)
	if len(habitIDs) == 0 {
		return logs, nil
	}

	err := repo.database.
		Scopes(ownedBy(userID)).
		Where("habit_id IN ?", habitIDs).
		Where("completed_at >= ? AND completed_at < ?", start.UTC(), end.UTC()).
		Order("completed_at DESC").
		Order("id DESC").
		Find(&logs).Error
	if err != nil {
		return nil, err
	}
	return logs, nil
}
