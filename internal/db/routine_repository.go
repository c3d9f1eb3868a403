package db

import (
	"time"

	"github.com/terraincognita07/daymate/internal/models"
	"gorm.io/gorm"
)

type RoutineRepository struct {
	database *gorm.DB
}

func NewRoutineRepository(database *gorm.DB) *RoutineRepository {
	return &RoutineRepository{database: database}
}

func (repo *RoutineRepository) FindByIDForUser(routineID uint, userID uint) (models.Routine, error) {
	var routine models.Routine
	if err := repo.database.Scopes(ownedBy(userID)).Where("id = ?", routineID).First(&routine).Error; err != nil {
		return models.Routine{}, err
	}
	return routine, nil
}

func (repo *RoutineRepository) Create(routine *models.Routine) error {
	return repo.database.Create(routine).Error
}

func (repo *RoutineRepository) Save(routine *models.Routine) error {
	return repo.database.Save(routine).Error
}

func (repo *RoutineRepository) SoftDeleteForUser(routineID uint, userID uint) error {
	result := repo.database.Scopes(ownedBy(userID)).Where("id = ?", routineID).Delete(&models.Routine{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// List orders routines by start time so a day reads top to bottom.
func (repo *RoutineRepository) List(userID uint, deleted bool) ([]models.Routine, error) {
	routines := make([]models.Routine, 0)
	err := visibility(repo.database.Scopes(ownedBy(userID)), deleted).
		Order("start_time_minutes ASC").
		Order("id ASC").
		Find(&routines).Error
	if err != nil {
		return nil, err
	}
	return routines, nil
}

func (repo *RoutineRepository) Elements(userID uint, routineIDs []uint) ([]models.RoutineElement, error) {
	elements := make([]models.RoutineElement, 0)
	if len(routineIDs) == 0 {
		return elements, nil
	}

	err := repo.database.
		Scopes(ownedBy(userID)).
		Where("routine_id IN ?", routineIDs).
		Order("routine_id ASC").
		Order("position ASC").
		Order("id ASC").
		Find(&elements).Error
	if err != nil {
		return nil, err
	}
	return elements, nil
}

func (repo *RoutineRepository) CreateElement(element *models.RoutineElement) error {
	return repo.database.Create(element).Error
}

func (repo *RoutineRepository) SaveElement(element *models.RoutineElement) error {
	return repo.database.Save(element).Error
}

func (repo *RoutineRepository) DeleteElements(userID uint, routineID uint, elementIDs []uint) error {
	if len(elementIDs) == 0 {
		return nil
	}
	return repo.database.
		Scopes(ownedBy(userID)).
		Where("routine_id = ? AND id IN ?", routineID, elementIDs).
		Delete(&models.RoutineElement{}).Error
}

// LogsForDay orders logs so that the first row per (routine, element) is the one reads should use.
func (repo *RoutineRepository) LogsForDay(userID uint, routineIDs []uint, start time.Time, end time.Time) ([]models.RoutineLog, error) {
	logs := make([]models.RoutineLog, 0)
	if len(routineIDs) == 0 {
		return logs, nil
	}

	err := repo.database.
		Scopes(ownedBy(userID)).
		Where("routine_id IN ?", routineIDs).
		Where("completed_at >= ? AND completed_at < ?", start.UTC(), end.UTC()).
		Order("routine_id DESC").
		Order("routine_element_id ASC").
		Order("completed_at ASC").
		Order("id ASC").
		Find(&logs).Error
	if err != nil {
		return nil, err
	}
	return logs, nil
}

func (repo *RoutineRepository) CreateLog(entry *models.RoutineLog) error {
	return repo.database.Create(entry).Error
}

func (repo *RoutineRepository) SaveLog(entry *models.RoutineLog) error {
	return repo.database.Save(entry).Error
}
