package db

import (
	"github.com/terraincognita07/daymate/internal/models"
	"gorm.io/gorm"
)

type UserRepository struct {
	database *gorm.DB
}

func NewUserRepository(database *gorm.DB) *UserRepository {
	return &UserRepository{database: database}
}

func (repo *UserRepository) FindByID(userID uint) (models.User, error) {
	var user models.User
	if err := repo.database.First(&user, userID).Error; err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (repo *UserRepository) FindByUsername(username string) (models.User, error) {
	var user models.User
	if err := repo.database.Where("username = ?", username).First(&user).Error; err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (repo *UserRepository) ExistsByUsername(username string) (bool, error) {
	var matched int64
	if err := repo.database.Model(&models.User{}).
		Where("username = ?", username).
		Count(&matched).Error; err != nil {
		return false, err
	}
	return matched > 0, nil
}

// ExistsByNormalizedEmail ignores the row of excludeUserID, so a user keeping their own email is not a clash.
func (repo *UserRepository) ExistsByNormalizedEmail(email string, excludeUserID uint) (bool, error) {
	var matched int64
	query := repo.database.Model(&models.User{}).Where("lower(trim(email)) = ?", email)
	if excludeUserID != 0 {
		query = query.Where("id <> ?", excludeUserID)
	}
	if err := query.Count(&matched).Error; err != nil {
		return false, err
	}
	return matched > 0, nil
}

func (repo *UserRepository) Create(user *models.User) error {
	return repo.database.Create(user).Error
}

func (repo *UserRepository) Save(user *models.User) error {
	return repo.database.Save(user).Error
}
