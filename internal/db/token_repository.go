package db

import (
	"time"

	"github.com/terraincognita07/daymate/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RevokedTokenRepository struct {
	database *gorm.DB
}

func NewRevokedTokenRepository(database *gorm.DB) *RevokedTokenRepository {
	return &RevokedTokenRepository{database: database}
}

func (repo *RevokedTokenRepository) Revoke(token *models.RevokedToken) error {
	return repo.database.Clauses(clause.OnConflict{DoNothing: true}).Create(token).Error
}

func (repo *RevokedTokenRepository) IsRevoked(tokenID string) (bool, error) {
	var matched int64
	if err := repo.database.Model(&models.RevokedToken{}).
		Where("id = ?", tokenID).
		Count(&matched).Error; err != nil {
		return false, err
	}
	return matched > 0, nil
}

// PurgeExpired drops entries whose tokens have expired on their own.
func (repo *RevokedTokenRepository) PurgeExpired(now time.Time) (int64, error) {
	result := repo.database.Where("expires_at <= ?", now.UTC()).Delete(&models.RevokedToken{})
	return result.RowsAffected, result.Error
}
