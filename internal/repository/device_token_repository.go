package repository

import (
	"github.com/nlam511/geo-message/internal/models"
	"gorm.io/gorm"
)

type DeviceTokenRepository struct {
	db *gorm.DB
}

func NewDeviceTokenRepository(db *gorm.DB) *DeviceTokenRepository {
	return &DeviceTokenRepository{db: db}
}

// Upsert registers a push token for a user. A token already registered to
// another user (device handed over, re-login) is moved, not duplicated.
func (r *DeviceTokenRepository) Upsert(userID uint, token string) error {
	return r.db.Exec(`
		INSERT INTO device_tokens (user_id, token, created_at, updated_at)
		VALUES (?, ?, NOW(), NOW())
		ON CONFLICT (token) DO UPDATE
		SET user_id = EXCLUDED.user_id, updated_at = NOW()
	`, userID, token).Error
}

func (r *DeviceTokenRepository) ListByUser(userID uint) ([]string, error) {
	var tokens []string
	err := r.db.Model(&models.DeviceToken{}).
		Where("user_id = ?", userID).
		Pluck("token", &tokens).Error
	return tokens, err
}
