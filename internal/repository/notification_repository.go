package repository

import (
	"time"

	"github.com/nlam511/geo-message/internal/models"
	"gorm.io/gorm"
)

type NotificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

// Enqueue adds an outbox row. Collect enqueues inside its own transaction
// instead; this standalone path exists for callers outside one.
func (r *NotificationRepository) Enqueue(note *models.PendingNotification) error {
	return r.db.Create(note).Error
}

// GetDue returns notifications whose next attempt time has passed, oldest
// first so retries don't starve fresh rows forever.
func (r *NotificationRepository) GetDue(now time.Time, limit int) ([]models.PendingNotification, error) {
	var due []models.PendingNotification
	err := r.db.Where("next_attempt <= ?", now).
		Order("next_attempt ASC").
		Limit(limit).
		Find(&due).Error
	return due, err
}

// MarkAttempted records a failed delivery attempt and schedules the retry.
func (r *NotificationRepository) MarkAttempted(id uint, attempts int, nextAttempt time.Time) error {
	now := time.Now()
	return r.db.Model(&models.PendingNotification{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"attempts":     attempts,
			"last_attempt": now,
			"next_attempt": nextAttempt,
		}).Error
}

// Delete removes a row after successful delivery (or after giving up).
func (r *NotificationRepository) Delete(id uint) error {
	return r.db.Delete(&models.PendingNotification{}, id).Error
}
