package repository

import (
	"errors"
	"time"

	"github.com/nlam511/geo-message/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type QuotaRepository struct {
	db *gorm.DB
}

func NewQuotaRepository(db *gorm.DB) *QuotaRepository {
	return &QuotaRepository{db: db}
}

// CheckAndReserveDrop atomically consumes one drop from the user's daily
// allowance, or returns ErrQuotaExceeded without mutating anything.
func (r *QuotaRepository) CheckAndReserveDrop(userID uint, limit int, now time.Time) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return reserveDrop(tx, userID, limit, now)
	})
}

func (r *QuotaRepository) Get(userID uint) (*models.UserQuota, error) {
	var quota models.UserQuota
	err := r.db.Where("user_id = ?", userID).First(&quota).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// No row yet means no drops yet.
		return &models.UserQuota{UserID: userID}, nil
	}
	if err != nil {
		return nil, err
	}
	return &quota, nil
}

// reserveDrop implements check-then-increment under a per-user row lock so
// concurrent drops from the same user serialize and can never both pass the
// limit check. Must run inside a transaction; DropRepository reuses it to
// join the reservation with the message insert.
func reserveDrop(tx *gorm.DB, userID uint, limit int, now time.Time) error {
	// Make sure the row exists so the lock below has something to grab.
	if err := tx.Exec(`
		INSERT INTO user_quotas (user_id, daily_drop_count, created_at, updated_at)
		VALUES (?, 0, NOW(), NOW())
		ON CONFLICT (user_id) DO NOTHING
	`, userID).Error; err != nil {
		return err
	}

	var quota models.UserQuota
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ?", userID).
		First(&quota).Error; err != nil {
		return err
	}

	// Lazy reset: a stale LastDropDate simply counts as zero.
	count := quota.EffectiveCount(now)
	if count >= limit {
		return ErrQuotaExceeded
	}

	return tx.Model(&models.UserQuota{}).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{
			"daily_drop_count": count + 1,
			"last_drop_date":   now.UTC(),
		}).Error
}
