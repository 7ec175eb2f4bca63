package repository

import (
	"time"

	"github.com/nlam511/geo-message/internal/models"
	"gorm.io/gorm"
)

type DropRepository struct {
	db *gorm.DB
}

func NewDropRepository(db *gorm.DB) *DropRepository {
	return &DropRepository{db: db}
}

// ReserveAndCreate consumes one unit of the user's daily quota and persists
// the message in a single transaction. A failed insert rolls the
// reservation back; ErrQuotaExceeded leaves no trace of the attempt.
func (r *DropRepository) ReserveAndCreate(userID uint, limit int, now time.Time, message *models.Message) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := reserveDrop(tx, userID, limit, now); err != nil {
			return err
		}
		return tx.Create(message).Error
	})
}
