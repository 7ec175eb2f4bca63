package repository

import (
	"time"

	"github.com/nlam511/geo-message/internal/models"
)

// UserRepositoryInterface defines the contract for user repository operations
type UserRepositoryInterface interface {
	Create(user *models.User) error
	FindByEmail(email string) (*models.User, error)
	FindByUsername(username string) (*models.User, error)
	FindByID(id uint) (*models.User, error)
}

// MessageRepositoryInterface defines the contract for message repository operations.
// Messages are immutable: there are no update or delete operations.
type MessageRepositoryInterface interface {
	Create(message *models.Message) error
	FindByID(id uint) (*models.Message, error)
	FindByIDs(ids []uint) ([]models.Message, error)
}

// DropRepositoryInterface reserves quota and creates the message as one
// transaction; if either side fails, neither is persisted.
type DropRepositoryInterface interface {
	ReserveAndCreate(userID uint, limit int, now time.Time, message *models.Message) error
}

// QuotaRepositoryInterface defines the contract for daily drop quota operations
type QuotaRepositoryInterface interface {
	CheckAndReserveDrop(userID uint, limit int, now time.Time) error
	Get(userID uint) (*models.UserQuota, error)
}

// VisibilityRepositoryInterface defines the contract for per-(user, message)
// visibility state operations
type VisibilityRepositoryInterface interface {
	Get(userID, messageID uint) (models.VisibilityStatus, error)
	Collect(userID, messageID uint, now time.Time, note *models.PendingNotification) error
	ClearCollected(userID, messageID uint) error
	Hide(userID, messageID uint, now time.Time) error
	ListExcludedIDs(userID uint) ([]uint, error)
	ListCollected(userID uint) ([]CollectedMessageRow, error)
}

// DeviceTokenRepositoryInterface defines the contract for push token storage
type DeviceTokenRepositoryInterface interface {
	Upsert(userID uint, token string) error
	ListByUser(userID uint) ([]string, error)
}

// NotificationRepositoryInterface defines the contract for the push
// notification outbox
type NotificationRepositoryInterface interface {
	Enqueue(note *models.PendingNotification) error
	GetDue(now time.Time, limit int) ([]models.PendingNotification, error)
	MarkAttempted(id uint, attempts int, nextAttempt time.Time) error
	Delete(id uint) error
}
