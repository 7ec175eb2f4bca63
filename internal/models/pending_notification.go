package models

import (
	"time"
)

// PendingNotification is an outbox row for a push notification. It is
// inserted in the same transaction as the state change that caused it and
// dispatched later by the notify worker, so delivery failures can never
// affect the originating request.
type PendingNotification struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	UserID uint   `gorm:"not null;index" json:"user_id"` // recipient
	Title  string `gorm:"not null" json:"title"`
	Body   string `gorm:"type:text;not null" json:"body"`

	Attempts    int        `gorm:"default:0" json:"attempts"`
	LastAttempt *time.Time `json:"last_attempt"`
	NextAttempt time.Time  `gorm:"not null;index" json:"next_attempt"`
}
