package models

import (
	"time"
)

// VisibilityStatus is the per-user view of a message. Visible is the
// default and is never stored; a row exists only for collected or hidden.
type VisibilityStatus string

const (
	StateVisible   VisibilityStatus = "visible"
	StateCollected VisibilityStatus = "collected"
	StateHidden    VisibilityStatus = "hidden"
)

// VisibilityState holds at most one row per (user, message) pair, enforced
// by the unique index. A pair is therefore never both collected and hidden.
type VisibilityState struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	UserID    uint             `gorm:"not null;uniqueIndex:idx_user_message" json:"user_id"`
	MessageID uint             `gorm:"not null;uniqueIndex:idx_user_message;index" json:"message_id"`
	State     VisibilityStatus `gorm:"type:varchar(10);not null" json:"state"`
	ChangedAt time.Time        `gorm:"not null" json:"changed_at"`
}
