package models

import (
	"time"
)

// DeviceToken is an Expo push token registered by a client device. A token
// belongs to exactly one user; re-registering an existing token moves it.
type DeviceToken struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	UserID uint   `gorm:"not null;index" json:"user_id"`
	Token  string `gorm:"uniqueIndex;not null" json:"token"`
}
