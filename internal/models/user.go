package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Username     string           `gorm:"uniqueIndex;not null" json:"username"`
	Email        string           `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string           `gorm:"not null" json:"-"`
	Avatar       string           `json:"avatar"`
	Tier         SubscriptionTier `gorm:"type:varchar(10);not null;default:FREE" json:"tier"`

	Messages []Message `gorm:"foreignKey:OwnerID" json:"-"`
}

type UserResponse struct {
	ID       uint             `json:"id"`
	Username string           `json:"username"`
	Email    string           `json:"email"`
	Avatar   string           `json:"avatar"`
	Tier     SubscriptionTier `json:"tier"`
}

// OwnerDisplay is the subset of a user shown to other users next to
// their messages.
type OwnerDisplay struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Avatar   string `json:"avatar"`
}

func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		Avatar:   u.Avatar,
		Tier:     u.Tier,
	}
}

func (u *User) ToDisplay() OwnerDisplay {
	return OwnerDisplay{
		ID:       u.ID,
		Username: u.Username,
		Avatar:   u.Avatar,
	}
}
