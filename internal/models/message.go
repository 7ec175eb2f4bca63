package models

import (
	"time"

	"gorm.io/gorm"
)

type Message struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Public identifier handed to clients alongside the numeric ID.
	UUID string `gorm:"type:varchar(36);uniqueIndex;not null" json:"uuid"`

	OwnerID uint `gorm:"not null;index" json:"owner_id"`
	Owner   User `gorm:"foreignKey:OwnerID" json:"owner"`

	Text      string  `gorm:"type:text;not null" json:"text"`
	Latitude  float64 `gorm:"not null" json:"latitude"`
	Longitude float64 `gorm:"not null" json:"longitude"`

	// Grid bucket key, stamped at creation so proximity queries can
	// pre-filter on an indexed column instead of scanning every row.
	Cell string `gorm:"type:varchar(32);not null;index" json:"-"`
}

type MessageResponse struct {
	ID        uint         `json:"id"`
	UUID      string       `json:"uuid"`
	OwnerID   uint         `json:"owner_id"`
	Owner     OwnerDisplay `json:"owner"`
	Text      string       `json:"text"`
	Latitude  float64      `json:"latitude"`
	Longitude float64      `json:"longitude"`
	CreatedAt time.Time    `json:"created_at"`
}

func (m *Message) ToResponse() MessageResponse {
	return MessageResponse{
		ID:        m.ID,
		UUID:      m.UUID,
		OwnerID:   m.OwnerID,
		Owner:     m.Owner.ToDisplay(),
		Text:      m.Text,
		Latitude:  m.Latitude,
		Longitude: m.Longitude,
		CreatedAt: m.CreatedAt,
	}
}
