package repository

import (
	"errors"

	"github.com/nlam511/geo-message/internal/models"
	"gorm.io/gorm"
)

type MessageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

func (r *MessageRepository) Create(message *models.Message) error {
	return r.db.Create(message).Error
}

func (r *MessageRepository) FindByID(id uint) (*models.Message, error) {
	var message models.Message
	err := r.db.Preload("Owner").First(&message, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &message, nil
}

func (r *MessageRepository) FindByIDs(ids []uint) ([]models.Message, error) {
	if len(ids) == 0 {
		return []models.Message{}, nil
	}
	var messages []models.Message
	err := r.db.Preload("Owner").Where("id IN ?", ids).Find(&messages).Error
	return messages, err
}
