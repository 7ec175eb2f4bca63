package service

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nlam511/geo-message/internal/geo"
	"github.com/nlam511/geo-message/internal/models"
	"github.com/nlam511/geo-message/internal/repository"
	"github.com/nlam511/geo-message/internal/spatial"
	"github.com/nlam511/geo-message/internal/validation"
)

// DropService coordinates dropping a message: payload validation, quota
// reservation and message creation. Quota and message commit or roll back
// together inside the drop repository.
type DropService struct {
	dropRepo repository.DropRepositoryInterface
	grid     spatial.Grid
}

func NewDropService(dropRepo repository.DropRepositoryInterface, grid spatial.Grid) *DropService {
	return &DropService{dropRepo: dropRepo, grid: grid}
}

type DropInput struct {
	Text      string  `json:"text"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func (s *DropService) Drop(userID uint, tier models.SubscriptionTier, input DropInput, now time.Time) (*models.Message, error) {
	text := validation.TrimAndLimit(input.Text, validation.MaxMessageLength())
	if text == "" {
		return nil, fmt.Errorf("%w: text is required", ErrValidation)
	}
	if !validation.ValidateLatitude(input.Latitude) {
		return nil, fmt.Errorf("%w: latitude out of range", ErrValidation)
	}
	if !validation.ValidateLongitude(input.Longitude) {
		return nil, fmt.Errorf("%w: longitude out of range", ErrValidation)
	}

	message := &models.Message{
		UUID:      uuid.NewString(),
		OwnerID:   userID,
		Text:      text,
		Latitude:  input.Latitude,
		Longitude: input.Longitude,
		Cell:      s.grid.Cell(geo.Point{Latitude: input.Latitude, Longitude: input.Longitude}),
	}

	limit := models.DropLimit(tier)
	if err := s.dropRepo.ReserveAndCreate(userID, limit, now, message); err != nil {
		return nil, err
	}

	return message, nil
}
