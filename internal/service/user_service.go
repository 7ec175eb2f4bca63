package service

import (
	"time"

	"github.com/nlam511/geo-message/internal/models"
	"github.com/nlam511/geo-message/internal/repository"
)

type UserService struct {
	userRepo  repository.UserRepositoryInterface
	quotaRepo repository.QuotaRepositoryInterface
}

func NewUserService(userRepo repository.UserRepositoryInterface, quotaRepo repository.QuotaRepositoryInterface) *UserService {
	return &UserService{userRepo: userRepo, quotaRepo: quotaRepo}
}

func (s *UserService) GetUserByID(userID uint) (*models.User, error) {
	return s.userRepo.FindByID(userID)
}

type QuotaStatus struct {
	Tier      models.SubscriptionTier `json:"tier"`
	Limit     int                     `json:"limit"`
	Used      int                     `json:"used"`
	Remaining int                     `json:"remaining"`
}

// GetQuota reports how many drops the user has left today. Read-only; the
// lazy daily reset shows through EffectiveCount without writing anything.
func (s *UserService) GetQuota(userID uint, tier models.SubscriptionTier, now time.Time) (*QuotaStatus, error) {
	quota, err := s.quotaRepo.Get(userID)
	if err != nil {
		return nil, err
	}

	limit := models.DropLimit(tier)
	used := quota.EffectiveCount(now)
	remaining := limit - used
	if remaining < 0 {
		remaining = 0
	}

	return &QuotaStatus{
		Tier:      tier,
		Limit:     limit,
		Used:      used,
		Remaining: remaining,
	}, nil
}
