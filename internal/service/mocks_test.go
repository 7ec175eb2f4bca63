package service

import (
	"errors"
	"time"

	"github.com/nlam511/geo-message/internal/geo"
	"github.com/nlam511/geo-message/internal/models"
	"github.com/nlam511/geo-message/internal/repository"
)

// Hand-rolled mocks shared by the service tests. Each method delegates to a
// function field so individual tests only wire what they use.

type MockUserRepository struct {
	CreateFunc         func(user *models.User) error
	FindByEmailFunc    func(email string) (*models.User, error)
	FindByUsernameFunc func(username string) (*models.User, error)
	FindByIDFunc       func(id uint) (*models.User, error)
}

func (m *MockUserRepository) Create(user *models.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(user)
	}
	return nil
}

func (m *MockUserRepository) FindByEmail(email string) (*models.User, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(email)
	}
	return nil, repository.ErrNotFound
}

func (m *MockUserRepository) FindByUsername(username string) (*models.User, error) {
	if m.FindByUsernameFunc != nil {
		return m.FindByUsernameFunc(username)
	}
	return nil, repository.ErrNotFound
}

func (m *MockUserRepository) FindByID(id uint) (*models.User, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(id)
	}
	return nil, repository.ErrNotFound
}

type MockMessageRepository struct {
	CreateFunc    func(message *models.Message) error
	FindByIDFunc  func(id uint) (*models.Message, error)
	FindByIDsFunc func(ids []uint) ([]models.Message, error)
}

func (m *MockMessageRepository) Create(message *models.Message) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(message)
	}
	return nil
}

func (m *MockMessageRepository) FindByID(id uint) (*models.Message, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(id)
	}
	return nil, repository.ErrNotFound
}

func (m *MockMessageRepository) FindByIDs(ids []uint) ([]models.Message, error) {
	if m.FindByIDsFunc != nil {
		return m.FindByIDsFunc(ids)
	}
	return []models.Message{}, nil
}

type MockDropRepository struct {
	ReserveAndCreateFunc func(userID uint, limit int, now time.Time, message *models.Message) error
}

func (m *MockDropRepository) ReserveAndCreate(userID uint, limit int, now time.Time, message *models.Message) error {
	if m.ReserveAndCreateFunc != nil {
		return m.ReserveAndCreateFunc(userID, limit, now, message)
	}
	return nil
}

type MockQuotaRepository struct {
	CheckAndReserveDropFunc func(userID uint, limit int, now time.Time) error
	GetFunc                 func(userID uint) (*models.UserQuota, error)
}

func (m *MockQuotaRepository) CheckAndReserveDrop(userID uint, limit int, now time.Time) error {
	if m.CheckAndReserveDropFunc != nil {
		return m.CheckAndReserveDropFunc(userID, limit, now)
	}
	return nil
}

func (m *MockQuotaRepository) Get(userID uint) (*models.UserQuota, error) {
	if m.GetFunc != nil {
		return m.GetFunc(userID)
	}
	return &models.UserQuota{UserID: userID}, nil
}

type MockVisibilityRepository struct {
	GetFunc            func(userID, messageID uint) (models.VisibilityStatus, error)
	CollectFunc        func(userID, messageID uint, now time.Time, note *models.PendingNotification) error
	ClearCollectedFunc func(userID, messageID uint) error
	HideFunc           func(userID, messageID uint, now time.Time) error
	ListExcludedFunc   func(userID uint) ([]uint, error)
	ListCollectedFunc  func(userID uint) ([]repository.CollectedMessageRow, error)
}

func (m *MockVisibilityRepository) Get(userID, messageID uint) (models.VisibilityStatus, error) {
	if m.GetFunc != nil {
		return m.GetFunc(userID, messageID)
	}
	return models.StateVisible, nil
}

func (m *MockVisibilityRepository) Collect(userID, messageID uint, now time.Time, note *models.PendingNotification) error {
	if m.CollectFunc != nil {
		return m.CollectFunc(userID, messageID, now, note)
	}
	return nil
}

func (m *MockVisibilityRepository) ClearCollected(userID, messageID uint) error {
	if m.ClearCollectedFunc != nil {
		return m.ClearCollectedFunc(userID, messageID)
	}
	return nil
}

func (m *MockVisibilityRepository) Hide(userID, messageID uint, now time.Time) error {
	if m.HideFunc != nil {
		return m.HideFunc(userID, messageID, now)
	}
	return nil
}

func (m *MockVisibilityRepository) ListExcludedIDs(userID uint) ([]uint, error) {
	if m.ListExcludedFunc != nil {
		return m.ListExcludedFunc(userID)
	}
	return []uint{}, nil
}

func (m *MockVisibilityRepository) ListCollected(userID uint) ([]repository.CollectedMessageRow, error) {
	if m.ListCollectedFunc != nil {
		return m.ListCollectedFunc(userID)
	}
	return []repository.CollectedMessageRow{}, nil
}

type MockDeviceTokenRepository struct {
	UpsertFunc     func(userID uint, token string) error
	ListByUserFunc func(userID uint) ([]string, error)
}

func (m *MockDeviceTokenRepository) Upsert(userID uint, token string) error {
	if m.UpsertFunc != nil {
		return m.UpsertFunc(userID, token)
	}
	return nil
}

func (m *MockDeviceTokenRepository) ListByUser(userID uint) ([]string, error) {
	if m.ListByUserFunc != nil {
		return m.ListByUserFunc(userID)
	}
	return []string{}, nil
}

type MockSpatialIndex struct {
	QueryWithinFunc func(center geo.Point, radiusM float64) ([]uint, error)
}

func (m *MockSpatialIndex) QueryWithin(center geo.Point, radiusM float64) ([]uint, error) {
	if m.QueryWithinFunc != nil {
		return m.QueryWithinFunc(center, radiusM)
	}
	return []uint{}, nil
}

var errDatabase = errors.New("database error")
