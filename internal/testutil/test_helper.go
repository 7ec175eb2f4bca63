package testutil

import (
	"os"
	"testing"
	"time"

	"github.com/nlam511/geo-message/internal/models"
)

// TestHelper provides utility functions for tests
type TestHelper struct {
	t *testing.T
}

func NewTestHelper(t *testing.T) *TestHelper {
	return &TestHelper{t: t}
}

// CreateTestUser creates a test user with default values
func (h *TestHelper) CreateTestUser(id uint, username, email string) *models.User {
	if id == 0 {
		id = 1
	}
	if username == "" {
		username = "testuser"
	}
	if email == "" {
		email = "test@example.com"
	}

	return &models.User{
		ID:           id,
		Username:     username,
		Email:        email,
		PasswordHash: "hashed_password_123",
		Avatar:       "fox",
		Tier:         models.TierFree,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
}

// CreateTestMessage creates a test message pinned near the default spot
func (h *TestHelper) CreateTestMessage(id uint, ownerID uint, text string) *models.Message {
	if id == 0 {
		id = 1
	}
	if ownerID == 0 {
		ownerID = 1
	}
	if text == "" {
		text = "Test message"
	}

	return &models.Message{
		ID:        id,
		UUID:      "00000000-0000-0000-0000-000000000001",
		OwnerID:   ownerID,
		Text:      text,
		Latitude:  40.005,
		Longitude: -73.995,
		Cell:      "-7400:4000",
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
		Owner: models.User{
			ID:       ownerID,
			Username: "owner",
			Email:    "owner@example.com",
		},
	}
}

// SetupTestEnv sets up required environment variables for testing
func (h *TestHelper) SetupTestEnv() {
	os.Setenv("JWT_SECRET", "test-secret-key-for-testing-only")
	os.Setenv("PASSWORD_MIN_LENGTH", "10")
}

// TeardownTestEnv cleans up environment variables after testing
func (h *TestHelper) TeardownTestEnv() {
	os.Unsetenv("JWT_SECRET")
	os.Unsetenv("PASSWORD_MIN_LENGTH")
}

// AssertError checks if an error occurred when it should (or shouldn't)
func (h *TestHelper) AssertError(err error, shouldErr bool, testName string) {
	if (err != nil) != shouldErr {
		if shouldErr {
			h.t.Errorf("%s: expected error but got nil", testName)
		} else {
			h.t.Errorf("%s: unexpected error: %v", testName, err)
		}
	}
}

// AssertEqual checks if two values are equal
func (h *TestHelper) AssertEqual(got, want interface{}, testName string) {
	if got != want {
		h.t.Errorf("%s: got %v, want %v", testName, got, want)
	}
}
