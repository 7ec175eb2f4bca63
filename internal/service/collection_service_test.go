package service

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/nlam511/geo-message/internal/cache"
	"github.com/nlam511/geo-message/internal/models"
	"github.com/nlam511/geo-message/internal/repository"
	"github.com/nlam511/geo-message/internal/testutil"
)

func newCollectionForTest(messageRepo *MockMessageRepository, visibilityRepo *MockVisibilityRepository) *CollectionService {
	return NewCollectionService(messageRepo, visibilityRepo, cache.NewVisibilityCache(nil))
}

func TestCollectSuccess(t *testing.T) {
	helper := testutil.NewTestHelper(t)
	message := helper.CreateTestMessage(10, 2, "meet me at the fountain")
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	var gotNote *models.PendingNotification
	messageRepo := &MockMessageRepository{
		FindByIDFunc: func(id uint) (*models.Message, error) {
			if id != 10 {
				t.Errorf("FindByID got %d, want 10", id)
			}
			return message, nil
		},
	}
	visibilityRepo := &MockVisibilityRepository{
		CollectFunc: func(userID, messageID uint, _ time.Time, note *models.PendingNotification) error {
			if userID != 7 || messageID != 10 {
				t.Errorf("Collect got (%d, %d), want (7, 10)", userID, messageID)
			}
			gotNote = note
			return nil
		},
	}

	svc := newCollectionForTest(messageRepo, visibilityRepo)
	if err := svc.Collect(7, 10, now); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotNote == nil {
		t.Fatal("expected an owner notification to be enqueued")
	}
	if gotNote.UserID != 2 {
		t.Errorf("notification for user %d, want the owner 2", gotNote.UserID)
	}
	if !strings.Contains(gotNote.Body, "meet me at the fountain") {
		t.Errorf("notification body %q does not mention the message", gotNote.Body)
	}
	if !gotNote.NextAttempt.Equal(now) {
		t.Errorf("NextAttempt = %v, want due immediately", gotNote.NextAttempt)
	}
}

func TestCollectOwnMessageSkipsNotification(t *testing.T) {
	helper := testutil.NewTestHelper(t)
	message := helper.CreateTestMessage(10, 7, "")

	var gotNote *models.PendingNotification
	noteSet := false
	messageRepo := &MockMessageRepository{
		FindByIDFunc: func(id uint) (*models.Message, error) { return message, nil },
	}
	visibilityRepo := &MockVisibilityRepository{
		CollectFunc: func(_, _ uint, _ time.Time, note *models.PendingNotification) error {
			gotNote = note
			noteSet = true
			return nil
		},
	}

	svc := newCollectionForTest(messageRepo, visibilityRepo)
	if err := svc.Collect(7, 10, time.Now()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !noteSet {
		t.Fatal("Collect was not called")
	}
	if gotNote != nil {
		t.Errorf("notification %+v enqueued for collecting one's own message", gotNote)
	}
}

func TestCollectTruncatesLongPreview(t *testing.T) {
	helper := testutil.NewTestHelper(t)
	longText := strings.Repeat("x", 120)
	message := helper.CreateTestMessage(10, 2, longText)

	var gotNote *models.PendingNotification
	messageRepo := &MockMessageRepository{
		FindByIDFunc: func(id uint) (*models.Message, error) { return message, nil },
	}
	visibilityRepo := &MockVisibilityRepository{
		CollectFunc: func(_, _ uint, _ time.Time, note *models.PendingNotification) error {
			gotNote = note
			return nil
		},
	}

	svc := newCollectionForTest(messageRepo, visibilityRepo)
	if err := svc.Collect(7, 10, time.Now()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotNote == nil {
		t.Fatal("expected a notification")
	}
	if strings.Contains(gotNote.Body, longText) {
		t.Errorf("notification body carries the full %d-char text", len(longText))
	}
	if !strings.Contains(gotNote.Body, "...") {
		t.Errorf("notification body %q missing truncation marker", gotNote.Body)
	}
}

func TestCollectMessageNotFound(t *testing.T) {
	collectCalled := false
	messageRepo := &MockMessageRepository{
		FindByIDFunc: func(id uint) (*models.Message, error) {
			return nil, repository.ErrNotFound
		},
	}
	visibilityRepo := &MockVisibilityRepository{
		CollectFunc: func(_, _ uint, _ time.Time, _ *models.PendingNotification) error {
			collectCalled = true
			return nil
		},
	}

	svc := newCollectionForTest(messageRepo, visibilityRepo)
	err := svc.Collect(7, 999, time.Now())
	if !repository.IsNotFound(err) {
		t.Errorf("error = %v, want not found", err)
	}
	if collectCalled {
		t.Error("visibility row written for a missing message")
	}
}

func TestCollectDuplicate(t *testing.T) {
	helper := testutil.NewTestHelper(t)
	message := helper.CreateTestMessage(10, 2, "")

	messageRepo := &MockMessageRepository{
		FindByIDFunc: func(id uint) (*models.Message, error) { return message, nil },
	}
	visibilityRepo := &MockVisibilityRepository{
		CollectFunc: func(_, _ uint, _ time.Time, _ *models.PendingNotification) error {
			return repository.ErrAlreadyCollected
		},
	}

	svc := newCollectionForTest(messageRepo, visibilityRepo)
	err := svc.Collect(7, 10, time.Now())
	if !errors.Is(err, repository.ErrAlreadyCollected) {
		t.Errorf("error = %v, want ErrAlreadyCollected", err)
	}
}

func TestUncollect(t *testing.T) {
	var gotUserID, gotMessageID uint
	visibilityRepo := &MockVisibilityRepository{
		ClearCollectedFunc: func(userID, messageID uint) error {
			gotUserID, gotMessageID = userID, messageID
			return nil
		},
	}

	svc := newCollectionForTest(&MockMessageRepository{}, visibilityRepo)
	if err := svc.Uncollect(7, 10); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotUserID != 7 || gotMessageID != 10 {
		t.Errorf("ClearCollected got (%d, %d), want (7, 10)", gotUserID, gotMessageID)
	}
}

func TestHide(t *testing.T) {
	var gotUserID, gotMessageID uint
	visibilityRepo := &MockVisibilityRepository{
		HideFunc: func(userID, messageID uint, _ time.Time) error {
			gotUserID, gotMessageID = userID, messageID
			return nil
		},
	}

	svc := newCollectionForTest(&MockMessageRepository{}, visibilityRepo)
	if err := svc.Hide(7, 10, time.Now()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotUserID != 7 || gotMessageID != 10 {
		t.Errorf("Hide got (%d, %d), want (7, 10)", gotUserID, gotMessageID)
	}
}

func TestState(t *testing.T) {
	tests := []struct {
		name   string
		stored models.VisibilityStatus
	}{
		{"No row means visible", models.StateVisible},
		{"Collected", models.StateCollected},
		{"Hidden", models.StateHidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			visibilityRepo := &MockVisibilityRepository{
				GetFunc: func(userID, messageID uint) (models.VisibilityStatus, error) {
					return tt.stored, nil
				},
			}
			svc := newCollectionForTest(&MockMessageRepository{}, visibilityRepo)

			got, err := svc.State(7, 10)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.stored {
				t.Errorf("State = %q, want %q", got, tt.stored)
			}
		})
	}
}

func TestListCollected(t *testing.T) {
	rows := []repository.CollectedMessageRow{
		{MessageID: 2, Text: "second", OwnerUsername: "a"},
		{MessageID: 1, Text: "first", OwnerUsername: "b"},
	}
	visibilityRepo := &MockVisibilityRepository{
		ListCollectedFunc: func(userID uint) ([]repository.CollectedMessageRow, error) {
			return rows, nil
		},
	}

	svc := newCollectionForTest(&MockMessageRepository{}, visibilityRepo)
	got, err := svc.ListCollected(7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 || got[0].MessageID != 2 {
		t.Errorf("ListCollected = %+v, want the repository rows in order", got)
	}
}
