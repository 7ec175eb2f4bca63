package service

import (
	"fmt"
	"time"

	"github.com/nlam511/geo-message/internal/cache"
	"github.com/nlam511/geo-message/internal/models"
	"github.com/nlam511/geo-message/internal/repository"
)

// CollectionService owns the visibility transitions for a (user, message)
// pair: Visible -> Collected, Collected -> Visible, {Visible,Collected} ->
// Hidden. The state rows themselves live in the visibility repository; this
// layer adds the message-existence check, the owner notification and the
// exclusion-cache invalidation.
type CollectionService struct {
	messageRepo    repository.MessageRepositoryInterface
	visibilityRepo repository.VisibilityRepositoryInterface
	visCache       *cache.VisibilityCache
}

func NewCollectionService(
	messageRepo repository.MessageRepositoryInterface,
	visibilityRepo repository.VisibilityRepositoryInterface,
	visCache *cache.VisibilityCache,
) *CollectionService {
	return &CollectionService{
		messageRepo:    messageRepo,
		visibilityRepo: visibilityRepo,
		visCache:       visCache,
	}
}

// Collect claims a message for the user. Returns repository.ErrNotFound for
// an unknown message and repository.ErrAlreadyCollected on a duplicate.
// The owner's push notification is only enqueued (transactional outbox);
// dispatch happens in the notify worker and can never fail a Collect.
func (s *CollectionService) Collect(userID, messageID uint, now time.Time) error {
	message, err := s.messageRepo.FindByID(messageID)
	if err != nil {
		return err
	}

	var note *models.PendingNotification
	if message.OwnerID != userID {
		note = &models.PendingNotification{
			UserID:      message.OwnerID,
			Title:       "Message collected!",
			Body:        fmt.Sprintf("Someone collected your message %q", preview(message.Text)),
			NextAttempt: now,
		}
	}

	if err := s.visibilityRepo.Collect(userID, messageID, now, note); err != nil {
		return err
	}

	_ = s.visCache.InvalidateExcluded(userID)
	return nil
}

// Uncollect returns a collected message to the user's feed. Uncollecting a
// message that was never collected is a no-op, not an error.
func (s *CollectionService) Uncollect(userID, messageID uint) error {
	if err := s.visibilityRepo.ClearCollected(userID, messageID); err != nil {
		return err
	}
	_ = s.visCache.InvalidateExcluded(userID)
	return nil
}

// Hide suppresses a message from the user's feed, dropping any collected
// state for the pair in the same atomic statement. Idempotent.
func (s *CollectionService) Hide(userID, messageID uint, now time.Time) error {
	if err := s.visibilityRepo.Hide(userID, messageID, now); err != nil {
		return err
	}
	_ = s.visCache.InvalidateExcluded(userID)
	return nil
}

// ListCollected returns the user's collected messages, most recently
// collected first.
func (s *CollectionService) ListCollected(userID uint) ([]repository.CollectedMessageRow, error) {
	return s.visibilityRepo.ListCollected(userID)
}

// State reports the user's current view of a message.
func (s *CollectionService) State(userID, messageID uint) (models.VisibilityStatus, error) {
	return s.visibilityRepo.Get(userID, messageID)
}

func preview(text string) string {
	const max = 40
	if len(text) <= max {
		return text
	}
	return text[:max] + "..."
}
