package notify

import (
	"context"
	"log"
	"time"

	"github.com/nlam511/geo-message/internal/repository"
)

const (
	defaultInterval = 15 * time.Second
	defaultBatch    = 50
	maxAttempts     = 5
)

// Worker drains the notification outbox. Rows are written inside the
// transactions that cause them (e.g. Collect); the worker picks up whatever
// committed and pushes it to the owner's devices. Delivery is best-effort:
// failures are retried with backoff, then logged and dropped. Nothing here
// ever reaches the user who triggered the notification.
type Worker struct {
	outbox   repository.NotificationRepositoryInterface
	tokens   repository.DeviceTokenRepositoryInterface
	pusher   Pusher
	interval time.Duration
	batch    int
}

func NewWorker(outbox repository.NotificationRepositoryInterface, tokens repository.DeviceTokenRepositoryInterface, pusher Pusher) *Worker {
	return &Worker{
		outbox:   outbox,
		tokens:   tokens,
		pusher:   pusher,
		interval: defaultInterval,
		batch:    defaultBatch,
	}
}

// Run polls the outbox until the context is cancelled.
func (w *Worker) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.drain(time.Now())
		}
	}
}

// drain processes one batch of due notifications.
func (w *Worker) drain(now time.Time) {
	due, err := w.outbox.GetDue(now, w.batch)
	if err != nil {
		log.Printf("notify: failed to load outbox: %v", err)
		return
	}

	for _, note := range due {
		if err := w.deliver(note.UserID, note.Title, note.Body); err != nil {
			attempts := note.Attempts + 1
			if attempts >= maxAttempts {
				log.Printf("notify: giving up on notification %d after %d attempts: %v", note.ID, attempts, err)
				if err := w.outbox.Delete(note.ID); err != nil {
					log.Printf("notify: failed to drop notification %d: %v", note.ID, err)
				}
				continue
			}
			// Exponential backoff: 30s, 1m, 2m, 4m.
			delay := 30 * time.Second << (attempts - 1)
			if err := w.outbox.MarkAttempted(note.ID, attempts, now.Add(delay)); err != nil {
				log.Printf("notify: failed to mark notification %d attempted: %v", note.ID, err)
			}
			continue
		}

		if err := w.outbox.Delete(note.ID); err != nil {
			log.Printf("notify: failed to remove delivered notification %d: %v", note.ID, err)
		}
	}
}

// deliver pushes to every device the recipient has registered. A user with
// no tokens counts as delivered; there is nowhere to send.
func (w *Worker) deliver(userID uint, title, body string) error {
	tokens, err := w.tokens.ListByUser(userID)
	if err != nil {
		return err
	}

	var lastErr error
	for _, token := range tokens {
		if err := w.pusher.Push(token, title, body); err != nil {
			log.Printf("notify: push to user %d failed: %v", userID, err)
			lastErr = err
		}
	}
	return lastErr
}
