package repository

import (
	"errors"
	"time"

	"github.com/nlam511/geo-message/internal/models"
	"gorm.io/gorm"
)

type VisibilityRepository struct {
	db *gorm.DB
}

func NewVisibilityRepository(db *gorm.DB) *VisibilityRepository {
	return &VisibilityRepository{db: db}
}

// Get returns the stored state for a pair, or StateVisible when no row
// exists (the default).
func (r *VisibilityRepository) Get(userID, messageID uint) (models.VisibilityStatus, error) {
	var state models.VisibilityState
	err := r.db.Where("user_id = ? AND message_id = ?", userID, messageID).First(&state).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.StateVisible, nil
	}
	if err != nil {
		return "", err
	}
	return state.State, nil
}

// Collect marks the pair collected and, when note is non-nil, enqueues the
// owner notification in the same transaction (transactional outbox: the row
// only exists if the collect committed).
//
// The upsert relies on the unique (user_id, message_id) index: of N
// concurrent collects exactly one statement affects a row, the rest see
// zero rows and report ErrAlreadyCollected. A hidden row is converted to
// collected in place, which keeps the one-row-per-pair invariant and allows
// collecting a message that was previously hidden.
func (r *VisibilityRepository) Collect(userID, messageID uint, now time.Time, note *models.PendingNotification) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Exec(`
			INSERT INTO visibility_states (user_id, message_id, state, changed_at, created_at, updated_at)
			VALUES (?, ?, ?, ?, NOW(), NOW())
			ON CONFLICT (user_id, message_id) DO UPDATE
			SET state = EXCLUDED.state, changed_at = EXCLUDED.changed_at, updated_at = NOW()
			WHERE visibility_states.state <> EXCLUDED.state
		`, userID, messageID, models.StateCollected, now.UTC())
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrAlreadyCollected
		}
		if note != nil {
			return tx.Create(note).Error
		}
		return nil
	})
}

// ClearCollected removes a collected row if present. Clearing a pair that
// was never collected (or is hidden) is a no-op, not an error.
func (r *VisibilityRepository) ClearCollected(userID, messageID uint) error {
	return r.db.
		Where("user_id = ? AND message_id = ? AND state = ?", userID, messageID, models.StateCollected).
		Delete(&models.VisibilityState{}).Error
}

// Hide upserts the pair to hidden. Because the pair is unique, flipping a
// collected row to hidden is the required "upsert hidden + delete
// collected" as one atomic statement. Hiding twice leaves the same end
// state; the guard clause keeps the second call from touching the row.
func (r *VisibilityRepository) Hide(userID, messageID uint, now time.Time) error {
	return r.db.Exec(`
		INSERT INTO visibility_states (user_id, message_id, state, changed_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, NOW(), NOW())
		ON CONFLICT (user_id, message_id) DO UPDATE
		SET state = EXCLUDED.state, changed_at = EXCLUDED.changed_at, updated_at = NOW()
		WHERE visibility_states.state <> EXCLUDED.state
	`, userID, messageID, models.StateHidden, now.UTC()).Error
}

// ListExcludedIDs returns every message ID the user has collected or
// hidden, in one query. Nearby filtering subtracts this as a set instead of
// probing state per candidate.
func (r *VisibilityRepository) ListExcludedIDs(userID uint) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&models.VisibilityState{}).
		Where("user_id = ?", userID).
		Pluck("message_id", &ids).Error
	return ids, err
}

// CollectedMessageRow is one entry of a user's collected list, joined with
// the message and its owner's display fields.
type CollectedMessageRow struct {
	MessageID     uint      `json:"message_id"`
	UUID          string    `json:"uuid"`
	Text          string    `json:"text"`
	Latitude      float64   `json:"latitude"`
	Longitude     float64   `json:"longitude"`
	OwnerID       uint      `json:"owner_id"`
	OwnerUsername string    `json:"owner_username"`
	OwnerAvatar   string    `json:"owner_avatar"`
	CreatedAt     time.Time `json:"created_at"`
	CollectedAt   time.Time `json:"collected_at"`
}

func (r *VisibilityRepository) ListCollected(userID uint) ([]CollectedMessageRow, error) {
	var rows []CollectedMessageRow
	err := r.db.Raw(`
		SELECT m.id AS message_id, m.uuid, m.text, m.latitude, m.longitude, m.created_at,
		       u.id AS owner_id, u.username AS owner_username, u.avatar AS owner_avatar,
		       vs.changed_at AS collected_at
		FROM visibility_states vs
		JOIN messages m ON m.id = vs.message_id
		JOIN users u ON u.id = m.owner_id
		WHERE vs.user_id = ? AND vs.state = ?
		ORDER BY vs.changed_at DESC
	`, userID, models.StateCollected).Scan(&rows).Error
	if rows == nil {
		rows = []CollectedMessageRow{}
	}
	return rows, err
}
