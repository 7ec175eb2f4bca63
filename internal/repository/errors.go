package repository

import (
	"errors"

	"gorm.io/gorm"
)

// Stable error kinds surfaced to handlers for client-side branching. Any
// other error from this package is a persistence failure: logged with
// context by the caller, returned to the client as a generic 500.
var (
	ErrNotFound         = errors.New("record not found")
	ErrAlreadyCollected = errors.New("message already collected")
	ErrQuotaExceeded    = errors.New("daily drop limit reached")
)

// IsNotFound folds gorm's sentinel into ours so callers branch on one kind.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, gorm.ErrRecordNotFound)
}
