package service

import (
	"errors"
)

// ErrValidation marks malformed input rejected before touching storage.
// Wrapped errors carry the specific reason; handlers branch with errors.Is.
var ErrValidation = errors.New("invalid input")
