package entities

import (
	"errors"
	"fmt"
	"time"
)

// Business-rule failures. These reach the user as-is and imply no state was
// changed by the rejected operation.
var (
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrCooldownActive    = errors.New("cooldown active")
	ErrSessionInProgress = errors.New("a game session is already in progress")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrExpired           = errors.New("expired")
	ErrNotFound          = errors.New("not found")
)

// CooldownError carries how long until the action is available again. It
// unwraps to ErrCooldownActive for errors.Is checks.
type CooldownError struct {
	Remaining time.Duration
}

func (e *CooldownError) Error() string {
	return fmt.Sprintf("cooldown active for another %s", e.Remaining.Round(time.Second))
}

func (e *CooldownError) Unwrap() error {
	return ErrCooldownActive
}

// ValidationError marks an operation rejected before any mutation because of
// a bad argument. The message is safe to show to the user.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError creates a ValidationError with a user-facing message.
func NewValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
