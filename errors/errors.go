package errors

import (
	"errors"
	"fmt"
)

var (
	ErrWorkerPanic    = fmt.Errorf("worker panic")
	ErrInvalidPayload = fmt.Errorf("invalid payload")

	ErrInvalidAmount                     = fmt.Errorf("amount must be positive")
	ErrDuplicateAccount                  = fmt.Errorf("account already exists")
	ErrAccountNotFound                   = fmt.Errorf("account not found")
	ErrInsufficientFundsOrUnknownAccount = fmt.Errorf("insufficient funds or unknown account")
	// ErrDestinationUnavailable is always compensated before it reaches a caller,
	// and only ever travels wrapped under ErrInsufficientFundsOrUnknownAccount.
	ErrDestinationUnavailable = fmt.Errorf("destination account unavailable")
	ErrNotificationQueueFull  = fmt.Errorf("notification queue is full")

	ErrInvalidPassword     = fmt.Errorf("password must mix upper and lower case letters, digits and symbols")
	ErrInvalidPasswordHash = fmt.Errorf("invalid password hash")
	ErrInvalidCredentials  = fmt.Errorf("invalid credentials")
	ErrInvalidToken        = fmt.Errorf("invalid or expired token")
)

// Is mirrors the standard errors.Is so callers don't need both packages.
func Is(err, target error) bool {
	return errors.Is(err, target)
}
