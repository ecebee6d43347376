// Package apperr defines the domain error taxonomy. Handlers translate
// these sentinels into HTTP statuses; services never touch status codes.
package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation covers missing or malformed request fields.
	ErrValidation = errors.New("invalid input data")
	// ErrDuplicateEmail is returned when an email is already registered
	// (case-insensitive comparison).
	ErrDuplicateEmail = errors.New("an account with this email already exists")
	// ErrInvalidCredentials is returned for unknown emails and wrong
	// passwords alike. Never reveals which one it was.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrPendingApproval is returned when a pending account attempts to
	// log in. Kept distinct from ErrInvalidCredentials so legitimate
	// users waiting for review are not confused with typos.
	ErrPendingApproval = errors.New("account is pending admin approval")
	// ErrNotFound is returned when the referenced record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrNotPending is returned when a verification transition targets an
	// account that is no longer pending.
	ErrNotPending = errors.New("account is not pending verification")
	// ErrUpload is returned when storing an uploaded file fails.
	ErrUpload = errors.New("file upload failed")
)

// Validation wraps ErrValidation with field-level detail.
func Validation(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
