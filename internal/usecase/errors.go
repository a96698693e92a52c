package usecase

import "github.com/thearchitech/waitlist-api/internal/entity"

type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func IsDomainError(err error) bool {
	_, ok := err.(*DomainError)
	return ok
}

// ConflictError means the email already has an entry. It carries the
// existing row so the caller can answer "you're already #N".
type ConflictError struct {
	Entry *entity.WaitlistEntry
}

func (e *ConflictError) Error() string {
	return "Email already exists"
}

func IsConflictError(err error) bool {
	_, ok := err.(*ConflictError)
	return ok
}

type TechnicalError struct {
	Code    string
	Message string
}

func (e *TechnicalError) Error() string {
	return e.Message
}

func IsTechnicalError(err error) bool {
	_, ok := err.(*TechnicalError)
	return ok
}
