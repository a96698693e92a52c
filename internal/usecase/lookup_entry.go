package usecase

import (
	"context"
	"errors"

	"github.com/thearchitech/waitlist-api/internal/entity"
)

type LookupEntryUseCase struct {
	Repo entity.WaitlistRepository
}

func NewLookupEntryUseCase(repo entity.WaitlistRepository) *LookupEntryUseCase {
	return &LookupEntryUseCase{Repo: repo}
}

func (uc *LookupEntryUseCase) Execute(ctx context.Context, rawEmail string) (*entity.WaitlistEntry, error) {
	email := entity.NormalizeEmail(rawEmail)
	if email == "" {
		return nil, &DomainError{Code: "MISSING_EMAIL", Message: "email is required"}
	}
	if !IsValidEmail(email) {
		return nil, &DomainError{Code: "INVALID_EMAIL", Message: "email is invalid"}
	}

	entry, err := uc.Repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, entity.ErrEntryNotFound) {
			return nil, err
		}
		return nil, &TechnicalError{
			Code:    "DATABASE_ERROR",
			Message: "failed to look up waitlist entry: " + err.Error(),
		}
	}

	return entry, nil
}
