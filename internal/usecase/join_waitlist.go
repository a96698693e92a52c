package usecase

import (
	"context"
	"errors"
	"log"

	"github.com/thearchitech/waitlist-api/internal/entity"
	"github.com/thearchitech/waitlist-api/internal/infra/queue"
)

type JoinWaitlistUseCase struct {
	Repo     entity.WaitlistRepository
	Producer SignupEventPublisher
}

func NewJoinWaitlistUseCase(repo entity.WaitlistRepository, producer SignupEventPublisher) *JoinWaitlistUseCase {
	return &JoinWaitlistUseCase{
		Repo:     repo,
		Producer: producer,
	}
}

func (uc *JoinWaitlistUseCase) Execute(ctx context.Context, input JoinWaitlistInput) (*JoinWaitlistOutput, error) {
	email := entity.NormalizeEmail(input.Email)
	if email == "" {
		return nil, &DomainError{Code: "MISSING_EMAIL", Message: "email is required"}
	}
	if !IsValidEmail(email) {
		return nil, &DomainError{Code: "INVALID_EMAIL", Message: "email is invalid"}
	}

	language := input.Language
	if language == "" {
		language = entity.DefaultLanguage
	}
	if !IsValidLanguage(language) {
		return nil, &DomainError{Code: "INVALID_LANGUAGE", Message: "language is not supported"}
	}

	source := input.Source
	if source == "" {
		source = entity.DefaultSource
	}
	if !IsValidSource(source) {
		return nil, &DomainError{Code: "INVALID_SOURCE", Message: "source is not recognized"}
	}

	entry, err := uc.Repo.Insert(ctx, entity.NewWaitlistEntry(email, language, source))
	if err != nil {
		if errors.Is(err, entity.ErrEmailAlreadyExists) {
			// Idempotent-read-on-conflict: hand back the row that won.
			return nil, &ConflictError{Entry: entry}
		}
		return nil, &TechnicalError{
			Code:    "DATABASE_ERROR",
			Message: "failed to persist waitlist entry: " + err.Error(),
		}
	}

	// The registration is committed at this point. Welcome-email delivery
	// happens on the queue consumer side; a broken broker must never turn
	// a successful signup into an error.
	if uc.Producer != nil {
		payload := queue.SignupPayload{
			Email:        entry.Email,
			Language:     entry.Language,
			ReferralCode: entry.ReferralCode,
			Position:     entry.Position,
			Source:       entry.Source,
		}
		if err := uc.Producer.PublishSignup(ctx, payload); err != nil {
			log.Printf("[JOIN] failed to publish signup event for %s: %v", entry.Email, err)
		}
	}

	return &JoinWaitlistOutput{
		Email:        entry.Email,
		Position:     entry.Position,
		ReferralCode: entry.ReferralCode,
		Language:     entry.Language,
		CreatedAt:    entry.CreatedAt,
	}, nil
}
