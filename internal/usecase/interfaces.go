package usecase

import (
	"context"

	"github.com/thearchitech/waitlist-api/internal/infra/queue"
)

type SignupEventPublisher interface {
	PublishSignup(ctx context.Context, payload queue.SignupPayload) error
}
