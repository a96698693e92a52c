package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/thearchitech/waitlist-api/internal/entity"
	"github.com/thearchitech/waitlist-api/internal/infra/queue"
)

// MockWaitlistRepository
type MockWaitlistRepository struct {
	mock.Mock
}

func (m *MockWaitlistRepository) Insert(ctx context.Context, e *entity.WaitlistEntry) (*entity.WaitlistEntry, error) {
	args := m.Called(ctx, e)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.WaitlistEntry), args.Error(1)
}

func (m *MockWaitlistRepository) FindByEmail(ctx context.Context, email string) (*entity.WaitlistEntry, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.WaitlistEntry), args.Error(1)
}

func (m *MockWaitlistRepository) UpdateStatus(ctx context.Context, email, status string) (*entity.WaitlistEntry, error) {
	args := m.Called(ctx, email, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.WaitlistEntry), args.Error(1)
}

func (m *MockWaitlistRepository) Stats(ctx context.Context) (*entity.WaitlistStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.WaitlistStats), args.Error(1)
}

// MockSignupPublisher
type MockSignupPublisher struct {
	mock.Mock
}

func (m *MockSignupPublisher) PublishSignup(ctx context.Context, payload queue.SignupPayload) error {
	args := m.Called(ctx, payload)
	return args.Error(0)
}

func persistedEntry(email string, position int) *entity.WaitlistEntry {
	return &entity.WaitlistEntry{
		ID:           "3f5a2a9e-0000-0000-0000-000000000001",
		Email:        email,
		Position:     position,
		Source:       "website",
		ReferralCode: "AB12CD34",
		Language:     "en",
		Status:       entity.StatusWaiting,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
}

func TestJoinWaitlistSuccess(t *testing.T) {
	ctx := context.Background()

	mockRepo := new(MockWaitlistRepository)
	mockPublisher := new(MockSignupPublisher)

	mockRepo.On("Insert", ctx, mock.MatchedBy(func(e *entity.WaitlistEntry) bool {
		return e.Email == "test@example.com" &&
			e.Status == entity.StatusWaiting &&
			e.Language == "en" &&
			e.Source == "website"
	})).Return(persistedEntry("test@example.com", 1), nil)
	mockPublisher.On("PublishSignup", ctx, mock.Anything).Return(nil)

	uc := NewJoinWaitlistUseCase(mockRepo, mockPublisher)

	// Raw input gets normalized before anything touches the store.
	output, err := uc.Execute(ctx, JoinWaitlistInput{Email: "Test@Example.com "})

	assert.NoError(t, err)
	assert.Equal(t, "test@example.com", output.Email)
	assert.Equal(t, 1, output.Position)
	assert.Equal(t, "AB12CD34", output.ReferralCode)
	assert.Equal(t, "en", output.Language)

	mockRepo.AssertExpectations(t)
	mockPublisher.AssertExpectations(t)
}

func TestJoinWaitlistPublishesSignupEvent(t *testing.T) {
	ctx := context.Background()

	mockRepo := new(MockWaitlistRepository)
	mockPublisher := new(MockSignupPublisher)

	mockRepo.On("Insert", ctx, mock.Anything).Return(persistedEntry("joined@example.com", 42), nil)
	mockPublisher.On("PublishSignup", ctx, queue.SignupPayload{
		Email:        "joined@example.com",
		Language:     "en",
		ReferralCode: "AB12CD34",
		Position:     42,
		Source:       "website",
	}).Return(nil)

	uc := NewJoinWaitlistUseCase(mockRepo, mockPublisher)

	_, err := uc.Execute(ctx, JoinWaitlistInput{Email: "joined@example.com"})

	assert.NoError(t, err)
	mockPublisher.AssertExpectations(t)
}

func TestJoinWaitlistPublishFailureDoesNotFailJoin(t *testing.T) {
	ctx := context.Background()

	mockRepo := new(MockWaitlistRepository)
	mockPublisher := new(MockSignupPublisher)

	mockRepo.On("Insert", ctx, mock.Anything).Return(persistedEntry("joined@example.com", 3), nil)
	mockPublisher.On("PublishSignup", ctx, mock.Anything).Return(errors.New("broker down"))

	uc := NewJoinWaitlistUseCase(mockRepo, mockPublisher)

	output, err := uc.Execute(ctx, JoinWaitlistInput{Email: "joined@example.com"})

	// The row is committed; a dead broker only costs the email.
	assert.NoError(t, err)
	assert.Equal(t, 3, output.Position)
}

func TestJoinWaitlistConflictReturnsExistingEntry(t *testing.T) {
	ctx := context.Background()

	mockRepo := new(MockWaitlistRepository)
	mockPublisher := new(MockSignupPublisher)

	existing := persistedEntry("taken@example.com", 7)
	mockRepo.On("Insert", ctx, mock.Anything).Return(existing, entity.ErrEmailAlreadyExists)

	uc := NewJoinWaitlistUseCase(mockRepo, mockPublisher)

	output, err := uc.Execute(ctx, JoinWaitlistInput{Email: "taken@example.com"})

	assert.Nil(t, output)

	var conflict *ConflictError
	assert.ErrorAs(t, err, &conflict)
	assert.Equal(t, 7, conflict.Entry.Position)
	assert.Equal(t, "taken@example.com", conflict.Entry.Email)

	// No welcome email for a duplicate signup.
	mockPublisher.AssertNotCalled(t, "PublishSignup", mock.Anything, mock.Anything)
}

func TestJoinWaitlistValidationFailures(t *testing.T) {
	cases := []struct {
		name  string
		input JoinWaitlistInput
		code  string
	}{
		{"missing email", JoinWaitlistInput{}, "MISSING_EMAIL"},
		{"whitespace email", JoinWaitlistInput{Email: "   "}, "MISSING_EMAIL"},
		{"malformed email", JoinWaitlistInput{Email: "not-an-email"}, "INVALID_EMAIL"},
		{"no dot after domain", JoinWaitlistInput{Email: "a@b"}, "INVALID_EMAIL"},
		{"unknown language", JoinWaitlistInput{Email: "a@b.co", Language: "xx"}, "INVALID_LANGUAGE"},
		{"unknown source", JoinWaitlistInput{Email: "a@b.co", Source: "billboard"}, "INVALID_SOURCE"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mockRepo := new(MockWaitlistRepository)
			mockPublisher := new(MockSignupPublisher)
			uc := NewJoinWaitlistUseCase(mockRepo, mockPublisher)

			output, err := uc.Execute(context.Background(), tc.input)

			assert.Nil(t, output)

			var domainErr *DomainError
			assert.ErrorAs(t, err, &domainErr)
			assert.Equal(t, tc.code, domainErr.Code)

			// Validation fires before any store access.
			mockRepo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
		})
	}
}

func TestJoinWaitlistDefaultsLanguageAndSource(t *testing.T) {
	ctx := context.Background()

	mockRepo := new(MockWaitlistRepository)

	mockRepo.On("Insert", ctx, mock.MatchedBy(func(e *entity.WaitlistEntry) bool {
		return e.Language == "en" && e.Source == "website"
	})).Return(persistedEntry("fresh@example.com", 1), nil)

	uc := NewJoinWaitlistUseCase(mockRepo, nil)

	_, err := uc.Execute(ctx, JoinWaitlistInput{Email: "fresh@example.com"})

	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestJoinWaitlistStoreFailure(t *testing.T) {
	ctx := context.Background()

	mockRepo := new(MockWaitlistRepository)
	mockRepo.On("Insert", ctx, mock.Anything).Return(nil, errors.New("connection refused"))

	uc := NewJoinWaitlistUseCase(mockRepo, nil)

	output, err := uc.Execute(ctx, JoinWaitlistInput{Email: "a@b.co"})

	assert.Nil(t, output)
	assert.True(t, IsTechnicalError(err))
}
