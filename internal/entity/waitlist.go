package entity

import (
	"context"
	"errors"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrEntryNotFound      = errors.New("waitlist entry not found")
)

// Status lifecycle. Entries are created as "waiting"; "invited" is set
// later by an operator flow, never by the public API.
const (
	StatusWaiting = "waiting"
	StatusInvited = "invited"
)

const (
	DefaultLanguage = "en"
	DefaultSource   = "website"
)

const (
	referralAlphabet   = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	ReferralCodeLength = 8
)

type WaitlistEntry struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Position     int       `json:"position"`
	Source       string    `json:"source"`
	ReferralCode string    `json:"referral_code"`
	Language     string    `json:"language"`
	Status       string    `json:"status"` // waiting, invited
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// WaitlistStats is derived from rows with status = waiting, never stored.
type WaitlistStats struct {
	TotalSignups int        `json:"total_signups"`
	Signups24h   int        `json:"signups_24h"`
	Signups7d    int        `json:"signups_7d"`
	Signups30d   int        `json:"signups_30d"`
	FirstSignup  *time.Time `json:"first_signup"`
	LatestSignup *time.Time `json:"latest_signup"`
}

type WaitlistRepository interface {
	// Insert persists a new entry and assigns its position atomically.
	// When the email is already registered it returns the existing row
	// together with ErrEmailAlreadyExists.
	Insert(ctx context.Context, entry *WaitlistEntry) (*WaitlistEntry, error)
	FindByEmail(ctx context.Context, email string) (*WaitlistEntry, error)
	UpdateStatus(ctx context.Context, email, status string) (*WaitlistEntry, error)
	Stats(ctx context.Context) (*WaitlistStats, error)
}

// NormalizeEmail applies the canonical form used everywhere: trimmed and
// lower-cased. The unique constraint on the email column assumes it.
func NormalizeEmail(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// GenerateReferralCode draws 8 characters uniformly from A-Z0-9.
// Uniqueness is enforced by the store, which regenerates on collision.
func GenerateReferralCode() string {
	code := make([]byte, ReferralCodeLength)
	for i := range code {
		code[i] = referralAlphabet[rand.Intn(len(referralAlphabet))]
	}
	return string(code)
}

// Factory
func NewWaitlistEntry(email, language, source string) *WaitlistEntry {
	now := time.Now()
	return &WaitlistEntry{
		ID:           uuid.New().String(),
		Email:        NormalizeEmail(email),
		Source:       source,
		ReferralCode: GenerateReferralCode(),
		Language:     language,
		Status:       StatusWaiting,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}
