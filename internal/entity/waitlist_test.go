package entity

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "test@example.com", NormalizeEmail("Test@Example.com "))
	assert.Equal(t, "user@domain.org", NormalizeEmail("  USER@DOMAIN.ORG"))
	assert.Equal(t, "", NormalizeEmail("   "))
}

func TestGenerateReferralCodeShape(t *testing.T) {
	for i := 0; i < 100; i++ {
		code := GenerateReferralCode()

		assert.Len(t, code, ReferralCodeLength)
		for _, c := range code {
			assert.True(t, strings.ContainsRune(referralAlphabet, c),
				"unexpected character %q in referral code %s", c, code)
		}
	}
}

func TestNewWaitlistEntryDefaults(t *testing.T) {
	entry := NewWaitlistEntry(" Alice@Example.COM", "en", "website")

	assert.NotEmpty(t, entry.ID)
	assert.Equal(t, "alice@example.com", entry.Email)
	assert.Equal(t, StatusWaiting, entry.Status)
	assert.Equal(t, "en", entry.Language)
	assert.Equal(t, "website", entry.Source)
	assert.Len(t, entry.ReferralCode, ReferralCodeLength)
	assert.False(t, entry.CreatedAt.IsZero())
	assert.Equal(t, entry.CreatedAt, entry.UpdatedAt)
	// Position is assigned by the store, not the factory.
	assert.Zero(t, entry.Position)
}
