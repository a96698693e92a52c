package usecase

import "time"

type JoinWaitlistInput struct {
	Email    string `json:"email"`
	Language string `json:"language,omitempty"`
	Source   string `json:"source,omitempty"`
}

// JoinWaitlistOutput carries the entry's public fields only. Internal
// columns (id, status, updated_at) stay out of the join response.
type JoinWaitlistOutput struct {
	Email        string    `json:"email"`
	Position     int       `json:"position"`
	ReferralCode string    `json:"referralCode"`
	Language     string    `json:"language"`
	CreatedAt    time.Time `json:"createdAt"`
}
