package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"

	"github.com/lib/pq"
	"github.com/thearchitech/waitlist-api/internal/entity"
)

const uniqueViolation = "23505"

// A concurrent join can lose the race on the position or referral_code
// constraint; both are recoverable, so the insert retries a few times.
const maxInsertRetries = 3

type WaitlistRepository struct {
	DB *sql.DB
}

func NewWaitlistRepository(db *sql.DB) *WaitlistRepository {
	return &WaitlistRepository{DB: db}
}

// Insert persists the entry and assigns the next position in the same
// statement, so check-then-insert races cannot produce duplicate rows:
// the unique constraints turn every race into a decodable 23505.
//
// On an email collision the existing row is returned together with
// entity.ErrEmailAlreadyExists.
func (r *WaitlistRepository) Insert(ctx context.Context, e *entity.WaitlistEntry) (*entity.WaitlistEntry, error) {
	query := `
		INSERT INTO waitlist (id, email, position, source, referral_code, language, status, created_at, updated_at)
		VALUES ($1, $2, (SELECT COALESCE(MAX(position), 0) + 1 FROM waitlist), $3, $4, $5, $6, NOW(), NOW())
		RETURNING position, created_at, updated_at
	`

	for attempt := 0; attempt < maxInsertRetries; attempt++ {
		err := r.DB.QueryRowContext(ctx, query,
			e.ID,
			e.Email,
			e.Source,
			e.ReferralCode,
			e.Language,
			e.Status,
		).Scan(
			&e.Position,
			&e.CreatedAt,
			&e.UpdatedAt,
		)
		if err == nil {
			return e, nil
		}

		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			switch pqErr.Constraint {
			case "waitlist_email_key":
				existing, findErr := r.FindByEmail(ctx, e.Email)
				if findErr != nil {
					return nil, findErr
				}
				return existing, entity.ErrEmailAlreadyExists
			case "waitlist_position_key":
				// Lost the MAX(position)+1 race, recompute on retry.
				continue
			case "waitlist_referral_code_key":
				e.ReferralCode = entity.GenerateReferralCode()
				continue
			}
		}

		log.Printf("[WAITLIST REPO] insert failed for %s: %v", e.Email, err)
		return nil, err
	}

	return nil, fmt.Errorf("waitlist insert for %s gave up after %d attempts", e.Email, maxInsertRetries)
}

func (r *WaitlistRepository) FindByEmail(ctx context.Context, email string) (*entity.WaitlistEntry, error) {
	query := `
		SELECT id, email, position, source, referral_code, language, status, created_at, updated_at
		FROM waitlist
		WHERE email = $1
	`

	var e entity.WaitlistEntry
	err := r.DB.QueryRowContext(ctx, query, email).Scan(
		&e.ID,
		&e.Email,
		&e.Position,
		&e.Source,
		&e.ReferralCode,
		&e.Language,
		&e.Status,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrEntryNotFound
	}
	if err != nil {
		return nil, err
	}

	return &e, nil
}

// UpdateStatus moves an entry through its lifecycle (waiting -> invited).
// Not reachable from any public endpoint yet.
func (r *WaitlistRepository) UpdateStatus(ctx context.Context, email, status string) (*entity.WaitlistEntry, error) {
	query := `
		UPDATE waitlist
		SET status = $1, updated_at = NOW()
		WHERE email = $2
		RETURNING id, email, position, source, referral_code, language, status, created_at, updated_at
	`

	var e entity.WaitlistEntry
	err := r.DB.QueryRowContext(ctx, query, status, email).Scan(
		&e.ID,
		&e.Email,
		&e.Position,
		&e.Source,
		&e.ReferralCode,
		&e.Language,
		&e.Status,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrEntryNotFound
	}
	if err != nil {
		return nil, err
	}

	return &e, nil
}

// Stats aggregates the waiting entries in a single query.
func (r *WaitlistRepository) Stats(ctx context.Context) (*entity.WaitlistStats, error) {
	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE created_at > NOW() - INTERVAL '24 hours'),
			COUNT(*) FILTER (WHERE created_at > NOW() - INTERVAL '7 days'),
			COUNT(*) FILTER (WHERE created_at > NOW() - INTERVAL '30 days'),
			MIN(created_at),
			MAX(created_at)
		FROM waitlist
		WHERE status = $1
	`

	var stats entity.WaitlistStats
	var first, latest sql.NullTime

	err := r.DB.QueryRowContext(ctx, query, entity.StatusWaiting).Scan(
		&stats.TotalSignups,
		&stats.Signups24h,
		&stats.Signups7d,
		&stats.Signups30d,
		&first,
		&latest,
	)
	if err != nil {
		return nil, err
	}

	if first.Valid {
		stats.FirstSignup = &first.Time
	}
	if latest.Valid {
		stats.LatestSignup = &latest.Time
	}

	return &stats, nil
}
