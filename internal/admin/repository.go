package admin

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Stats is the platform-wide aggregate snapshot.
type Stats struct {
	TotalUsers        int `json:"total_users"`
	TotalAdmins       int `json:"total_admins"`
	TotalMentors      int `json:"total_mentors"`
	TotalMentees      int `json:"total_mentees"`
	TotalMatches      int `json:"total_matches"`
	SessionsCompleted int `json:"sessions_completed"`
	SessionsUpcoming  int `json:"sessions_upcoming"`
	SessionsPast      int `json:"sessions_past"`
}

// Repository runs read-only admin aggregations.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates an admin repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// GetStats returns the aggregate counts in one round trip.
func (r *Repository) GetStats(ctx context.Context) (*Stats, error) {
	const q = `SELECT
		(SELECT COUNT(*) FROM users),
		(SELECT COUNT(*) FROM admins),
		(SELECT COUNT(*) FROM mentors),
		(SELECT COUNT(*) FROM mentees),
		(SELECT COUNT(*) FROM mentorship_matches),
		(SELECT COUNT(*) FROM session_bookings WHERE status = 'completed'),
		(SELECT COUNT(*) FROM session_bookings WHERE status = 'scheduled' AND session_date >= CURRENT_DATE),
		(SELECT COUNT(*) FROM session_bookings WHERE session_date < CURRENT_DATE)`
	var s Stats
	err := r.pool.QueryRow(ctx, q).Scan(
		&s.TotalUsers, &s.TotalAdmins, &s.TotalMentors, &s.TotalMentees,
		&s.TotalMatches, &s.SessionsCompleted, &s.SessionsUpcoming, &s.SessionsPast)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
