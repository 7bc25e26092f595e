package availability

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mentorhub/backend/internal/models"
)

// Repository handles mentor availability persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates an availability repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Upsert replaces the window for (mentor, day) or inserts it.
func (r *Repository) Upsert(ctx context.Context, w *models.AvailabilityWindow) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO mentor_availability (mentor_id, day_of_week, start_time, end_time)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (mentor_id, day_of_week)
		DO UPDATE SET start_time = EXCLUDED.start_time, end_time = EXCLUDED.end_time`,
		w.MentorID, w.DayOfWeek, w.StartTime, w.EndTime)
	return err
}

// ListByMentor returns the mentor's windows ordered by day.
func (r *Repository) ListByMentor(ctx context.Context, mentorID uuid.UUID) ([]models.AvailabilityWindow, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT mentor_id, day_of_week, start_time, end_time
		FROM mentor_availability WHERE mentor_id = $1 ORDER BY day_of_week`, mentorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []models.AvailabilityWindow
	for rows.Next() {
		var w models.AvailabilityWindow
		if err := rows.Scan(&w.MentorID, &w.DayOfWeek, &w.StartTime, &w.EndTime); err != nil {
			return nil, err
		}
		list = append(list, w)
	}
	return list, rows.Err()
}

// Clear deletes all windows for the mentor.
func (r *Repository) Clear(ctx context.Context, mentorID uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM mentor_availability WHERE mentor_id = $1`, mentorID)
	return err
}

// ClearDay deletes the window for one day. Returns whether a row existed.
func (r *Repository) ClearDay(ctx context.Context, mentorID uuid.UUID, day int) (bool, error) {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM mentor_availability WHERE mentor_id = $1 AND day_of_week = $2`, mentorID, day)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
