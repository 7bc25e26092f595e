package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mentorhub/backend/internal/models"
)

const bookingSelect = `SELECT b.id, b.mentor_id, b.mentee_id,
	to_char(b.session_date, 'YYYY-MM-DD'), b.start_time, b.end_time, b.status,
	b.created_at, b.updated_at FROM session_bookings b`

// BookingView is a booking joined with both parties' display names.
type BookingView struct {
	models.SessionBooking
	MentorName string `json:"mentor_name"`
	MenteeName string `json:"mentee_name"`
}

// Repository handles session booking persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a bookings repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Book runs the overlap and availability-containment checks and the insert in
// one transaction. Returns ErrBookingConflict or ErrOutsideAvailability when
// admission fails; the exclusion constraint reports concurrent overlaps as
// ErrBookingConflict too.
func (r *Repository) Book(ctx context.Context, b *models.SessionBooking, weekday int) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	// Two [start,end) ranges intersect iff existing.start < new.end AND
	// new.start < existing.end.
	var overlap bool
	err = tx.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM session_bookings
		WHERE mentor_id = $1 AND session_date = $2::date AND status <> 'cancelled'
			AND start_time < $4 AND $3 < end_time)`,
		b.MentorID, b.SessionDate, b.StartTime, b.EndTime).Scan(&overlap)
	if err != nil {
		return fmt.Errorf("overlap check: %w", err)
	}
	if overlap {
		return ErrBookingConflict
	}

	var contained bool
	err = tx.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM mentor_availability
		WHERE mentor_id = $1 AND day_of_week = $2
			AND start_time <= $3 AND end_time >= $4)`,
		b.MentorID, weekday, b.StartTime, b.EndTime).Scan(&contained)
	if err != nil {
		return fmt.Errorf("availability check: %w", err)
	}
	if !contained {
		return ErrOutsideAvailability
	}

	err = tx.QueryRow(ctx,
		`INSERT INTO session_bookings (mentor_id, mentee_id, session_date, start_time, end_time)
		VALUES ($1, $2, $3::date, $4, $5)
		RETURNING id, status, created_at, updated_at`,
		b.MentorID, b.MenteeID, b.SessionDate, b.StartTime, b.EndTime).
		Scan(&b.ID, &b.Status, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if isExclusionViolation(err) {
			return ErrBookingConflict
		}
		return fmt.Errorf("insert booking: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		if isExclusionViolation(err) {
			return ErrBookingConflict
		}
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// ListByMentor returns the mentor's bookings, soonest first.
func (r *Repository) ListByMentor(ctx context.Context, mentorID uuid.UUID) ([]models.SessionBooking, error) {
	return r.list(ctx, `WHERE b.mentor_id = $1`, mentorID)
}

// ListByMentee returns the mentee's bookings, soonest first.
func (r *Repository) ListByMentee(ctx context.Context, menteeID uuid.UUID) ([]models.SessionBooking, error) {
	return r.list(ctx, `WHERE b.mentee_id = $1`, menteeID)
}

func (r *Repository) list(ctx context.Context, where string, args ...interface{}) ([]models.SessionBooking, error) {
	rows, err := r.pool.Query(ctx, bookingSelect+" "+where+` ORDER BY b.session_date, b.start_time`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []models.SessionBooking
	for rows.Next() {
		var b models.SessionBooking
		if err := rows.Scan(&b.ID, &b.MentorID, &b.MenteeID, &b.SessionDate,
			&b.StartTime, &b.EndTime, &b.Status, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, err
		}
		list = append(list, b)
	}
	return list, rows.Err()
}

// ListAll returns every booking with party names, for admin oversight.
func (r *Repository) ListAll(ctx context.Context) ([]BookingView, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT b.id, b.mentor_id, b.mentee_id,
			to_char(b.session_date, 'YYYY-MM-DD'), b.start_time, b.end_time, b.status,
			b.created_at, b.updated_at, uo.full_name, ue.full_name
		FROM session_bookings b
		JOIN mentors mo ON mo.id = b.mentor_id
		JOIN users uo ON uo.id = mo.user_id
		JOIN mentees me ON me.id = b.mentee_id
		JOIN users ue ON ue.id = me.user_id
		ORDER BY b.session_date DESC, b.start_time DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []BookingView
	for rows.Next() {
		var v BookingView
		if err := rows.Scan(&v.ID, &v.MentorID, &v.MenteeID, &v.SessionDate,
			&v.StartTime, &v.EndTime, &v.Status, &v.CreatedAt, &v.UpdatedAt,
			&v.MentorName, &v.MenteeName); err != nil {
			return nil, err
		}
		list = append(list, v)
	}
	return list, rows.Err()
}

// ReminderRow is what the reminder sweep needs to email both parties.
type ReminderRow struct {
	BookingID   uuid.UUID
	SessionDate string
	StartTime   string
	EndTime     string
	MentorUser  uuid.UUID
	MentorName  string
	MentorEmail string
	MenteeUser  uuid.UUID
	MenteeName  string
	MenteeEmail string
}

// ListForReminder returns scheduled bookings on the given date with both
// parties' contact fields.
func (r *Repository) ListForReminder(ctx context.Context, date string) ([]ReminderRow, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT b.id, to_char(b.session_date, 'YYYY-MM-DD'), b.start_time, b.end_time,
			uo.id, uo.full_name, uo.email, ue.id, ue.full_name, ue.email
		FROM session_bookings b
		JOIN mentors mo ON mo.id = b.mentor_id
		JOIN users uo ON uo.id = mo.user_id
		JOIN mentees me ON me.id = b.mentee_id
		JOIN users ue ON ue.id = me.user_id
		WHERE b.session_date = $1::date AND b.status = 'scheduled'
		ORDER BY b.start_time`, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []ReminderRow
	for rows.Next() {
		var row ReminderRow
		if err := rows.Scan(&row.BookingID, &row.SessionDate, &row.StartTime, &row.EndTime,
			&row.MentorUser, &row.MentorName, &row.MentorEmail,
			&row.MenteeUser, &row.MenteeName, &row.MenteeEmail); err != nil {
			return nil, err
		}
		list = append(list, row)
	}
	return list, rows.Err()
}

// CancelByMentor cancels a future scheduled booking owned by the mentor.
func (r *Repository) CancelByMentor(ctx context.Context, id, mentorID uuid.UUID) (bool, error) {
	return r.transition(ctx,
		`UPDATE session_bookings SET status = 'cancelled', updated_at = NOW()
		WHERE id = $1 AND mentor_id = $2 AND status = 'scheduled' AND session_date >= CURRENT_DATE`,
		id, mentorID)
}

// CancelByMentee cancels a future scheduled booking owned by the mentee.
func (r *Repository) CancelByMentee(ctx context.Context, id, menteeID uuid.UUID) (bool, error) {
	return r.transition(ctx,
		`UPDATE session_bookings SET status = 'cancelled', updated_at = NOW()
		WHERE id = $1 AND mentee_id = $2 AND status = 'scheduled' AND session_date >= CURRENT_DATE`,
		id, menteeID)
}

// Complete marks a scheduled booking completed; mentor-owned, not future.
func (r *Repository) Complete(ctx context.Context, id, mentorID uuid.UUID) (bool, error) {
	return r.transition(ctx,
		`UPDATE session_bookings SET status = 'completed', updated_at = NOW()
		WHERE id = $1 AND mentor_id = $2 AND status = 'scheduled' AND session_date <= CURRENT_DATE`,
		id, mentorID)
}

func (r *Repository) transition(ctx context.Context, q string, args ...interface{}) (bool, error) {
	tag, err := r.pool.Exec(ctx, q, args...)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func isExclusionViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && (pgErr.Code == "23P01" || pgErr.Code == "23505")
}
