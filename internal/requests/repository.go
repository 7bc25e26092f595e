package requests

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mentorhub/backend/internal/models"
)

// ErrDuplicatePending is returned when a pending request already exists for
// the (mentee, mentor) pair.
var ErrDuplicatePending = errors.New("pending request already exists")

// RequestWithMentee is a request row joined with mentee display fields.
type RequestWithMentee struct {
	models.MentorshipRequest
	MenteeUsername string `json:"mentee_username"`
	MenteeFullName string `json:"mentee_full_name"`
}

// RequestWithMentor is a request row joined with mentor display fields.
type RequestWithMentor struct {
	models.MentorshipRequest
	MentorUsername string `json:"mentor_username"`
	MentorFullName string `json:"mentor_full_name"`
}

// MatchView is a match row joined with both parties' display fields.
type MatchView struct {
	models.MentorshipMatch
	MentorUsername string `json:"mentor_username"`
	MentorFullName string `json:"mentor_full_name"`
	MenteeUsername string `json:"mentee_username"`
	MenteeFullName string `json:"mentee_full_name"`
}

// Repository handles mentorship request and match persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a requests repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// MentorExists reports whether a mentor satellite row exists.
func (r *Repository) MentorExists(ctx context.Context, mentorID uuid.UUID) (bool, error) {
	var ok bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM mentors WHERE id = $1)`, mentorID).Scan(&ok)
	return ok, err
}

// HasPending reports whether a pending request exists for the pair.
func (r *Repository) HasPending(ctx context.Context, menteeID, mentorID uuid.UUID) (bool, error) {
	var ok bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM mentorship_requests
		WHERE mentee_id = $1 AND mentor_id = $2 AND status = 'pending')`,
		menteeID, mentorID).Scan(&ok)
	return ok, err
}

// Create inserts a pending request. Returns ErrDuplicatePending when the
// partial unique index rejects a second pending request for the pair.
func (r *Repository) Create(ctx context.Context, req *models.MentorshipRequest) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO mentorship_requests (mentee_id, mentor_id, message)
		VALUES ($1, $2, NULLIF($3, ''))
		RETURNING id, status, created_at, updated_at`,
		req.MenteeID, req.MentorID, req.Message).
		Scan(&req.ID, &req.Status, &req.CreatedAt, &req.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicatePending
		}
		return fmt.Errorf("insert request: %w", err)
	}
	return nil
}

// ListIncoming returns all requests addressed to the mentor, newest first.
func (r *Repository) ListIncoming(ctx context.Context, mentorID uuid.UUID) ([]RequestWithMentee, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT r.id, r.mentee_id, r.mentor_id, COALESCE(r.message, ''), r.status,
			r.created_at, r.updated_at, u.username, u.full_name
		FROM mentorship_requests r
		JOIN mentees me ON me.id = r.mentee_id
		JOIN users u ON u.id = me.user_id
		WHERE r.mentor_id = $1
		ORDER BY r.created_at DESC`, mentorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []RequestWithMentee
	for rows.Next() {
		var row RequestWithMentee
		if err := rows.Scan(&row.ID, &row.MenteeID, &row.MentorID, &row.Message, &row.Status,
			&row.CreatedAt, &row.UpdatedAt, &row.MenteeUsername, &row.MenteeFullName); err != nil {
			return nil, err
		}
		list = append(list, row)
	}
	return list, rows.Err()
}

// ListOutgoing returns all requests the mentee has sent, newest first.
func (r *Repository) ListOutgoing(ctx context.Context, menteeID uuid.UUID) ([]RequestWithMentor, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT r.id, r.mentee_id, r.mentor_id, COALESCE(r.message, ''), r.status,
			r.created_at, r.updated_at, u.username, u.full_name
		FROM mentorship_requests r
		JOIN mentors mo ON mo.id = r.mentor_id
		JOIN users u ON u.id = mo.user_id
		WHERE r.mentee_id = $1
		ORDER BY r.created_at DESC`, menteeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []RequestWithMentor
	for rows.Next() {
		var row RequestWithMentor
		if err := rows.Scan(&row.ID, &row.MenteeID, &row.MentorID, &row.Message, &row.Status,
			&row.CreatedAt, &row.UpdatedAt, &row.MentorUsername, &row.MentorFullName); err != nil {
			return nil, err
		}
		list = append(list, row)
	}
	return list, rows.Err()
}

// Respond transitions a pending request owned by the mentor to accepted or
// rejected, creating the match on accept, all in one transaction. Returns
// (nil, nil, nil) when the request is absent, foreign-owned or already
// decided; the caller reports not-found in all three cases.
func (r *Repository) Respond(ctx context.Context, requestID, mentorID uuid.UUID, status models.RequestStatus) (*models.MentorshipRequest, *models.MentorshipMatch, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var req models.MentorshipRequest
	err = tx.QueryRow(ctx,
		`UPDATE mentorship_requests SET status = $3, updated_at = NOW()
		WHERE id = $1 AND mentor_id = $2 AND status = 'pending'
		RETURNING id, mentee_id, mentor_id, COALESCE(message, ''), status, created_at, updated_at`,
		requestID, mentorID, string(status)).
		Scan(&req.ID, &req.MenteeID, &req.MentorID, &req.Message, &req.Status, &req.CreatedAt, &req.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, nil
		}
		return nil, nil, fmt.Errorf("update request: %w", err)
	}

	var match *models.MentorshipMatch
	if status == models.RequestStatusAccepted {
		m := models.MentorshipMatch{MenteeID: req.MenteeID, MentorID: req.MentorID, RequestID: req.ID}
		err = tx.QueryRow(ctx,
			`INSERT INTO mentorship_matches (mentee_id, mentor_id, request_id)
			VALUES ($1, $2, $3)
			ON CONFLICT (mentee_id, mentor_id) DO UPDATE SET mentee_id = EXCLUDED.mentee_id
			RETURNING id, request_id, created_at`,
			m.MenteeID, m.MentorID, m.RequestID).
			Scan(&m.ID, &m.RequestID, &m.CreatedAt)
		if err != nil {
			return nil, nil, fmt.Errorf("insert match: %w", err)
		}
		match = &m
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, nil, fmt.Errorf("commit transaction: %w", err)
	}
	return &req, match, nil
}

// ListMatchesByMentor returns the mentor's matches, newest first.
func (r *Repository) ListMatchesByMentor(ctx context.Context, mentorID uuid.UUID) ([]MatchView, error) {
	return r.listMatches(ctx, `m.mentor_id = $1`, mentorID)
}

// ListMatchesByMentee returns the mentee's matches, newest first.
func (r *Repository) ListMatchesByMentee(ctx context.Context, menteeID uuid.UUID) ([]MatchView, error) {
	return r.listMatches(ctx, `m.mentee_id = $1`, menteeID)
}

// ListAllMatches returns every match, for admin oversight.
func (r *Repository) ListAllMatches(ctx context.Context) ([]MatchView, error) {
	return r.listMatches(ctx, `TRUE`)
}

func (r *Repository) listMatches(ctx context.Context, where string, args ...interface{}) ([]MatchView, error) {
	q := fmt.Sprintf(`SELECT m.id, m.mentee_id, m.mentor_id, m.request_id, m.created_at,
			uo.username, uo.full_name, ue.username, ue.full_name
		FROM mentorship_matches m
		JOIN mentors mo ON mo.id = m.mentor_id
		JOIN users uo ON uo.id = mo.user_id
		JOIN mentees me ON me.id = m.mentee_id
		JOIN users ue ON ue.id = me.user_id
		WHERE %s
		ORDER BY m.created_at DESC`, where)
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []MatchView
	for rows.Next() {
		var row MatchView
		if err := rows.Scan(&row.ID, &row.MenteeID, &row.MentorID, &row.RequestID, &row.CreatedAt,
			&row.MentorUsername, &row.MentorFullName, &row.MenteeUsername, &row.MenteeFullName); err != nil {
			return nil, err
		}
		list = append(list, row)
	}
	return list, rows.Err()
}
