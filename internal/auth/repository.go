package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mentorhub/backend/internal/models"
)

// ErrDuplicate is returned when a username or email is already taken.
var ErrDuplicate = errors.New("username or email already taken")

const userSelect = `SELECT u.id, u.username, u.email, u.password_hash, u.full_name,
	COALESCE(u.bio, ''), COALESCE(u.avatar_url, ''), u.role,
	COALESCE(a.id, m.id, e.id), u.created_at, u.updated_at
	FROM users u
	LEFT JOIN admins a ON a.user_id = u.id
	LEFT JOIN mentors m ON m.user_id = u.id
	LEFT JOIN mentees e ON e.user_id = u.id`

// Repository handles user, role-satellite and reset-token persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates an auth repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

func scanUser(row pgx.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.Password, &u.FullName,
		&u.Bio, &u.AvatarURL, &u.Details.Role, &u.Details.RoleID, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

// GetByID returns a user with role details, or (nil, nil) when absent.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return scanUser(r.pool.QueryRow(ctx, userSelect+` WHERE u.id = $1`, id))
}

// GetByEmail returns a user by email.
func (r *Repository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return scanUser(r.pool.QueryRow(ctx, userSelect+` WHERE u.email = $1`, email))
}

// GetByUsername returns a user by username.
func (r *Repository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return scanUser(r.pool.QueryRow(ctx, userSelect+` WHERE u.username = $1`, username))
}

func satelliteTable(role models.Role) string {
	switch role {
	case models.RoleAdmin:
		return "admins"
	case models.RoleMentor:
		return "mentors"
	default:
		return "mentees"
	}
}

// Create inserts the user row and its role satellite in one transaction.
// Returns ErrDuplicate on a username/email uniqueness conflict.
func (r *Repository) Create(ctx context.Context, username, email, passwordHash, fullName string, role models.Role) (*models.User, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var u models.User
	u.Details.Role = role
	err = tx.QueryRow(ctx,
		`INSERT INTO users (username, email, password_hash, full_name, role)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, username, email, password_hash, full_name, role, created_at, updated_at`,
		username, email, passwordHash, fullName, string(role)).
		Scan(&u.ID, &u.Username, &u.Email, &u.Password, &u.FullName, &u.Details.Role, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	err = tx.QueryRow(ctx,
		fmt.Sprintf(`INSERT INTO %s (user_id) VALUES ($1) RETURNING id`, satelliteTable(role)),
		u.ID).Scan(&u.Details.RoleID)
	if err != nil {
		return nil, fmt.Errorf("insert %s satellite: %w", role, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}
	return &u, nil
}

// ChangeRole updates users.role, removes the old satellite row and inserts a
// new one with a fresh surrogate id, all in one transaction.
func (r *Repository) ChangeRole(ctx context.Context, userID uuid.UUID, newRole models.Role) (*models.User, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var oldRole models.Role
	err = tx.QueryRow(ctx, `SELECT role FROM users WHERE id = $1 FOR UPDATE`, userID).Scan(&oldRole)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("lock user: %w", err)
	}

	var u models.User
	u.Details.Role = newRole
	err = tx.QueryRow(ctx,
		`UPDATE users SET role = $2, updated_at = NOW() WHERE id = $1
		RETURNING id, username, email, password_hash, full_name, COALESCE(bio,''), COALESCE(avatar_url,''), created_at, updated_at`,
		userID, string(newRole)).
		Scan(&u.ID, &u.Username, &u.Email, &u.Password, &u.FullName, &u.Bio, &u.AvatarURL, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("update role: %w", err)
	}

	if _, err := tx.Exec(ctx,
		fmt.Sprintf(`DELETE FROM %s WHERE user_id = $1`, satelliteTable(oldRole)), userID); err != nil {
		return nil, fmt.Errorf("delete %s satellite: %w", oldRole, err)
	}
	err = tx.QueryRow(ctx,
		fmt.Sprintf(`INSERT INTO %s (user_id) VALUES ($1) RETURNING id`, satelliteTable(newRole)),
		userID).Scan(&u.Details.RoleID)
	if err != nil {
		return nil, fmt.Errorf("insert %s satellite: %w", newRole, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}
	return &u, nil
}

// UpdateProfile updates mutable profile fields.
func (r *Repository) UpdateProfile(ctx context.Context, userID uuid.UUID, fullName, bio string) (*models.User, error) {
	_, err := r.pool.Exec(ctx,
		`UPDATE users SET full_name = $2, bio = NULLIF($3, ''), updated_at = NOW() WHERE id = $1`,
		userID, fullName, bio)
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, userID)
}

// UpdateAvatarURL stores the uploaded avatar location.
func (r *Repository) UpdateAvatarURL(ctx context.Context, userID uuid.UUID, url string) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE users SET avatar_url = $2, updated_at = NOW() WHERE id = $1`, userID, url)
	return err
}

// List returns all users, for admin oversight.
func (r *Repository) List(ctx context.Context) ([]models.UserPublic, error) {
	rows, err := r.pool.Query(ctx, userSelect+` ORDER BY u.username`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []models.UserPublic
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Username, &u.Email, &u.Password, &u.FullName,
			&u.Bio, &u.AvatarURL, &u.Details.Role, &u.Details.RoleID, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		list = append(list, u.ToPublic())
	}
	return list, rows.Err()
}

// IsAdmin reports whether the user has a row in the admins satellite table.
func (r *Repository) IsAdmin(ctx context.Context, userID uuid.UUID) (bool, error) {
	var ok bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM admins WHERE user_id = $1)`, userID).Scan(&ok)
	return ok, err
}

// CreateResetToken inserts a password reset token.
func (r *Repository) CreateResetToken(ctx context.Context, t *models.PasswordResetToken) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO password_reset_tokens (user_id, token, expires_at)
		VALUES ($1, $2, $3)
		RETURNING id, used_at, created_at`,
		t.UserID, t.Token, t.ExpiresAt).
		Scan(&t.ID, &t.UsedAt, &t.CreatedAt)
}

// ResetPassword consumes a valid token and sets the new hash in one
// transaction. Returns false when the token is unknown, expired or used.
func (r *Repository) ResetPassword(ctx context.Context, token, newHash string) (bool, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return false, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var tokenID, userID uuid.UUID
	var expiresAt time.Time
	err = tx.QueryRow(ctx,
		`SELECT id, user_id, expires_at FROM password_reset_tokens
		WHERE token = $1 AND used_at IS NULL FOR UPDATE`, token).
		Scan(&tokenID, &userID, &expiresAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("select token: %w", err)
	}
	if time.Now().After(expiresAt) {
		return false, nil
	}

	if _, err := tx.Exec(ctx,
		`UPDATE users SET password_hash = $2, updated_at = NOW() WHERE id = $1`, userID, newHash); err != nil {
		return false, fmt.Errorf("update password: %w", err)
	}
	if _, err := tx.Exec(ctx,
		`UPDATE password_reset_tokens SET used_at = NOW() WHERE id = $1`, tokenID); err != nil {
		return false, fmt.Errorf("mark token used: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return false, fmt.Errorf("commit transaction: %w", err)
	}
	return true, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
