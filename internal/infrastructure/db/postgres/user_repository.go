package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/devfolio/portfolio-api/internal/core/domain"
)

// userColumns is every column scanUser reads, in order.
const userColumns = `id, username, email, password_hash, role,
	profile_name, profile_title, profile_bio, profile_location, profile_phone, profile_avatar,
	profile_social_linkedin, profile_social_github, profile_social_twitter,
	reset_token_hash, reset_token_expiry, created_at, updated_at`

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	query := `INSERT INTO users (username, email, password_hash, role)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + userColumns

	row := r.db.QueryRowContext(ctx, query, user.Username, user.Email, user.PasswordHash, user.Role)
	created, err := scanUser(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			// Unique violation: the constraint name tells which field collided.
			if strings.Contains(pgErr.ConstraintName, "email") {
				return nil, domain.ErrEmailTaken
			}
			return nil, domain.ErrUsernameTaken
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return created, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return findResult(row, "find user by id")
}

func (r *UserRepository) FindByUsernameOrEmail(ctx context.Context, login string) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE username = $1 OR email = lower($1)`, login)
	return findResult(row, "find user by login")
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	return findResult(row, "find user by email")
}

func (r *UserRepository) FindByResetHash(ctx context.Context, hash string, now time.Time) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE reset_token_hash = $1 AND reset_token_expiry > $2`,
		hash, now)
	return findResult(row, "find user by reset hash")
}

func (r *UserRepository) UpdateProfile(ctx context.Context, id int64, p domain.Profile) (*domain.User, error) {
	query := `UPDATE users SET
			profile_name = $1, profile_title = $2, profile_bio = $3,
			profile_location = $4, profile_phone = $5, profile_avatar = $6,
			profile_social_linkedin = $7, profile_social_github = $8, profile_social_twitter = $9,
			updated_at = now()
		WHERE id = $10
		RETURNING ` + userColumns

	row := r.db.QueryRowContext(ctx, query,
		p.Name, p.Title, p.Bio, p.Location, p.Phone, p.Avatar,
		p.LinkedIn, p.GitHub, p.Twitter, id)
	return findResult(row, "update profile")
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	return r.execOne(ctx, "update password",
		`UPDATE users SET password_hash = $1, updated_at = now() WHERE id = $2`, passwordHash, id)
}

func (r *UserRepository) UpdateResetToken(ctx context.Context, id int64, hash string, expiry time.Time) error {
	return r.execOne(ctx, "update reset token",
		`UPDATE users SET reset_token_hash = $1, reset_token_expiry = $2, updated_at = now() WHERE id = $3`,
		hash, expiry, id)
}

func (r *UserRepository) ClearResetToken(ctx context.Context, id int64) error {
	return r.execOne(ctx, "clear reset token",
		`UPDATE users SET reset_token_hash = NULL, reset_token_expiry = NULL, updated_at = now() WHERE id = $1`, id)
}

func (r *UserRepository) UpdateRole(ctx context.Context, id int64, role string) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`UPDATE users SET role = $1, updated_at = now() WHERE id = $2 RETURNING `+userColumns, role, id)
	return findResult(row, "update role")
}

func (r *UserRepository) List(ctx context.Context) ([]domain.User, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+userColumns+` FROM users ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("list users: %w", err)
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	return r.execOne(ctx, "delete user", `DELETE FROM users WHERE id = $1`, id)
}

func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return n, nil
}

// execOne runs a single-row mutation and maps zero affected rows to
// domain.ErrUserNotFound.
func (r *UserRepository) execOne(ctx context.Context, op, query string, args ...any) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*domain.User, error) {
	var (
		u           domain.User
		resetHash   sql.NullString
		resetExpiry sql.NullTime
	)
	err := row.Scan(
		&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Role,
		&u.Profile.Name, &u.Profile.Title, &u.Profile.Bio, &u.Profile.Location,
		&u.Profile.Phone, &u.Profile.Avatar,
		&u.Profile.LinkedIn, &u.Profile.GitHub, &u.Profile.Twitter,
		&resetHash, &resetExpiry, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	u.ResetHash = resetHash.String
	if resetExpiry.Valid {
		expiry := resetExpiry.Time
		u.ResetExpiry = &expiry
	}
	return &u, nil
}

func findResult(row *sql.Row, op string) (*domain.User, error) {
	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}
