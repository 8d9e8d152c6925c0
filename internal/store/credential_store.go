// Package store implements the persistence contracts of the auth engine on
// top of a pgx connection pool. Uniqueness and single-use guarantees are
// delegated to the database: users.email carries a unique constraint and
// reset tokens are deleted the moment they are consumed, so the engine stays
// correct under concurrent callers.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/cycle-nutrition/server/internal/interfaces"
	"github.com/cycle-nutrition/server/internal/schemas"
)

var (
	// ErrDuplicateUser is returned when an insert hits the unique
	// constraint on users.email. This is the authoritative duplicate check;
	// the engine's pre-check only exists for a friendlier error path.
	ErrDuplicateUser = errors.New("a user with this email already exists")
	// ErrUserNotFound is returned when no user matches the lookup.
	ErrUserNotFound = errors.New("user not found")
	// ErrResetTokenNotFound is returned when a reset token does not exist,
	// including the case where it was already consumed.
	ErrResetTokenNotFound = errors.New("reset token not found")
)

const uniqueViolationCode = "23505"

// CredentialStore is the access contract the auth engine requires from the
// user/reset-token persistence.
type CredentialStore interface {
	FindUserByEmail(ctx context.Context, email string) (*schemas.User, error)
	FindUserByID(ctx context.Context, id string) (*schemas.User, error)
	InsertUser(ctx context.Context, user *schemas.User) error
	UpdateEmailVerified(ctx context.Context, id string, verified bool) error
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	UpdateLastLogin(ctx context.Context, id string, at time.Time) error
	InsertResetToken(ctx context.Context, token *schemas.ResetToken) error
	FindResetToken(ctx context.Context, token string) (*schemas.ResetToken, error)
	ConsumeResetToken(ctx context.Context, token string) (*schemas.ResetToken, error)
	DeleteResetToken(ctx context.Context, token string) error
}

// PgCredentialStore implements CredentialStore on a pgx pool.
type PgCredentialStore struct {
	pool interfaces.PgxPoolIface
}

// NewCredentialStore creates a CredentialStore backed by the given pool.
func NewCredentialStore(pool interfaces.PgxPoolIface) CredentialStore {
	return &PgCredentialStore{pool: pool}
}

func (s *PgCredentialStore) FindUserByEmail(ctx context.Context, email string) (*schemas.User, error) {
	queryString := "SELECT user_id, email, password, email_verified, created_at, last_login FROM users WHERE email = $1"
	return s.scanUser(s.pool.QueryRow(ctx, queryString, email))
}

func (s *PgCredentialStore) FindUserByID(ctx context.Context, id string) (*schemas.User, error) {
	queryString := "SELECT user_id, email, password, email_verified, created_at, last_login FROM users WHERE user_id = $1"
	return s.scanUser(s.pool.QueryRow(ctx, queryString, id))
}

func (s *PgCredentialStore) scanUser(row pgx.Row) (*schemas.User, error) {
	user := &schemas.User{}
	var createdAt, lastLogin pgtype.Timestamptz

	err := row.Scan(&user.ID, &user.Email, &user.PasswordHash, &user.EmailVerified, &createdAt, &lastLogin)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	user.CreatedAt = createdAt.Time
	if lastLogin.Valid {
		t := lastLogin.Time
		user.LastLogin = &t
	}

	return user, nil
}

// InsertUser persists the full user row, or nothing at all. A concurrent
// insert of the same email surfaces as ErrDuplicateUser through the unique
// constraint.
func (s *PgCredentialStore) InsertUser(ctx context.Context, user *schemas.User) error {
	queryString := "INSERT INTO users (user_id, email, password, email_verified, created_at, last_login) VALUES ($1, $2, $3, $4, $5, $6)"
	_, err := s.pool.Exec(ctx, queryString, user.ID, user.Email, user.PasswordHash, user.EmailVerified, user.CreatedAt, user.LastLogin)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
		return ErrDuplicateUser
	}
	return err
}

func (s *PgCredentialStore) UpdateEmailVerified(ctx context.Context, id string, verified bool) error {
	queryString := "UPDATE users SET email_verified = $1 WHERE user_id = $2"
	tag, err := s.pool.Exec(ctx, queryString, verified, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (s *PgCredentialStore) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	queryString := "UPDATE users SET password = $1 WHERE user_id = $2"
	tag, err := s.pool.Exec(ctx, queryString, passwordHash, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (s *PgCredentialStore) UpdateLastLogin(ctx context.Context, id string, at time.Time) error {
	queryString := "UPDATE users SET last_login = $1 WHERE user_id = $2"
	tag, err := s.pool.Exec(ctx, queryString, at, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

// InsertResetToken replaces any previous pending token for the email so only
// the most recently issued link works.
func (s *PgCredentialStore) InsertResetToken(ctx context.Context, token *schemas.ResetToken) error {
	queryString := "DELETE FROM reset_tokens WHERE email = $1"
	if _, err := s.pool.Exec(ctx, queryString, token.Email); err != nil {
		return err
	}

	queryString = "INSERT INTO reset_tokens (email, token, expires_at) VALUES ($1, $2, $3)"
	_, err := s.pool.Exec(ctx, queryString, token.Email, token.Token, token.ExpiresAt)
	return err
}

func (s *PgCredentialStore) FindResetToken(ctx context.Context, token string) (*schemas.ResetToken, error) {
	queryString := "SELECT email, token, expires_at FROM reset_tokens WHERE token = $1"

	resetToken := &schemas.ResetToken{}
	var expiresAt pgtype.Timestamptz
	err := s.pool.QueryRow(ctx, queryString, token).Scan(&resetToken.Email, &resetToken.Token, &expiresAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrResetTokenNotFound
	}
	if err != nil {
		return nil, err
	}

	resetToken.ExpiresAt = expiresAt.Time
	return resetToken, nil
}

// ConsumeResetToken atomically deletes the token row and returns it. Two
// concurrent consumers of the same token cannot both succeed: the delete is
// the compare-and-delete, the loser sees ErrResetTokenNotFound.
func (s *PgCredentialStore) ConsumeResetToken(ctx context.Context, token string) (*schemas.ResetToken, error) {
	queryString := "DELETE FROM reset_tokens WHERE token = $1 RETURNING email, token, expires_at"

	resetToken := &schemas.ResetToken{}
	var expiresAt pgtype.Timestamptz
	err := s.pool.QueryRow(ctx, queryString, token).Scan(&resetToken.Email, &resetToken.Token, &expiresAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrResetTokenNotFound
	}
	if err != nil {
		return nil, err
	}

	resetToken.ExpiresAt = expiresAt.Time
	return resetToken, nil
}

func (s *PgCredentialStore) DeleteResetToken(ctx context.Context, token string) error {
	queryString := "DELETE FROM reset_tokens WHERE token = $1"
	_, err := s.pool.Exec(ctx, queryString, token)
	return err
}
