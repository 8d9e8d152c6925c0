package store

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cycle-nutrition/server/internal/schemas"
)

func setupCredentialStore(t *testing.T) (CredentialStore, pgxmock.PgxPoolIface) {
	t.Helper()
	poolMock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(poolMock.Close)

	return NewCredentialStore(poolMock), poolMock
}

func TestFindUserByEmail(t *testing.T) {
	credentialStore, poolMock := setupCredentialStore(t)

	userId := uuid.New()
	createdAt := time.Now().Add(-time.Hour)
	lastLogin := time.Now().Add(-time.Minute)

	poolMock.ExpectQuery("SELECT").
		WithArgs("a@example.com").
		WillReturnRows(pgxmock.NewRows([]string{"user_id", "email", "password", "email_verified", "created_at", "last_login"}).
			AddRow(userId, "a@example.com", "$2a$10$hash", true, createdAt, lastLogin))

	user, err := credentialStore.FindUserByEmail(context.Background(), "a@example.com")
	require.NoError(t, err)

	assert.Equal(t, userId, user.ID)
	assert.Equal(t, "a@example.com", user.Email)
	assert.True(t, user.EmailVerified)
	require.NotNil(t, user.LastLogin)
	assert.NoError(t, poolMock.ExpectationsWereMet())
}

func TestFindUserByEmailNotFound(t *testing.T) {
	credentialStore, poolMock := setupCredentialStore(t)

	poolMock.ExpectQuery("SELECT").
		WithArgs("missing@example.com").
		WillReturnError(pgx.ErrNoRows)

	_, err := credentialStore.FindUserByEmail(context.Background(), "missing@example.com")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestInsertUserDuplicate(t *testing.T) {
	credentialStore, poolMock := setupCredentialStore(t)

	user := &schemas.User{
		ID:        uuid.New(),
		Email:     "a@example.com",
		CreatedAt: time.Now(),
	}

	poolMock.ExpectExec("INSERT INTO users").
		WithArgs(user.ID, user.Email, user.PasswordHash, user.EmailVerified, user.CreatedAt, user.LastLogin).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})

	err := credentialStore.InsertUser(context.Background(), user)
	assert.ErrorIs(t, err, ErrDuplicateUser)
}

func TestInsertUser(t *testing.T) {
	credentialStore, poolMock := setupCredentialStore(t)

	user := &schemas.User{
		ID:        uuid.New(),
		Email:     "a@example.com",
		CreatedAt: time.Now(),
	}

	poolMock.ExpectExec("INSERT INTO users").
		WithArgs(user.ID, user.Email, user.PasswordHash, user.EmailVerified, user.CreatedAt, user.LastLogin).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	assert.NoError(t, credentialStore.InsertUser(context.Background(), user))
	assert.NoError(t, poolMock.ExpectationsWereMet())
}

func TestUpdateEmailVerifiedNotFound(t *testing.T) {
	credentialStore, poolMock := setupCredentialStore(t)

	poolMock.ExpectExec("UPDATE users SET email_verified").
		WithArgs(true, "missing-id").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := credentialStore.UpdateEmailVerified(context.Background(), "missing-id", true)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestInsertResetTokenReplacesPrevious(t *testing.T) {
	credentialStore, poolMock := setupCredentialStore(t)

	token := &schemas.ResetToken{
		Email:     "a@example.com",
		Token:     "opaque-token",
		ExpiresAt: time.Now().Add(time.Hour),
	}

	poolMock.ExpectExec("DELETE FROM reset_tokens").
		WithArgs(token.Email).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	poolMock.ExpectExec("INSERT INTO reset_tokens").
		WithArgs(token.Email, token.Token, token.ExpiresAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	assert.NoError(t, credentialStore.InsertResetToken(context.Background(), token))
	assert.NoError(t, poolMock.ExpectationsWereMet())
}

func TestFindResetTokenNotFound(t *testing.T) {
	credentialStore, poolMock := setupCredentialStore(t)

	poolMock.ExpectQuery("SELECT").
		WithArgs("consumed-token").
		WillReturnError(pgx.ErrNoRows)

	_, err := credentialStore.FindResetToken(context.Background(), "consumed-token")
	assert.ErrorIs(t, err, ErrResetTokenNotFound)
}

func TestConsumeResetToken(t *testing.T) {
	credentialStore, poolMock := setupCredentialStore(t)
	expiresAt := time.Now().Add(time.Hour)

	poolMock.ExpectQuery("DELETE FROM reset_tokens").
		WithArgs("opaque-token").
		WillReturnRows(pgxmock.NewRows([]string{"email", "token", "expires_at"}).
			AddRow("a@example.com", "opaque-token", expiresAt))

	resetToken, err := credentialStore.ConsumeResetToken(context.Background(), "opaque-token")
	require.NoError(t, err)
	assert.Equal(t, "a@example.com", resetToken.Email)
	assert.NoError(t, poolMock.ExpectationsWereMet())
}

func TestConsumeResetTokenAlreadyConsumed(t *testing.T) {
	credentialStore, poolMock := setupCredentialStore(t)

	poolMock.ExpectQuery("DELETE FROM reset_tokens").
		WithArgs("consumed-token").
		WillReturnError(pgx.ErrNoRows)

	_, err := credentialStore.ConsumeResetToken(context.Background(), "consumed-token")
	assert.ErrorIs(t, err, ErrResetTokenNotFound)
}

func TestDeleteResetToken(t *testing.T) {
	credentialStore, poolMock := setupCredentialStore(t)

	poolMock.ExpectExec("DELETE FROM reset_tokens").
		WithArgs("opaque-token").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	assert.NoError(t, credentialStore.DeleteResetToken(context.Background(), "opaque-token"))
}
