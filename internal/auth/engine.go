// Package auth implements the authentication engine: registration, login,
// session verification, email verification and the password reset/change
// lifecycle. The engine holds no mutable state of its own; all state lives
// in the credential store, so it is safe to call concurrently.
package auth

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/cycle-nutrition/server/internal/config"
	"github.com/cycle-nutrition/server/internal/managers"
	"github.com/cycle-nutrition/server/internal/schemas"
	"github.com/cycle-nutrition/server/internal/store"
	"github.com/cycle-nutrition/server/internal/utils"
	"github.com/cycle-nutrition/server/internal/validators"
)

const (
	auditCategoryAuth  = "auth"
	auditCategoryEmail = "email"

	resetTokenBytes = 32
)

// Engine orchestrates the auth flows across the credential store, the token
// codec, the mail gateway and the audit sink.
type Engine struct {
	credentials store.CredentialStore
	tokens      managers.TokenMgr
	mail        managers.MailMgr
	audit       managers.AuditMgr
	cfg         *config.Config
}

// NewEngine wires the engine with its collaborators.
func NewEngine(credentials store.CredentialStore, tokens managers.TokenMgr, mail managers.MailMgr, audit managers.AuditMgr, cfg *config.Config) *Engine {
	return &Engine{
		credentials: credentials,
		tokens:      tokens,
		mail:        mail,
		audit:       audit,
		cfg:         cfg,
	}
}

// Register creates a new unverified account and sends the verification
// mail. No session is issued at registration time. The user row survives a
// failed mail send; the caller can request a resend.
func (e *Engine) Register(ctx context.Context, email, password string) (*schemas.MessageDTO, *Error) {
	if !validators.ValidateEmail(email) {
		e.auditFailure(auditCategoryAuth, "register", "", "invalid_email")
		return nil, validationError(schemas.InvalidEmail, errors.New("invalid email"))
	}

	if err := validators.ValidatePassword(password, e.cfg.PasswordMinLength); err != nil {
		e.auditFailure(auditCategoryAuth, "register", "", "invalid_password")
		return nil, validationError(policyError(err), err)
	}

	// Friendly pre-check only. The unique constraint on users.email is what
	// actually closes the check-then-insert race under concurrent
	// registration.
	_, err := e.credentials.FindUserByEmail(ctx, email)
	if err == nil {
		e.auditFailure(auditCategoryAuth, "register", "", "user_exists")
		return nil, conflictError(schemas.UserExists, errors.New("user exists"))
	}
	if !errors.Is(err, store.ErrUserNotFound) {
		e.auditFailure(auditCategoryAuth, "register", "", err.Error())
		return nil, dependencyError(err)
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), e.bcryptCost())
	if err != nil {
		e.auditFailure(auditCategoryAuth, "register", "", err.Error())
		return nil, dependencyError(err)
	}

	user := &schemas.User{
		ID:            uuid.New(),
		Email:         email,
		PasswordHash:  string(passwordHash),
		EmailVerified: false,
		CreatedAt:     time.Now(),
		LastLogin:     nil,
	}

	if err := e.credentials.InsertUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrDuplicateUser) {
			e.auditFailure(auditCategoryAuth, "register", "", "user_exists")
			return nil, conflictError(schemas.UserExists, err)
		}
		e.auditFailure(auditCategoryAuth, "register", "", err.Error())
		return nil, dependencyError(err)
	}

	if authErr := e.sendVerificationMail(user.ID.String(), email); authErr != nil {
		// Deliberately no rollback: the account exists, the mail can be
		// re-sent via ResendVerification.
		return nil, authErr
	}

	e.audit.Record(auditCategoryAuth, "register", user.ID.String(), true, nil)
	return &schemas.MessageDTO{
		Message: "Registration successful! Please check your email to verify your account",
	}, nil
}

// Login verifies the credentials and mints a session token. A missing user
// and a wrong password produce the same generic failure so account
// existence cannot be probed.
func (e *Engine) Login(ctx context.Context, email, password string) (*schemas.SessionDTO, *Error) {
	if !validators.ValidateEmail(email) {
		e.auditFailure(auditCategoryAuth, "login", "", "invalid_email")
		return nil, validationError(schemas.InvalidEmail, errors.New("invalid email"))
	}

	user, err := e.credentials.FindUserByEmail(ctx, email)
	if errors.Is(err, store.ErrUserNotFound) {
		e.auditFailure(auditCategoryAuth, "login", "", "user_not_found")
		return nil, authenticationError(schemas.InvalidCredentials, err)
	}
	if err != nil {
		e.auditFailure(auditCategoryAuth, "login", "", err.Error())
		return nil, dependencyError(err)
	}

	if !user.EmailVerified {
		e.auditFailure(auditCategoryAuth, "login", user.ID.String(), "email_not_verified")
		return nil, authenticationError(schemas.EmailVerificationRequired, errors.New("email not verified"))
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		e.auditFailure(auditCategoryAuth, "login", user.ID.String(), "invalid_password")
		return nil, authenticationError(schemas.InvalidCredentials, err)
	}

	sessionToken, err := e.tokens.Issue(user.ID.String(), managers.PurposeSession, e.cfg.SessionTTL)
	if err != nil {
		e.auditFailure(auditCategoryAuth, "login", user.ID.String(), err.Error())
		return nil, dependencyError(err)
	}

	if err := e.credentials.UpdateLastLogin(ctx, user.ID.String(), time.Now()); err != nil {
		e.auditFailure(auditCategoryAuth, "login", user.ID.String(), err.Error())
		return nil, dependencyError(err)
	}

	e.audit.Record(auditCategoryAuth, "login", user.ID.String(), true, nil)
	return &schemas.SessionDTO{
		Id:           user.ID.String(),
		Email:        user.Email,
		SessionToken: sessionToken,
	}, nil
}

// VerifySession checks a session token and returns its subject. Read-only:
// no store access happens here.
func (e *Engine) VerifySession(token string) (string, *Error) {
	subject, err := e.tokens.Verify(token, managers.PurposeSession)
	if errors.Is(err, managers.ErrTokenExpired) {
		e.auditFailure(auditCategoryAuth, "session_verify", "", "session_expired")
		return "", authenticationError(schemas.SessionExpired, err)
	}
	if err != nil {
		e.auditFailure(auditCategoryAuth, "session_verify", "", "invalid_token")
		return "", tokenError(schemas.InvalidToken, err)
	}

	e.audit.Record(auditCategoryAuth, "session_verify", subject, true, nil)
	return subject, nil
}

// VerifyEmail consumes a verification-purpose token and marks the account
// verified. Verifying an already-verified account is harmless.
func (e *Engine) VerifyEmail(ctx context.Context, token string) (*schemas.MessageDTO, *Error) {
	subject, err := e.tokens.Verify(token, managers.PurposeVerification)
	if err != nil {
		e.auditFailure(auditCategoryAuth, "email_verify", "", "invalid_token")
		return nil, tokenError(schemas.InvalidToken, err)
	}

	if err := e.credentials.UpdateEmailVerified(ctx, subject, true); err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			e.auditFailure(auditCategoryAuth, "email_verify", subject, "user_not_found")
			return nil, tokenError(schemas.InvalidToken, err)
		}
		e.auditFailure(auditCategoryAuth, "email_verify", subject, err.Error())
		return nil, dependencyError(err)
	}

	e.audit.Record(auditCategoryAuth, "email_verify", subject, true, nil)
	return &schemas.MessageDTO{Message: "Email verified successfully"}, nil
}

// ResendVerification re-sends the verification mail for an unverified
// account.
func (e *Engine) ResendVerification(ctx context.Context, email string) (*schemas.MessageDTO, *Error) {
	if !validators.ValidateEmail(email) {
		e.auditFailure(auditCategoryAuth, "verification_resend", "", "invalid_email")
		return nil, validationError(schemas.InvalidEmail, errors.New("invalid email"))
	}

	user, err := e.credentials.FindUserByEmail(ctx, email)
	if errors.Is(err, store.ErrUserNotFound) {
		e.auditFailure(auditCategoryAuth, "verification_resend", "", "user_not_found")
		return nil, authenticationError(schemas.InvalidCredentials, err)
	}
	if err != nil {
		e.auditFailure(auditCategoryAuth, "verification_resend", "", err.Error())
		return nil, dependencyError(err)
	}

	if user.EmailVerified {
		// Same write either way, nothing to resend.
		e.audit.Record(auditCategoryAuth, "verification_resend", user.ID.String(), true, map[string]interface{}{"already_verified": true})
		return &schemas.MessageDTO{Message: "This account is already verified"}, nil
	}

	if authErr := e.sendVerificationMail(user.ID.String(), email); authErr != nil {
		return nil, authErr
	}

	e.audit.Record(auditCategoryAuth, "verification_resend", user.ID.String(), true, nil)
	return &schemas.MessageDTO{Message: "Verification email sent"}, nil
}

// SendPasswordReset creates a persisted single-use reset token and mails
// the reset link. The token is opaque random data, intentionally not part
// of the signed-token scheme, so consumption can be enforced by deletion.
func (e *Engine) SendPasswordReset(ctx context.Context, email string) (*schemas.MessageDTO, *Error) {
	if !validators.ValidateEmail(email) {
		e.auditFailure(auditCategoryAuth, "password_reset_request", "", "invalid_email")
		return nil, validationError(schemas.InvalidEmail, errors.New("invalid email"))
	}

	user, err := e.credentials.FindUserByEmail(ctx, email)
	if errors.Is(err, store.ErrUserNotFound) {
		e.auditFailure(auditCategoryAuth, "password_reset_request", "", "user_not_found")
		return nil, authenticationError(schemas.InvalidCredentials, err)
	}
	if err != nil {
		e.auditFailure(auditCategoryAuth, "password_reset_request", "", err.Error())
		return nil, dependencyError(err)
	}

	token, err := utils.GenerateOpaqueToken(resetTokenBytes)
	if err != nil {
		e.auditFailure(auditCategoryAuth, "password_reset_request", user.ID.String(), err.Error())
		return nil, dependencyError(err)
	}

	resetToken := &schemas.ResetToken{
		Email:     email,
		Token:     token,
		ExpiresAt: time.Now().Add(e.cfg.ResetTTL),
	}
	if err := e.credentials.InsertResetToken(ctx, resetToken); err != nil {
		e.auditFailure(auditCategoryAuth, "password_reset_request", user.ID.String(), err.Error())
		return nil, dependencyError(err)
	}

	link := e.cfg.AppURL + "/reset-password?token=" + token
	if !e.mail.SendPasswordResetMail(email, link) {
		e.auditFailure(auditCategoryEmail, "password_reset", user.ID.String(), "send_failed")
		return nil, dependencyError(errors.New("password reset mail could not be sent"))
	}

	e.audit.Record(auditCategoryAuth, "password_reset_request", user.ID.String(), true, nil)
	e.audit.Record(auditCategoryEmail, "password_reset", user.ID.String(), true, nil)
	return &schemas.MessageDTO{
		Message: "Password reset instructions have been sent to your email",
	}, nil
}

// VerifyResetToken re-reads the stored reset token and checks its expiry
// without consuming it. Expired rows are cleaned up on sight.
func (e *Engine) VerifyResetToken(ctx context.Context, token string) (string, *Error) {
	resetToken, err := e.credentials.FindResetToken(ctx, token)
	if errors.Is(err, store.ErrResetTokenNotFound) {
		e.auditFailure(auditCategoryAuth, "reset_token_verify", "", "token_not_found")
		return "", tokenError(schemas.InvalidToken, err)
	}
	if err != nil {
		e.auditFailure(auditCategoryAuth, "reset_token_verify", "", err.Error())
		return "", dependencyError(err)
	}

	if time.Now().After(resetToken.ExpiresAt) {
		_ = e.credentials.DeleteResetToken(ctx, token)
		e.auditFailure(auditCategoryAuth, "reset_token_verify", "", "token_expired")
		return "", tokenError(schemas.InvalidToken, errors.New("reset token expired"))
	}

	e.audit.Record(auditCategoryAuth, "reset_token_verify", "", true, nil)
	return resetToken.Email, nil
}

// ResetPassword consumes a reset token and writes the new password hash.
// Consumption is the store's atomic delete, so the token is single-use even
// under concurrent attempts. A rejected new password does not consume the
// token; the user can retry with the same link.
func (e *Engine) ResetPassword(ctx context.Context, token, newPassword string) (*schemas.MessageDTO, *Error) {
	email, authErr := e.VerifyResetToken(ctx, token)
	if authErr != nil {
		return nil, authErr
	}

	if err := validators.ValidatePassword(newPassword, e.cfg.PasswordMinLength); err != nil {
		e.auditFailure(auditCategoryAuth, "password_reset", "", "invalid_password")
		return nil, validationError(policyError(err), err)
	}

	if _, err := e.credentials.ConsumeResetToken(ctx, token); err != nil {
		if errors.Is(err, store.ErrResetTokenNotFound) {
			e.auditFailure(auditCategoryAuth, "password_reset", "", "token_already_consumed")
			return nil, tokenError(schemas.InvalidToken, err)
		}
		e.auditFailure(auditCategoryAuth, "password_reset", "", err.Error())
		return nil, dependencyError(err)
	}

	user, err := e.credentials.FindUserByEmail(ctx, email)
	if err != nil {
		e.auditFailure(auditCategoryAuth, "password_reset", "", err.Error())
		return nil, dependencyError(err)
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(newPassword), e.bcryptCost())
	if err != nil {
		e.auditFailure(auditCategoryAuth, "password_reset", user.ID.String(), err.Error())
		return nil, dependencyError(err)
	}

	if err := e.credentials.UpdatePassword(ctx, user.ID.String(), string(passwordHash)); err != nil {
		e.auditFailure(auditCategoryAuth, "password_reset", user.ID.String(), err.Error())
		return nil, dependencyError(err)
	}

	e.audit.Record(auditCategoryAuth, "password_reset", user.ID.String(), true, nil)
	return &schemas.MessageDTO{Message: "Password changed successfully"}, nil
}

// ChangePassword rewrites the password of an authenticated user after
// checking the old one.
func (e *Engine) ChangePassword(ctx context.Context, userId, oldPassword, newPassword string) (*schemas.MessageDTO, *Error) {
	user, err := e.credentials.FindUserByID(ctx, userId)
	if errors.Is(err, store.ErrUserNotFound) {
		e.auditFailure(auditCategoryAuth, "password_change", userId, "user_not_found")
		return nil, authenticationError(schemas.InvalidCredentials, err)
	}
	if err != nil {
		e.auditFailure(auditCategoryAuth, "password_change", userId, err.Error())
		return nil, dependencyError(err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(oldPassword)); err != nil {
		e.auditFailure(auditCategoryAuth, "password_change", userId, "invalid_password")
		return nil, authenticationError(schemas.InvalidCredentials, err)
	}

	if err := validators.ValidatePassword(newPassword, e.cfg.PasswordMinLength); err != nil {
		e.auditFailure(auditCategoryAuth, "password_change", userId, "invalid_new_password")
		return nil, validationError(policyError(err), err)
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(newPassword), e.bcryptCost())
	if err != nil {
		e.auditFailure(auditCategoryAuth, "password_change", userId, err.Error())
		return nil, dependencyError(err)
	}

	if err := e.credentials.UpdatePassword(ctx, userId, string(passwordHash)); err != nil {
		e.auditFailure(auditCategoryAuth, "password_change", userId, err.Error())
		return nil, dependencyError(err)
	}

	e.audit.Record(auditCategoryAuth, "password_change", userId, true, nil)
	return &schemas.MessageDTO{Message: "Password changed successfully"}, nil
}

func (e *Engine) sendVerificationMail(userId, email string) *Error {
	token, err := e.tokens.Issue(userId, managers.PurposeVerification, e.cfg.VerificationTTL)
	if err != nil {
		e.auditFailure(auditCategoryEmail, "verification", userId, err.Error())
		return dependencyError(err)
	}

	link := e.cfg.AppURL + "/verify?token=" + token
	if !e.mail.SendVerificationMail(email, link) {
		e.auditFailure(auditCategoryEmail, "verification", userId, "send_failed")
		return &Error{Kind: KindDependency, Public: schemas.EmailNotSent, cause: errors.New("verification mail could not be sent")}
	}

	e.audit.Record(auditCategoryEmail, "verification", userId, true, nil)
	return nil
}

func (e *Engine) auditFailure(category, eventType, subjectId, reason string) {
	e.audit.Record(category, eventType, subjectId, false, map[string]interface{}{"error": reason})
}

func (e *Engine) bcryptCost() int {
	if e.cfg.BcryptCost > 0 {
		return e.cfg.BcryptCost
	}
	return bcrypt.DefaultCost
}

// policyError maps a password-policy failure to its public message.
func policyError(err error) *schemas.CustomError {
	switch {
	case errors.Is(err, validators.ErrPasswordTooShort):
		return schemas.PasswordTooShort
	case errors.Is(err, validators.ErrPasswordMissingUppercase):
		return schemas.PasswordMissingUppercase
	case errors.Is(err, validators.ErrPasswordMissingLowercase):
		return schemas.PasswordMissingLowercase
	case errors.Is(err, validators.ErrPasswordMissingDigit):
		return schemas.PasswordMissingDigit
	default:
		return schemas.BadRequest
	}
}
