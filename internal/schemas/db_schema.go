// Package schemas defines the data structures
package schemas

import (
	"time"

	"github.com/google/uuid"
)

// User represents the data model for a user in the system. PasswordHash is
// the bcrypt hash, never the plaintext.
type User struct {
	ID            uuid.UUID  `json:"id"`             // Unique identifier for the user.
	Email         string     `json:"email"`          // Email address of the user, unique across all users.
	PasswordHash  string     `json:"-"`              // Bcrypt hash of the user's password.
	EmailVerified bool       `json:"email_verified"` // Whether the email address has been verified.
	CreatedAt     time.Time  `json:"created_at"`     // Timestamp when the user was created.
	LastLogin     *time.Time `json:"last_login"`     // Timestamp of the last successful login, nil before the first.
}

// ResetToken represents a persisted password-reset token. It is single-use:
// the row is deleted the moment a password change consumes it.
type ResetToken struct {
	Email     string    `json:"email"`      // Email address the reset was requested for.
	Token     string    `json:"token"`      // Opaque random token string.
	ExpiresAt time.Time `json:"expires_at"` // Timestamp after which the token is rejected.
}

// Profile represents the personalization profile attached to a user.
type Profile struct {
	UserID    uuid.UUID `json:"user_id"`
	Phase     string    `json:"phase"` // Current menstrual cycle phase.
	Goal      string    `json:"goal"`  // Main support goal.
	Diet      []string  `json:"diet"`  // Dietary preferences.
	UpdatedAt time.Time `json:"updated_at"`
}

// ChatMessage represents one entry of the persisted chat history.
type ChatMessage struct {
	UserID    uuid.UUID `json:"user_id"`
	Role      string    `json:"role"` // "user" or "assistant"
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}
