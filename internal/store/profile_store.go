package store

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/cycle-nutrition/server/internal/interfaces"
	"github.com/cycle-nutrition/server/internal/schemas"
)

// ErrProfileNotFound is returned when the user has no profile row yet.
var ErrProfileNotFound = errors.New("profile not found")

// ErrInvalidProfileValue is returned when an update carries a value outside
// the known option lists.
var ErrInvalidProfileValue = errors.New("invalid profile value")

// Option lists the profile values are validated against.
var (
	CyclePhases = []string{"Menstrual", "Follicular", "Ovulatory", "Luteal"}

	SupportOptions = []string{
		"Nothing specific",
		"Hormonal balance and regular cycle",
		"Getting back my period",
		"More energy",
		"Acne",
		"Eat more nutritious in general",
		"Digestive health/ Metabolism boost",
	}

	DietaryOptions = []string{
		"Vegan",
		"Vegetarian",
		"Nut allergy",
		"Gluten free",
		"Lactose intolerance",
	}
)

// ProfileStore persists personalization profiles and the chat history.
type ProfileStore interface {
	GetProfile(ctx context.Context, userId string) (*schemas.Profile, error)
	UpdateProfile(ctx context.Context, userId string, profile *schemas.Profile) error
	GetChatHistory(ctx context.Context, userId string, limit int) ([]schemas.ChatMessage, error)
	AppendChatMessage(ctx context.Context, message *schemas.ChatMessage) error
	ClearChatHistory(ctx context.Context, userId string) error
	DeleteAccount(ctx context.Context, userId string) error
}

// PgProfileStore implements ProfileStore on a pgx pool.
type PgProfileStore struct {
	pool interfaces.PgxPoolIface
}

// NewProfileStore creates a ProfileStore backed by the given pool.
func NewProfileStore(pool interfaces.PgxPoolIface) ProfileStore {
	return &PgProfileStore{pool: pool}
}

func (s *PgProfileStore) GetProfile(ctx context.Context, userId string) (*schemas.Profile, error) {
	queryString := "SELECT user_id, phase, goal, diet, updated_at FROM profiles WHERE user_id = $1"

	profile := &schemas.Profile{}
	var updatedAt pgtype.Timestamptz
	err := s.pool.QueryRow(ctx, queryString, userId).Scan(&profile.UserID, &profile.Phase, &profile.Goal, &profile.Diet, &updatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, err
	}

	profile.UpdatedAt = updatedAt.Time
	return profile, nil
}

// UpdateProfile validates the submitted values against the option lists and
// upserts the profile row.
func (s *PgProfileStore) UpdateProfile(ctx context.Context, userId string, profile *schemas.Profile) error {
	if profile.Phase != "" && !contains(CyclePhases, profile.Phase) {
		return ErrInvalidProfileValue
	}
	if profile.Goal != "" && !contains(SupportOptions, profile.Goal) {
		return ErrInvalidProfileValue
	}
	for _, diet := range profile.Diet {
		if !contains(DietaryOptions, diet) {
			return ErrInvalidProfileValue
		}
	}

	queryString := "INSERT INTO profiles (user_id, phase, goal, diet, updated_at) VALUES ($1, $2, $3, $4, $5) " +
		"ON CONFLICT (user_id) DO UPDATE SET phase = $2, goal = $3, diet = $4, updated_at = $5"
	_, err := s.pool.Exec(ctx, queryString, userId, profile.Phase, profile.Goal, profile.Diet, time.Now())
	return err
}

func (s *PgProfileStore) GetChatHistory(ctx context.Context, userId string, limit int) ([]schemas.ChatMessage, error) {
	if limit <= 0 {
		limit = 50
	}

	queryString := "SELECT user_id, role, content, timestamp FROM chat_history WHERE user_id = $1 ORDER BY timestamp DESC LIMIT $2"
	rows, err := s.pool.Query(ctx, queryString, userId, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	messages := make([]schemas.ChatMessage, 0)
	for rows.Next() {
		message := schemas.ChatMessage{}
		var timestamp pgtype.Timestamptz
		if err := rows.Scan(&message.UserID, &message.Role, &message.Content, &timestamp); err != nil {
			return nil, err
		}
		message.Timestamp = timestamp.Time
		messages = append(messages, message)
	}

	return messages, rows.Err()
}

func (s *PgProfileStore) AppendChatMessage(ctx context.Context, message *schemas.ChatMessage) error {
	queryString := "INSERT INTO chat_history (user_id, role, content, timestamp) VALUES ($1, $2, $3, $4)"
	_, err := s.pool.Exec(ctx, queryString, message.UserID, message.Role, message.Content, message.Timestamp)
	return err
}

func (s *PgProfileStore) ClearChatHistory(ctx context.Context, userId string) error {
	queryString := "DELETE FROM chat_history WHERE user_id = $1"
	_, err := s.pool.Exec(ctx, queryString, userId)
	return err
}

// DeleteAccount removes chat history, profile and user row in one
// transaction so an interrupted deletion never leaves a partial account.
func (s *PgProfileStore) DeleteAccount(ctx context.Context, userId string) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	for _, queryString := range []string{
		"DELETE FROM chat_history WHERE user_id = $1",
		"DELETE FROM profiles WHERE user_id = $1",
		"DELETE FROM users WHERE user_id = $1",
	} {
		if _, err := tx.Exec(ctx, queryString, userId); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func contains(options []string, value string) bool {
	for _, option := range options {
		if option == value {
			return true
		}
	}
	return false
}
