package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/cycle-nutrition/server/internal/schemas"
)

// MockProfileStore simulates the profile store in handler tests.
type MockProfileStore struct {
	mock.Mock
}

func (m *MockProfileStore) GetProfile(ctx context.Context, userId string) (*schemas.Profile, error) {
	args := m.Called(ctx, userId)
	if profile := args.Get(0); profile != nil {
		return profile.(*schemas.Profile), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProfileStore) UpdateProfile(ctx context.Context, userId string, profile *schemas.Profile) error {
	args := m.Called(ctx, userId, profile)
	return args.Error(0)
}

func (m *MockProfileStore) GetChatHistory(ctx context.Context, userId string, limit int) ([]schemas.ChatMessage, error) {
	args := m.Called(ctx, userId, limit)
	if messages := args.Get(0); messages != nil {
		return messages.([]schemas.ChatMessage), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProfileStore) AppendChatMessage(ctx context.Context, message *schemas.ChatMessage) error {
	args := m.Called(ctx, message)
	return args.Error(0)
}

func (m *MockProfileStore) ClearChatHistory(ctx context.Context, userId string) error {
	args := m.Called(ctx, userId)
	return args.Error(0)
}

func (m *MockProfileStore) DeleteAccount(ctx context.Context, userId string) error {
	args := m.Called(ctx, userId)
	return args.Error(0)
}
