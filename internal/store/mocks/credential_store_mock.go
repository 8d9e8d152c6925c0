package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/cycle-nutrition/server/internal/schemas"
)

// MockCredentialStore simulates the credential store in engine tests.
type MockCredentialStore struct {
	mock.Mock
}

func (m *MockCredentialStore) FindUserByEmail(ctx context.Context, email string) (*schemas.User, error) {
	args := m.Called(ctx, email)
	if user := args.Get(0); user != nil {
		return user.(*schemas.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCredentialStore) FindUserByID(ctx context.Context, id string) (*schemas.User, error) {
	args := m.Called(ctx, id)
	if user := args.Get(0); user != nil {
		return user.(*schemas.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCredentialStore) InsertUser(ctx context.Context, user *schemas.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockCredentialStore) UpdateEmailVerified(ctx context.Context, id string, verified bool) error {
	args := m.Called(ctx, id, verified)
	return args.Error(0)
}

func (m *MockCredentialStore) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	args := m.Called(ctx, id, passwordHash)
	return args.Error(0)
}

func (m *MockCredentialStore) UpdateLastLogin(ctx context.Context, id string, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}

func (m *MockCredentialStore) InsertResetToken(ctx context.Context, token *schemas.ResetToken) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockCredentialStore) FindResetToken(ctx context.Context, token string) (*schemas.ResetToken, error) {
	args := m.Called(ctx, token)
	if resetToken := args.Get(0); resetToken != nil {
		return resetToken.(*schemas.ResetToken), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCredentialStore) ConsumeResetToken(ctx context.Context, token string) (*schemas.ResetToken, error) {
	args := m.Called(ctx, token)
	if resetToken := args.Get(0); resetToken != nil {
		return resetToken.(*schemas.ResetToken), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCredentialStore) DeleteResetToken(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}
