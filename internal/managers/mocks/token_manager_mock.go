package mocks

import (
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/cycle-nutrition/server/internal/managers"
)

// MockTokenManager simulates the signed-token codec in tests.
type MockTokenManager struct {
	mock.Mock
}

func (m *MockTokenManager) Issue(subject string, purpose managers.TokenPurpose, ttl time.Duration) (string, error) {
	args := m.Called(subject, purpose, ttl)
	return args.String(0), args.Error(1)
}

func (m *MockTokenManager) Verify(tokenString string, expected managers.TokenPurpose) (string, error) {
	args := m.Called(tokenString, expected)
	return args.String(0), args.Error(1)
}
