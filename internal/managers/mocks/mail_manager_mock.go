package mocks

import "github.com/stretchr/testify/mock"

type MockMailManager struct {
	mock.Mock
}

func (m *MockMailManager) SendVerificationMail(email, link string) bool {
	args := m.Called(email, link)
	return args.Bool(0)
}

func (m *MockMailManager) SendPasswordResetMail(email, link string) bool {
	args := m.Called(email, link)
	return args.Bool(0)
}
