package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type MockMailManager struct {
	mock.Mock
}

func (m *MockMailManager) SendPasswordResetMail(ctx context.Context, email, name, resetURL string) error {
	args := m.Called(ctx, email, name, resetURL)
	return args.Error(0)
}
