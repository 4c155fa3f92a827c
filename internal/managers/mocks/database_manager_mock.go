package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"fitness-tracker/internal/interfaces"
)

// MockDatabaseManager hands out a pgxmock pool registered with On("GetPool").
type MockDatabaseManager struct {
	mock.Mock
}

func (m *MockDatabaseManager) GetPool() interfaces.PgxPoolIface {
	args := m.Called()
	return args.Get(0).(interfaces.PgxPoolIface)
}

func (m *MockDatabaseManager) Ping(ctx context.Context) error {
	return m.GetPool().Ping(ctx)
}
