// Package managers wraps the infrastructure the handlers depend on: database, tokens, mail and rate limiting.
package managers

import (
	"context"

	log "github.com/sirupsen/logrus"

	"fitness-tracker/internal/interfaces"
)

// DatabaseMgr defines the interface for database management.
// It provides access to the connection pool and a liveness check for the health route.
type DatabaseMgr interface {
	GetPool() interfaces.PgxPoolIface
	Ping(ctx context.Context) error
}

// DatabaseManager is responsible for managing the database connection pool.
type DatabaseManager struct {
	Pool interfaces.PgxPoolIface
}

// GetPool returns the database connection pool managed by the DatabaseManager.
func (dbMgr *DatabaseManager) GetPool() interfaces.PgxPoolIface {
	return dbMgr.Pool
}

// Ping checks that the database still answers.
func (dbMgr *DatabaseManager) Ping(ctx context.Context) error {
	return dbMgr.Pool.Ping(ctx)
}

// NewDatabaseManager creates a DatabaseManager for the provided connection pool.
func NewDatabaseManager(pool interfaces.PgxPoolIface) DatabaseMgr {
	log.Info("Initializing database manager")
	return &DatabaseManager{Pool: pool}
}
