package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"

	"fitness-tracker/internal/interfaces"
	"fitness-tracker/internal/schemas"
)

// BeginTransaction begins a new database transaction bound to the request context.
// If the transaction fails to begin, it logs and sends an error response and returns nil.
func BeginTransaction(ctx *gin.Context, pool interfaces.PgxPoolIface) pgx.Tx {
	LogMessageWithFields(ctx, "debug", "Beginning transaction...")

	tx, err := pool.Begin(ctx)
	if err != nil {
		WriteAndLogError(ctx, schemas.DatabaseError, http.StatusInternalServerError, err)
		return nil
	}

	return tx
}

// RollbackTransaction rolls back the transaction unless it was already committed.
// It is meant to be deferred right after BeginTransaction.
func RollbackTransaction(ctx *gin.Context, tx pgx.Tx) {
	if err := tx.Rollback(ctx); err != nil {
		if errors.Is(err, pgx.ErrTxClosed) {
			return
		}
		LogMessageWithFieldsAndError(ctx, "debug", "Rollback skipped", err)
		return
	}
	LogMessageWithFields(ctx, "debug", "Transaction rolled back")
}

// CommitTransaction attempts to commit the given transaction.
// If the commit fails, it logs the error, sends an error response, and returns the error.
func CommitTransaction(ctx *gin.Context, tx pgx.Tx) error {
	LogMessageWithFields(ctx, "debug", "Committing transaction...")

	if err := tx.Commit(ctx); err != nil {
		WriteAndLogError(ctx, schemas.DatabaseError, http.StatusInternalServerError, err)
		return err
	}

	LogMessageWithFields(ctx, "debug", "Transaction committed")
	return nil
}
