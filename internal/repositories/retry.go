package repositories

import (
	"context"
	"errors"
	"log"
	"net"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"rentflow-backend/internal/metrics"
)

// Every repository call goes through withRetry: up to 3 attempts with
// linear backoff (1s x attempt number) on transient errors. SQL-level
// errors (constraint violations, bad data) and context cancellation fail
// immediately since retrying a deterministic failure cannot help. The
// billing engine above this layer never retries anything.
const maxQueryAttempts = 3

func retryBackoff(attempt int) time.Duration {
	return time.Duration(attempt) * time.Second
}

// isTransient reports whether the error is worth retrying. Connection-level
// failures are; anything the server rejected (a *pgconn.PgError carries a
// SQLSTATE) is deterministic and is not.
func isTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return false
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	if pgconn.SafeToRetry(err) {
		return true
	}
	// Closed pools and dropped connections surface as plain errors.
	return true
}

// withRetry runs fn up to maxQueryAttempts times. Exhaustion is wrapped in
// a *PersistenceError carrying the operation name.
func withRetry(ctx context.Context, op string, fn func() error) error {
	var lastErr error
	for attempt := 1; attempt <= maxQueryAttempts; attempt++ {
		lastErr = fn()
		if lastErr == nil {
			return nil
		}
		if !isTransient(lastErr) {
			return lastErr
		}
		if attempt == maxQueryAttempts {
			break
		}
		metrics.DBRetries.Inc()
		log.Printf("[DB] %s failed (attempt %d/%d), retrying: %v", op, attempt, maxQueryAttempts, lastErr)
		select {
		case <-time.After(retryBackoff(attempt)):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return &PersistenceError{Op: op, Err: lastErr}
}
