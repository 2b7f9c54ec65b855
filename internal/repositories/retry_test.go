package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeNetError struct{}

func (fakeNetError) Error() string   { return "connection reset" }
func (fakeNetError) Timeout() bool   { return true }
func (fakeNetError) Temporary() bool { return true }

func TestIsTransient(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"context canceled", context.Canceled, false},
		{"deadline exceeded", context.DeadlineExceeded, false},
		{"no rows", pgx.ErrNoRows, false},
		{"sqlstate error", &pgconn.PgError{Code: "23505"}, false},
		{"net error", fakeNetError{}, true},
		{"plain connection error", errors.New("conn closed"), true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, isTransient(tc.err))
		})
	}
}

func TestRetryBackoffIsLinear(t *testing.T) {
	assert.Equal(t, 1*time.Second, retryBackoff(1))
	assert.Equal(t, 2*time.Second, retryBackoff(2))
	assert.Equal(t, 3*time.Second, retryBackoff(3))
}

func TestWithRetry_SucceedsAfterTransientFailure(t *testing.T) {
	calls := 0
	err := withRetry(context.Background(), "test op", func() error {
		calls++
		if calls < 2 {
			return fakeNetError{}
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestWithRetry_DoesNotRetryDeterministicErrors(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23503"}
	calls := 0
	err := withRetry(context.Background(), "test op", func() error {
		calls++
		return pgErr
	})
	assert.Equal(t, 1, calls)
	assert.ErrorIs(t, err, error(pgErr))
}

func TestWithRetry_ExhaustionWrapsPersistenceError(t *testing.T) {
	calls := 0
	err := withRetry(context.Background(), "list leases", func() error {
		calls++
		return fakeNetError{}
	})
	assert.Equal(t, maxQueryAttempts, calls)

	var perr *PersistenceError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "list leases", perr.Op)
}

func TestWithRetry_StopsWhenContextCancelledDuringBackoff(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	go func() {
		time.Sleep(100 * time.Millisecond)
		cancel()
	}()
	err := withRetry(ctx, "test op", func() error {
		calls++
		return fakeNetError{}
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}
