package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache keys. Everything is org-scoped so one org's invalidation never
// evicts another's data.
const (
	ledgerSummaryKeyFmt = "ledger:summary:%d:%d" // org, lease
	rentRollKeyFmt      = "report:rentroll:%d"   // org
)

var client *redis.Client

// Init connects to Redis. On failure the client stays nil and every cache
// call degrades to a miss; the API keeps working against Postgres alone.
func Init(addr, password string, db int) error {
	if addr == "" {
		addr = "localhost:6379"
	}
	client = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		client = nil
		return err
	}
	return nil
}

// IsHealthy returns true if the Redis connection is working
func IsHealthy() bool {
	if client == nil {
		return false
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return client.Ping(ctx).Err() == nil
}

// GetCached returns cached data for a key
func GetCached(ctx context.Context, key string) ([]byte, bool) {
	if client == nil {
		return nil, false
	}
	data, err := client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	return data, true
}

// SetCached stores data with a TTL
func SetCached(ctx context.Context, key string, data []byte, ttl time.Duration) {
	if client == nil {
		return
	}
	client.Set(ctx, key, data, ttl)
}

// InvalidatePattern removes all keys matching a glob pattern
func InvalidatePattern(ctx context.Context, pattern string) {
	if client == nil {
		return
	}
	keys, err := client.Keys(ctx, pattern).Result()
	if err == nil && len(keys) > 0 {
		client.Del(ctx, keys...)
	}
}

// LedgerSummaryKey builds the cache key for a lease's ledger summary.
func LedgerSummaryKey(orgID, leaseID int64) string {
	return fmt.Sprintf(ledgerSummaryKeyFmt, orgID, leaseID)
}

// RentRollKey builds the cache key for an org's rent-roll report data.
func RentRollKey(orgID int64) string {
	return fmt.Sprintf(rentRollKeyFmt, orgID)
}

// InvalidateLedgerCaches clears everything derived from an org's ledger.
// Called after any ledger write: new charge, payment, frozen fee.
func InvalidateLedgerCaches(ctx context.Context, orgID int64) {
	InvalidatePattern(ctx, fmt.Sprintf("ledger:summary:%d:*", orgID))
	InvalidatePattern(ctx, fmt.Sprintf("report:rentroll:%d", orgID))
}
