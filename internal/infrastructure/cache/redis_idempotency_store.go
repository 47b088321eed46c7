package cache

import (
	"context"
	"errors"
	"fmt"
	"paystack_bridge/internal/usecase/interfaces"
	"time"

	"github.com/redis/go-redis/v9"
)

// Status values stored under txn:<reference>.
const (
	StatusInProgress = "IN_PROGRESS"
	StatusCompleted  = "COMPLETED"

	DefaultInProgressExpiry = 45 * time.Second
	CompletedExpiry         = 24 * time.Hour

	// Added to the provider timeout so the mark outlives the slowest call.
	inProgressMargin = 15 * time.Second
)

var ErrReferenceInProgress = errors.New("transaction already in progress")

// RedisIdempotencyStore implements interfaces.IIdempotencyStore on Redis.
type RedisIdempotencyStore struct {
	client           *redis.Client
	inProgressExpiry time.Duration
}

var _ interfaces.IIdempotencyStore = (*RedisIdempotencyStore)(nil)

// InProgressTTL is the in-progress expiry for a provider bounded by
// providerTimeout. A non-positive timeout gives DefaultInProgressExpiry.
func InProgressTTL(providerTimeout time.Duration) time.Duration {
	if providerTimeout <= 0 {
		return DefaultInProgressExpiry
	}
	return providerTimeout + inProgressMargin
}

func NewRedisIdempotencyStore(addr, password string, db int, inProgressExpiry time.Duration) *RedisIdempotencyStore {
	return NewRedisIdempotencyStoreFromClient(redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	}), inProgressExpiry)
}

func NewRedisIdempotencyStoreFromClient(client *redis.Client, inProgressExpiry time.Duration) *RedisIdempotencyStore {
	if inProgressExpiry <= 0 {
		inProgressExpiry = DefaultInProgressExpiry
	}
	return &RedisIdempotencyStore{client: client, inProgressExpiry: inProgressExpiry}
}

// Ping checks the connection.
func (r *RedisIdempotencyStore) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// CheckOrSetInProgress returns (true, nil) when the reference already
// completed, (true, ErrReferenceInProgress) when another call holds it, and
// (false, nil) after marking a new reference in progress.
func (r *RedisIdempotencyStore) CheckOrSetInProgress(ctx context.Context, reference string) (bool, error) {
	key := referenceKey(reference)

	status, err := r.client.Get(ctx, key).Result()
	if err == nil && status == StatusCompleted {
		return true, nil
	}

	// SET NX is the atomic check-and-set.
	set, err := r.client.SetNX(ctx, key, StatusInProgress, r.inProgressExpiry).Result()
	if err != nil {
		return false, fmt.Errorf("redis SETNX error: %w", err)
	}
	if !set {
		return true, ErrReferenceInProgress
	}
	return false, nil
}

func (r *RedisIdempotencyStore) SetCompleted(ctx context.Context, reference string) error {
	return r.client.Set(ctx, referenceKey(reference), StatusCompleted, CompletedExpiry).Err()
}

// Release removes an in-progress mark; completed references are kept.
func (r *RedisIdempotencyStore) Release(ctx context.Context, reference string) error {
	key := referenceKey(reference)
	status, err := r.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("redis GET error: %w", err)
	}
	if status != StatusInProgress {
		return nil
	}
	return r.client.Del(ctx, key).Err()
}

func referenceKey(reference string) string {
	return fmt.Sprintf("txn:%s", reference)
}
