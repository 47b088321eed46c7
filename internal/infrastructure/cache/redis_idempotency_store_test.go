package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newMiniredisStore(t *testing.T, ttl time.Duration) (*RedisIdempotencyStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisIdempotencyStoreFromClient(client, ttl), mr
}

func TestReferenceKey(t *testing.T) {
	if got := referenceKey("txn_123"); got != "txn:txn_123" {
		t.Fatalf("unexpected key: %s", got)
	}
}

func TestRedisIdempotencyStore_Unreachable(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 200 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()
	store := NewRedisIdempotencyStoreFromClient(client, 0)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	dup, err := store.CheckOrSetInProgress(ctx, "txn_123")
	if err == nil {
		t.Fatalf("expected connection error")
	}
	if dup {
		t.Fatalf("an unreachable store must not report duplicates")
	}
	if err := store.Release(ctx, "txn_123"); err == nil {
		t.Fatalf("expected connection error on release")
	}
	if err := store.Ping(ctx); err == nil {
		t.Fatalf("expected ping error")
	}
}

func TestInProgressTTL(t *testing.T) {
	if got := InProgressTTL(30 * time.Second); got != 45*time.Second {
		t.Fatalf("unexpected ttl: %v", got)
	}
	if got := InProgressTTL(0); got != DefaultInProgressExpiry {
		t.Fatalf("unexpected default ttl: %v", got)
	}
	if InProgressTTL(30*time.Second) <= 30*time.Second {
		t.Fatalf("in-progress mark must outlive the provider timeout")
	}
}

func TestRedisIdempotencyStore_CheckOrSetInProgress(t *testing.T) {
	ctx := context.Background()

	t.Run("new reference is marked in progress", func(t *testing.T) {
		store, mr := newMiniredisStore(t, 40*time.Second)

		dup, err := store.CheckOrSetInProgress(ctx, "txn_123")
		if dup || err != nil {
			t.Fatalf("unexpected result: %v %v", dup, err)
		}
		got, err := mr.Get("txn:txn_123")
		if err != nil || got != StatusInProgress {
			t.Fatalf("unexpected key value: %q %v", got, err)
		}
		if ttl := mr.TTL("txn:txn_123"); ttl != 40*time.Second {
			t.Fatalf("unexpected ttl: %v", ttl)
		}
	})

	t.Run("in-progress reference is rejected", func(t *testing.T) {
		store, _ := newMiniredisStore(t, 0)

		if _, err := store.CheckOrSetInProgress(ctx, "txn_123"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		dup, err := store.CheckOrSetInProgress(ctx, "txn_123")
		if !dup || !errors.Is(err, ErrReferenceInProgress) {
			t.Fatalf("expected in progress, got %v %v", dup, err)
		}
	})

	t.Run("completed reference is a duplicate", func(t *testing.T) {
		store, mr := newMiniredisStore(t, 0)

		if _, err := store.CheckOrSetInProgress(ctx, "txn_123"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := store.SetCompleted(ctx, "txn_123"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if ttl := mr.TTL("txn:txn_123"); ttl != CompletedExpiry {
			t.Fatalf("unexpected ttl: %v", ttl)
		}
		dup, err := store.CheckOrSetInProgress(ctx, "txn_123")
		if !dup || err != nil {
			t.Fatalf("expected completed duplicate, got %v %v", dup, err)
		}
	})

	t.Run("expired mark frees the reference", func(t *testing.T) {
		store, mr := newMiniredisStore(t, 20*time.Second)

		if _, err := store.CheckOrSetInProgress(ctx, "txn_123"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		mr.FastForward(21 * time.Second)
		dup, err := store.CheckOrSetInProgress(ctx, "txn_123")
		if dup || err != nil {
			t.Fatalf("expected a fresh mark, got %v %v", dup, err)
		}
	})
}

func TestRedisIdempotencyStore_Release(t *testing.T) {
	ctx := context.Background()

	t.Run("in-progress mark is removed", func(t *testing.T) {
		store, mr := newMiniredisStore(t, 0)

		if _, err := store.CheckOrSetInProgress(ctx, "txn_123"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := store.Release(ctx, "txn_123"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if mr.Exists("txn:txn_123") {
			t.Fatalf("in-progress key should be deleted")
		}
	})

	t.Run("completed mark is kept", func(t *testing.T) {
		store, mr := newMiniredisStore(t, 0)

		if err := store.SetCompleted(ctx, "txn_123"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := store.Release(ctx, "txn_123"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		got, err := mr.Get("txn:txn_123")
		if err != nil || got != StatusCompleted {
			t.Fatalf("completed key must survive release: %q %v", got, err)
		}
	})

	t.Run("missing key", func(t *testing.T) {
		store, _ := newMiniredisStore(t, 0)
		if err := store.Release(ctx, "unknown"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}
