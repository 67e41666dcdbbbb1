package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

// testRedisStore spins up an in-process miniredis and returns a store
// backed by it.
func testRedisStore(t *testing.T, ttl time.Duration) (*Redis, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewRedis(client, ttl), mr
}

func TestRedisPutGet(t *testing.T) {
	st, _ := testRedisStore(t, time.Minute)
	ctx := context.Background()

	p := testPresentation("r1")
	if err := st.Put(ctx, p); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, err := st.Get(ctx, "r1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.ID != p.ID || got.Theme != p.Theme {
		t.Errorf("Get: got %+v, want %+v", got, p)
	}
	if len(got.Slides) != len(p.Slides) {
		t.Errorf("slides: got %d, want %d", len(got.Slides), len(p.Slides))
	}
	if !got.CreatedAt.Equal(p.CreatedAt) {
		t.Errorf("created at: got %v, want %v", got.CreatedAt, p.CreatedAt)
	}
}

func TestRedisGetMissing(t *testing.T) {
	st, _ := testRedisStore(t, time.Minute)

	_, err := st.Get(context.Background(), "nope")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("error: got %v, want ErrNotFound", err)
	}
}

func TestRedisTTLExpiry(t *testing.T) {
	st, mr := testRedisStore(t, time.Minute)
	ctx := context.Background()

	if err := st.Put(ctx, testPresentation("exp")); err != nil {
		t.Fatalf("Put: %v", err)
	}

	// Advance miniredis past the TTL; the record becomes unfetchable.
	mr.FastForward(2 * time.Minute)

	_, err := st.Get(ctx, "exp")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("error after expiry: got %v, want ErrNotFound", err)
	}
}

func TestRedisDefaultTTL(t *testing.T) {
	st, _ := testRedisStore(t, 0)
	if st.ttl != DefaultTTL {
		t.Errorf("ttl: got %v, want DefaultTTL", st.ttl)
	}
}
