package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"deckgen/internal/outline"
)

const (
	// presentationKeyPrefix namespaces outline keys in Redis/Valkey.
	presentationKeyPrefix = "presentation:"

	// DefaultTTL is how long a stored outline stays fetchable. Expired ids
	// return ErrNotFound, which answers the unbounded-growth problem of the
	// in-memory backend at the cost of old decks going away.
	DefaultTTL = 24 * time.Hour
)

// Redis stores presentations as JSON values in a Redis-compatible server
// (Redis or Valkey) with a fixed TTL per record.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

var _ outline.Store = (*Redis)(nil)

// Connect creates a Redis client and verifies the connection with a ping.
func Connect(host, port, password string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", host, port),
		Password: password,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	slog.Info("redis connected", "addr", fmt.Sprintf("%s:%s", host, port))
	return client, nil
}

// NewRedis creates a Redis-backed store around an existing client.
func NewRedis(client *redis.Client, ttl time.Duration) *Redis {
	if ttl == 0 {
		ttl = DefaultTTL
	}
	return &Redis{client: client, ttl: ttl}
}

// Put stores a presentation as JSON under its ID with the configured TTL.
func (r *Redis) Put(ctx context.Context, p *outline.Presentation) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("redis store marshal: %w", err)
	}
	if err := r.client.Set(ctx, presentationKeyPrefix+p.ID, data, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis store set: %w", err)
	}
	return nil
}

// Get returns the presentation stored under id, or ErrNotFound when the
// key is missing or expired.
func (r *Redis) Get(ctx context.Context, id string) (*outline.Presentation, error) {
	data, err := r.client.Get(ctx, presentationKeyPrefix+id).Bytes()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis store get: %w", err)
	}

	var p outline.Presentation
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("redis store unmarshal: %w", err)
	}
	return &p, nil
}
