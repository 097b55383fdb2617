package writer

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RedisStatusStore implements StatusStore on Redis.
// Statuses are stored as JSON under key "<prefix><id>" and expire after ttl.
type RedisStatusStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisStatusStore creates a Redis-backed status store. Prefix may be empty.
func NewRedisStatusStore(client *redis.Client, prefix string, ttl time.Duration) *RedisStatusStore {
	if prefix == "" {
		prefix = "record:status:"
	}
	return &RedisStatusStore{client: client, prefix: prefix, ttl: ttl}
}

func (r *RedisStatusStore) key(id string) string {
	return r.prefix + id
}

func (r *RedisStatusStore) Set(ctx context.Context, s Status) error {
	b, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, r.key(s.ID), b, r.ttl).Err()
}

func (r *RedisStatusStore) Get(ctx context.Context, id primitive.ObjectID) (*Status, error) {
	b, err := r.client.Get(ctx, r.key(id.Hex())).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrUnknownRecord
		}
		return nil, err
	}
	var s Status
	if err := json.Unmarshal(b, &s); err != nil {
		return nil, err
	}
	return &s, nil
}
