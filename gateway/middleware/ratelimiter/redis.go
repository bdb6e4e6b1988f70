package ratelimiter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const DefaultRedisPrefix = "ratelimit:"

// RedisBackend keeps records in Redis as JSON. Keys expire on their own
// once the window ends; the sweep only catches keys written without a TTL.
//
// A value under the prefix that does not decode as a Record is treated as
// absent, so the next Check overwrites it with a fresh window.
type RedisBackend struct {
	client *redis.Client
	prefix string
	logger *zap.Logger
}

type RedisOption func(*RedisBackend)

func WithRedisLogger(logger *zap.Logger) RedisOption {
	return func(rb *RedisBackend) { rb.logger = logger }
}

func NewRedisBackend(client *redis.Client, prefix string, opts ...RedisOption) *RedisBackend {
	if prefix == "" {
		prefix = DefaultRedisPrefix
	}
	rb := &RedisBackend{
		client: client,
		prefix: prefix,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(rb)
	}
	if rb.logger == nil {
		rb.logger = zap.NewNop()
	}
	return rb
}

func (rb *RedisBackend) key(identifier string) string {
	return rb.prefix + identifier
}

func (rb *RedisBackend) Get(ctx context.Context, identifier string) (*Record, error) {
	result, err := rb.client.Get(ctx, rb.key(identifier)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %s: %w", identifier, err)
	}

	record, err := decodeRecord(result)
	if err != nil {
		rb.logger.Warn("undecodable rate limit record, treating as absent",
			zap.String("key", rb.key(identifier)), zap.Error(err))
		return nil, fmt.Errorf("%w: %s holds an undecodable value", ErrNotFound, identifier)
	}
	return record, nil
}

// Set stores record with ttl as its expiry. A ttl under one millisecond
// stores the key without expiry.
func (rb *RedisBackend) Set(ctx context.Context, identifier string, record *Record, ttl time.Duration) error {
	payload, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("encode record %s: %w", identifier, err)
	}

	if ttl < time.Millisecond {
		ttl = 0
	}
	return rb.client.Set(ctx, rb.key(identifier), payload, ttl).Err()
}

func (rb *RedisBackend) Delete(ctx context.Context, identifier string) error {
	return rb.client.Del(ctx, rb.key(identifier)).Err()
}

// List skips keys whose value does not decode.
func (rb *RedisBackend) List(ctx context.Context) (map[string]*Record, error) {
	keys, err := rb.scanKeys(ctx)
	if err != nil {
		return nil, err
	}

	out := make(map[string]*Record, len(keys))
	for _, key := range keys {
		val, err := rb.client.Get(ctx, key).Result()
		if errors.Is(err, redis.Nil) {
			// expired between SCAN and GET
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("redis get %s: %w", key, err)
		}

		record, err := decodeRecord(val)
		if err != nil {
			rb.logger.Warn("skipping undecodable rate limit record", zap.String("key", key), zap.Error(err))
			continue
		}
		out[strings.TrimPrefix(key, rb.prefix)] = record
	}
	return out, nil
}

func (rb *RedisBackend) Clear(ctx context.Context) error {
	keys, err := rb.scanKeys(ctx)
	if err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return rb.client.Del(ctx, keys...).Err()
}

func (rb *RedisBackend) scanKeys(ctx context.Context) ([]string, error) {
	var keys []string
	iter := rb.client.Scan(ctx, 0, rb.prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("redis scan: %w", err)
	}
	return keys, nil
}

func decodeRecord(val string) (*Record, error) {
	var record Record
	if err := json.Unmarshal([]byte(val), &record); err != nil {
		return nil, err
	}
	if record.Count < 1 || record.ResetTime.IsZero() {
		return nil, fmt.Errorf("invalid record %q", val)
	}
	return &record, nil
}
