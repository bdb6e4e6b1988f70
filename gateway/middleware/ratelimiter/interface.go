package ratelimiter

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("ratelimiter: record not found")

// Backend stores one Record per identifier. Get returns ErrNotFound when
// no record exists. Set receives the time left in the record's window,
// measured on the limiter's clock; backends with native expiry use it as
// the TTL.
type Backend interface {
	Get(ctx context.Context, identifier string) (*Record, error)
	Set(ctx context.Context, identifier string, record *Record, ttl time.Duration) error
	Delete(ctx context.Context, identifier string) error
	List(ctx context.Context) (map[string]*Record, error)
	Clear(ctx context.Context) error
}
