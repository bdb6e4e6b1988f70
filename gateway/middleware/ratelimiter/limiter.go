package ratelimiter

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
)

const DefaultCleanupInterval = 5 * time.Minute

// Limiter is a fixed-window counter. A request is admitted while the
// identifier's count in the current window is below the policy maximum;
// the window restarts on the first request after it ends. Up to
// 2*MaxRequests can pass across a window boundary.
//
// State lives in the Backend. With the default MemoryBackend it is local
// to the process and lost on restart, so N instances admit N times the
// configured rate.
type Limiter struct {
	mu      sync.Mutex
	backend Backend
	clock   func() time.Time
	logger  *zap.Logger
	metrics *Metrics

	cleanupInterval time.Duration
	workerMu        sync.Mutex
	cancel          context.CancelFunc
	done            chan struct{}
}

type Option func(*Limiter)

func WithClock(clock func() time.Time) Option {
	return func(l *Limiter) { l.clock = clock }
}

func WithLogger(logger *zap.Logger) Option {
	return func(l *Limiter) { l.logger = logger }
}

func WithMetrics(m *Metrics) Option {
	return func(l *Limiter) { l.metrics = m }
}

func WithCleanupInterval(interval time.Duration) Option {
	return func(l *Limiter) { l.cleanupInterval = interval }
}

func New(backend Backend, opts ...Option) *Limiter {
	if backend == nil {
		backend = NewMemoryBackend()
	}
	l := &Limiter{
		backend:         backend,
		clock:           time.Now,
		logger:          zap.NewNop(),
		cleanupInterval: DefaultCleanupInterval,
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.cleanupInterval <= 0 {
		l.cleanupInterval = DefaultCleanupInterval
	}
	return l
}

// Check decides whether a request from identifier is admitted under
// policy. It never fails: a backend error admits the request.
//
// One mutex serializes every check, including the backend round trip. With
// RedisBackend all identifiers therefore queue behind a single network
// call; that keeps the read-modify-write atomic within the process at the
// cost of throughput, which the intended traffic does not need.
func (l *Limiter) Check(ctx context.Context, identifier string, policy Policy) Result {
	policy = normalize(policy)

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.clock()
	record, err := l.backend.Get(ctx, identifier)
	if err != nil && !errors.Is(err, ErrNotFound) {
		l.failOpen("get", identifier, err)
		return Result{Allowed: true}
	}

	if record == nil || record.Expired(now) {
		l.store(ctx, identifier, &Record{Count: 1, ResetTime: now.Add(policy.Window)}, now)
		l.metrics.observe(true)
		return Result{Allowed: true}
	}

	if record.Count >= policy.MaxRequests {
		retryAfter := retryAfterSeconds(record.ResetTime.Sub(now))
		l.logger.Debug("request rejected",
			zap.String("identifier", identifier),
			zap.Int("count", record.Count),
			zap.Int("retry_after", retryAfter))
		l.metrics.observe(false)
		return Result{Allowed: false, RetryAfter: retryAfter}
	}

	record.Count++
	l.store(ctx, identifier, record, now)
	l.metrics.observe(true)
	return Result{Allowed: true}
}

// Reset drops any record held for identifier.
func (l *Limiter) Reset(ctx context.Context, identifier string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.backend.Delete(ctx, identifier); err != nil {
		return err
	}
	l.logger.Info("rate limit reset", zap.String("identifier", identifier))
	return nil
}

// Clear drops every record.
func (l *Limiter) Clear(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.backend.Clear(ctx); err != nil {
		return err
	}
	l.logger.Info("rate limits cleared")
	return nil
}

// List returns a snapshot of every stored record.
func (l *Limiter) List(ctx context.Context) (map[string]Record, error) {
	records, err := l.backend.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[string]Record, len(records))
	for id, r := range records {
		out[id] = *r
	}
	return out, nil
}

// CleanupExpired deletes every record whose window has already ended and
// returns how many were removed. Check ignores expired records anyway, so
// this only bounds memory.
func (l *Limiter) CleanupExpired(ctx context.Context) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	records, err := l.backend.List(ctx)
	if err != nil {
		return 0, err
	}

	now := l.clock()
	removed := 0
	for id, r := range records {
		if !r.ResetTime.Before(now) {
			continue
		}
		if err := l.backend.Delete(ctx, id); err != nil {
			l.logger.Warn("cleanup delete failed", zap.String("identifier", id), zap.Error(err))
			continue
		}
		removed++
	}

	l.metrics.sweep(removed, len(records)-removed)
	return removed, nil
}

func (l *Limiter) store(ctx context.Context, identifier string, record *Record, now time.Time) {
	if err := l.backend.Set(ctx, identifier, record, record.ResetTime.Sub(now)); err != nil {
		l.failOpen("set", identifier, err)
	}
}

func (l *Limiter) failOpen(op, identifier string, err error) {
	l.metrics.backendError()
	l.logger.Warn("rate limit backend error, admitting request",
		zap.String("op", op),
		zap.String("identifier", identifier),
		zap.Error(err))
}

func normalize(p Policy) Policy {
	if p.MaxRequests <= 0 {
		p.MaxRequests = DefaultPolicy.MaxRequests
	}
	if p.Window <= 0 {
		p.Window = DefaultPolicy.Window
	}
	return p
}

// retryAfterSeconds rounds d up to whole seconds.
func retryAfterSeconds(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	return int((d + time.Second - 1) / time.Second)
}
