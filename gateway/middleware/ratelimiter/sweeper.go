package ratelimiter

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// StartCleanupWorker runs the periodic sweep in a goroutine until ctx is
// cancelled or Stop is called. Calling it while a worker runs is a no-op.
func (l *Limiter) StartCleanupWorker(ctx context.Context) {
	l.workerMu.Lock()
	defer l.workerMu.Unlock()

	if l.cancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	l.cancel, l.done = cancel, done

	go func() {
		defer close(done)
		defer l.workerExited(done, cancel)
		l.Run(ctx)
	}()
}

// workerExited forgets the worker when it stops on its own because the
// parent context ended, so a later StartCleanupWorker starts a new one.
func (l *Limiter) workerExited(done chan struct{}, cancel context.CancelFunc) {
	cancel()

	l.workerMu.Lock()
	defer l.workerMu.Unlock()
	if l.done == done {
		l.cancel, l.done = nil, nil
	}
}

func (l *Limiter) workerRunning() bool {
	l.workerMu.Lock()
	defer l.workerMu.Unlock()
	return l.done != nil
}

// Stop cancels the cleanup worker and waits for it to return.
func (l *Limiter) Stop() {
	l.workerMu.Lock()
	cancel, done := l.cancel, l.done
	l.cancel, l.done = nil, nil
	l.workerMu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// Run sweeps expired records every cleanup interval until ctx is done.
func (l *Limiter) Run(ctx context.Context) {
	ticker := time.NewTicker(l.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			removed, err := l.CleanupExpired(ctx)
			if err != nil {
				l.logger.Warn("cleanup sweep failed", zap.Error(err))
				continue
			}
			if removed > 0 {
				l.logger.Debug("cleanup complete", zap.Int("removed", removed))
			}
		case <-ctx.Done():
			l.logger.Debug("cleanup worker stopped")
			return
		}
	}
}
