package worker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/onedrop-app/onedrop-api/internal/domain"
	"github.com/onedrop-app/onedrop-api/internal/metrics"
)

type ExpiredFinalizer interface {
	FinalizeExpired(ctx context.Context, asOf time.Time) (int, error)
}

// Sweeper finalizes campaigns whose end date has passed. Storage failures
// are retried with exponential backoff; any other error ends the run.
type Sweeper struct {
	finalizer  ExpiredFinalizer
	interval   time.Duration
	metrics    *metrics.Metrics
	now        func() time.Time
	newBackOff func() backoff.BackOff
}

func NewSweeper(finalizer ExpiredFinalizer, interval time.Duration, m *metrics.Metrics) *Sweeper {
	return &Sweeper{
		finalizer: finalizer,
		interval:  interval,
		metrics:   m,
		now:       time.Now,
		newBackOff: func() backoff.BackOff {
			b := backoff.NewExponentialBackOff()
			b.InitialInterval = 500 * time.Millisecond
			b.MaxElapsedTime = time.Minute
			return b
		},
	}
}

// Run sweeps once immediately and then on every tick until ctx is done.
func (s *Sweeper) Run(ctx context.Context) {
	if s.interval <= 0 {
		zap.L().Info("expiry sweeper disabled")
		return
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		if _, err := s.SweepOnce(ctx, s.now()); err != nil && !errors.Is(err, context.Canceled) {
			zap.L().Error("expiry sweep failed", zap.Error(err))
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// SweepOnce finalizes every active campaign that ended before asOf and
// returns how many it finalized.
func (s *Sweeper) SweepOnce(ctx context.Context, asOf time.Time) (int, error) {
	var total int

	op := func() error {
		n, err := s.finalizer.FinalizeExpired(ctx, asOf)
		total += n
		if err != nil && !domain.IsRetryable(err) {
			return backoff.Permanent(err)
		}
		return err
	}
	notify := func(err error, wait time.Duration) {
		zap.L().Warn("expiry sweep hit storage failure, retrying",
			zap.Error(err), zap.Duration("wait", wait))
	}

	err := backoff.RetryNotify(op, backoff.WithContext(s.newBackOff(), ctx), notify)
	s.metrics.ObserveSweep(total, err)
	if err != nil {
		return total, fmt.Errorf("s.finalizer.FinalizeExpired -> %w", err)
	}

	zap.L().Info("expiry sweep done",
		zap.String("as_of", domain.TruncateDay(asOf).Format(domain.DateLayout)),
		zap.Int("finalized", total))

	return total, nil
}
