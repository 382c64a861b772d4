package service

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// StaleTokenStore deletes refresh tokens that can never be redeemed again.
type StaleTokenStore interface {
	DeleteStale(ctx context.Context, cutoff time.Time) (int64, error)
}

// RunTokenReaper deletes tokens that expired or were revoked more than
// retention ago, once per interval, until ctx is done.
func RunTokenReaper(ctx context.Context, store StaleTokenStore, interval, retention time.Duration, log *zap.Logger) {
	if log == nil {
		log = zap.NewNop()
	}
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			reapOnce(ctx, store, now.Add(-retention), log)
		}
	}
}

func reapOnce(ctx context.Context, store StaleTokenStore, cutoff time.Time, log *zap.Logger) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	n, err := store.DeleteStale(ctx, cutoff)
	if err != nil {
		log.Warn("token reaper failed", zap.Error(err))
		return
	}
	if n > 0 {
		log.Info("stale refresh tokens deleted", zap.Int64("count", n), zap.Time("cutoff", cutoff))
	}
}
