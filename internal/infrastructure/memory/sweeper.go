package memory

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// DefaultSweepInterval bounds how long an abandoned code outlives its deadline.
const DefaultSweepInterval = time.Minute

// Sweeper periodically reclaims expired verification codes that nobody tried
// to redeem.
type Sweeper struct {
	store    *VerificationStore
	interval time.Duration
	log      *zap.Logger
}

func NewSweeper(store *VerificationStore, interval time.Duration, log *zap.Logger) *Sweeper {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Sweeper{store: store, interval: interval, log: log.With(zap.String("module", "sweeper"))}
}

// Run sweeps on every tick until ctx is cancelled.
func (sw *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(sw.interval)
	defer ticker.Stop()

	sw.log.Info("sweeper started", zap.Duration("interval", sw.interval))
	for {
		select {
		case <-ctx.Done():
			sw.log.Info("sweeper stopped")
			return
		case <-ticker.C:
			start := time.Now()
			if n := sw.store.Sweep(); n > 0 {
				sw.log.Debug("reclaimed expired codes",
					zap.Int("removed", n),
					zap.Int("remaining", sw.store.Len()),
					zap.Duration("duration", time.Since(start)),
				)
			}
		}
	}
}
