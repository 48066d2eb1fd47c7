package jobs

import (
	"context"
	"log/slog"
	"time"
)

type expirySweeper interface {
	SweepExpired(ctx context.Context) (int64, error)
}

// RunSweeper periodically flips lapsed active members to expired. One sweep
// runs immediately so a long-stopped instance catches up on boot.
func RunSweeper(ctx context.Context, log *slog.Logger, members expirySweeper, interval time.Duration) {
	if interval <= 0 {
		interval = time.Hour
	}

	sweep := func() {
		n, err := members.SweepExpired(ctx)
		if err != nil {
			log.Error("expiry sweep failed", "err", err)
			return
		}
		if n > 0 {
			log.Info("expiry sweep", "expired", n)
		}
	}

	sweep()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			sweep()
		}
	}
}
