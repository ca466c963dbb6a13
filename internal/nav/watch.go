package nav

import (
	"context"
	"time"
)

// poll is the fallback for hosts that never emit change events: it re-checks
// the sign-in signals on a fixed cadence, a bounded number of times. The
// immediate check performed at mount counts as the first, so poll runs
// PollChecks-1 ticks and then exits. Destroy cancels it early through ctx.
func (b *Bar) poll(ctx context.Context) {
	remaining := b.cfg.PollChecks - 1
	if remaining <= 0 {
		return
	}

	ticker := time.NewTicker(b.cfg.PollInterval)
	defer ticker.Stop()

	for remaining > 0 {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			b.RefreshAuth(ctx)
			pollChecksTotal.Add(ctx, 1)
			remaining--
		}
	}
	b.logger.Debug("auth polling fallback finished")
}
