package board

import (
	"context"
	"time"
)

// Gate enforces a fixed minimum interval between successive requests
// to a rate-limited source. The first call through a fresh gate does
// not wait; each subsequent call waits until the interval has elapsed
// since the previous one. Waits are cooperative and abort when the
// context is cancelled.
type Gate struct {
	interval time.Duration
	last     time.Time
}

func NewGate(interval time.Duration) *Gate {
	return &Gate{interval: interval}
}

// Wait blocks until the gate opens or ctx is cancelled.
func (g *Gate) Wait(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if g.interval <= 0 {
		g.last = time.Now()
		return nil
	}

	if !g.last.IsZero() {
		remaining := g.interval - time.Since(g.last)
		if remaining > 0 {
			timer := time.NewTimer(remaining)
			defer timer.Stop()
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-timer.C:
			}
		}
	}

	g.last = time.Now()
	return nil
}
