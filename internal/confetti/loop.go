package confetti

import (
	"context"
	"time"
)

// Loop is the timer fallback for hosts without a display-synced frame
// callback. It calls Frame on every tick while the animator is scheduled and
// runs present after each frame. Loop returns when ctx is done.
func Loop(ctx context.Context, a *Animator, present func()) error {
	interval := a.Settings().FrameInterval
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			if iv := a.Settings().FrameInterval; iv != interval {
				interval = iv
				ticker.Reset(interval)
			}
			if !a.Scheduled() {
				continue
			}
			a.Frame(now)
			if present != nil {
				present()
			}
		}
	}
}
