package submit

import (
	"context"
	"time"

	"github.com/ThabangMark/Brew-Bean/internal/domain"
)

const DefaultDelay = 2 * time.Second

// Simulated stands in for a real order backend: it waits a fixed delay and
// reports success. The wait honors context cancellation, so an abandoned
// checkout never resolves against a stale snapshot.
type Simulated struct {
	Delay time.Duration
	Err   error // returned after the delay, for failure injection
}

func NewSimulated(delay time.Duration) *Simulated {
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &Simulated{Delay: delay}
}

func (s *Simulated) Submit(ctx context.Context, _ *domain.Order) error {
	timer := time.NewTimer(s.Delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
	}
	return s.Err
}
