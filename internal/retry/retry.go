package retry

import (
	"context"
	"time"
)

// SleepFunc waits for d or until ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Sleep waits for d, returning ctx.Err() if the context ends first.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Constant is an unbounded retry policy with a fixed delay.
type Constant struct {
	Delay time.Duration
	Sleep SleepFunc // nil = Sleep
}

// Forever calls fn, reports its result to onResult (which may be nil), waits
// Delay, and repeats until ctx is done. It always returns ctx.Err().
func (p Constant) Forever(ctx context.Context, fn func(ctx context.Context) error, onResult func(attempt int, err error)) error {
	sleep := p.Sleep
	if sleep == nil {
		sleep = Sleep
	}

	for attempt := 1; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		err := fn(ctx)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if onResult != nil {
			onResult(attempt, err)
		}

		if err := sleep(ctx, p.Delay); err != nil {
			return err
		}
	}
}
