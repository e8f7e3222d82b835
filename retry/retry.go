// Package retry repeats operations that fail for transient reasons, such as
// reading a file that is still being written.
package retry

import (
	"context"
	"errors"
	"time"

	"github.com/nanahuse/constmapper/tlog"
	"go.uber.org/zap"
)

// DelayFn returns the delay before the next attempt, and false when there
// should be no more attempts. Each call advances the sequence. The first call
// must return true, and its delay is used before the very first attempt.
type DelayFn func() (delay time.Duration, ok bool)

// Config defines retry intervals
type Config interface {
	// Delays returns an independent sequence of delays
	Delays() DelayFn
}

// ExpConfig defines exponentially growing retry intervals
type ExpConfig struct {
	Min   time.Duration // delay before the first retry
	Max   time.Duration // upper limit of a delay
	Scale float64       // growth factor of the delay

	// MaxAttempts is the maximum number of attempts taken; 0 = unlimited
	MaxAttempts int
}

// Delays implements Config. The first attempt is made without a delay.
func (c ExpConfig) Delays() DelayFn {
	attempts := 0
	next := c.Min
	return func() (time.Duration, bool) {
		attempts++
		switch {
		case attempts == 1:
			return 0, true
		case c.MaxAttempts != 0 && attempts > c.MaxAttempts:
			return 0, false
		}
		delay := next
		next = min(time.Duration(float64(next)*c.Scale), c.Max)
		return delay, true
	}
}

type retriable struct {
	err error
}

func (r retriable) Error() string {
	return r.err.Error()
}

func (r retriable) Unwrap() error {
	return r.err
}

// Retriable wraps an error to tell Do that it should keep trying. Returns nil
// if err is nil.
func Retriable(err error) error {
	if err == nil {
		return nil
	}
	return retriable{err: err}
}

// Do calls f until it succeeds, returns an error not wrapped with Retriable,
// or the delays run out. In the latter case the last error is returned
// unwrapped.
func Do(ctx context.Context, c Config, f func() error) error {
	startedAt := time.Now()
	delays := c.Delays()
	var r retriable
	for i := 0; ; i++ {
		logger := tlog.Get(ctx).With(zap.Int("attempts", i+1))

		delay, ok := delays()
		if !ok {
			if i == 0 {
				panic("ok is false on first attempt")
			}
			logger.Debug("Retry failed after maximum number of attempts", zap.Error(r.err), zap.Duration("duration", time.Since(startedAt)))
			return r.err
		}
		if err := Sleep(ctx, delay); err != nil {
			return err
		}

		if err := f(); !errors.As(err, &r) {
			if i > 0 && err == nil {
				logger.Debug("Retry succeeded", zap.Duration("duration", time.Since(startedAt)))
			}
			return err
		}
		logger.Debug("Will retry", zap.Error(r.err))
	}
}

// Do1 is a single return value version of Do
func Do1[T any](ctx context.Context, c Config, f func() (T, error)) (T, error) {
	var t T
	err := Do(ctx, c, func() error {
		var err error
		t, err = f()
		return err
	})
	return t, err
}

// Sleep waits for the duration to elapse or the context to close, whichever
// comes first, and returns the context error in the latter case
func Sleep(ctx context.Context, duration time.Duration) error {
	if duration <= 0 {
		return nil
	}
	timer := time.NewTimer(duration)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
