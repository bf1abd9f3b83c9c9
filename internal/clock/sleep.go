// Package clock provides the time source injected into services and
// time-related helpers built on it.
package clock

import (
	"context"
	"time"

	bclock "github.com/benbjohnson/clock"
)

// Clock is the time source used across services. Tests inject NewMock.
type Clock = bclock.Clock

// Mock is a manually advanced Clock.
type Mock = bclock.Mock

// New returns the wall clock.
func New() Clock {
	return bclock.New()
}

// NewMock returns a mock clock set to the Unix epoch.
func NewMock() *Mock {
	return bclock.NewMock()
}

// SleepWithContext waits for the duration on clk or returns early if the context is canceled.
func SleepWithContext(ctx context.Context, clk Clock, d time.Duration) error {
	timer := clk.Timer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Sleeper binds SleepWithContext to clk, matching the sleep hooks services take.
func Sleeper(clk Clock) func(context.Context, time.Duration) error {
	return func(ctx context.Context, d time.Duration) error {
		return SleepWithContext(ctx, clk, d)
	}
}
