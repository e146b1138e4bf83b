package app

import (
	"context"
	"os/signal"
	"syscall"
	"time"
)

// SetupSignals returns a context canceled on SIGINT or SIGTERM. The stop
// function releases the signal handler and should be deferred.
func SetupSignals(ctx context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
}

// SetupLifecycle combines the -timeout deadline and signal handling. The
// returned context ends with context.DeadlineExceeded on timeout and
// context.Canceled on a signal, which map to distinct exit codes.
//
// Parameters:
//   - ctx: The parent context.
//   - timeout: The maximum duration for the calculation.
//
// Returns:
//   - context.Context: A context with both timeout and signal handling.
//   - *CancelFuncs: Cleanup handles; call Cleanup via defer.
func SetupLifecycle(ctx context.Context, timeout time.Duration) (context.Context, *CancelFuncs) {
	ctx, cancelTimeout := context.WithTimeout(ctx, timeout)
	ctx, stopSignals := SetupSignals(ctx)

	return ctx, &CancelFuncs{
		CancelTimeout: cancelTimeout,
		StopSignals:   stopSignals,
	}
}

// CancelFuncs holds the cancel functions for lifecycle management.
type CancelFuncs struct {
	// CancelTimeout cancels the timeout context.
	CancelTimeout context.CancelFunc
	// StopSignals stops listening for OS signals.
	StopSignals context.CancelFunc
}

// Cleanup releases the signal handler, then the timer.
func (c *CancelFuncs) Cleanup() {
	if c.StopSignals != nil {
		c.StopSignals()
	}
	if c.CancelTimeout != nil {
		c.CancelTimeout()
	}
}
