// Package sigctx ties a context to the process shutdown signals.
package sigctx

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// Shutdown lists the signals that stop the storefront binaries.
var Shutdown = []os.Signal{
	syscall.SIGINT,
	syscall.SIGTERM,
	syscall.SIGQUIT,
}

// NotifyContext returns a copy of parent that is done on the first
// shutdown signal. A nil parent means context.Background.
func NotifyContext(parent context.Context) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	return signal.NotifyContext(parent, Shutdown...)
}
