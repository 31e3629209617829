//go:build windows

package platform

import (
	"context"
	"os"
	"os/signal"
)

// ShutdownContext is cancelled on Ctrl+C. Console apps on Windows do not
// reliably receive SIGTERM.
func ShutdownContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt)
}
