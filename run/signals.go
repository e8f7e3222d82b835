package run

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/nanahuse/constmapper/tlog"
	"go.uber.org/zap"
)

// stopSignals end a running query, including one in --watch mode
var stopSignals = []os.Signal{syscall.SIGTERM, syscall.SIGINT, syscall.SIGHUP}

// waitForSignal returns nil when one of the signals arrives. Tool runs it
// next to the task, so its return closes the task context.
func waitForSignal(ctx context.Context, signals ...os.Signal) error {
	received := make(chan os.Signal, 1)
	signal.Notify(received, signals...)
	defer signal.Stop(received)

	select {
	case sig := <-received:
		tlog.Get(ctx).Info("Signal received, stopping", zap.Stringer("signal", sig))
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
