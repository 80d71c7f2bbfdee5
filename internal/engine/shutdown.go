package engine

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/fdaemon/supervisor/internal/sessionid"
)

// perSessionShutdownBudget bounds how long the coordinator waits on any
// one session's driver to report itself done, as a backstop against a
// driver goroutine that never observes its shutdown signal. It is longer
// than the driver's own wait for the process to exit (5s), but shorter
// than that wait plus the driver's stop-reply timeout (3s), so a driver
// that first waits out a stop reply can still be running when the
// coordinator stops waiting on it.
const perSessionShutdownBudget = 7 * time.Second

// ShutdownFleet signals every session the dispatcher knows about to stop
// and waits for all of them to finish. Sessions are joined concurrently
// rather than one at a time, so wall-clock is bounded by
// perSessionShutdownBudget regardless of fleet size, instead of growing
// linearly with session count.
func ShutdownFleet(ctx context.Context, dispatcher *Dispatcher, ids []sessionid.ID) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, id := range ids {
		id := id
		g.Go(func() error {
			return joinSession(ctx, dispatcher, id)
		})
	}
	return g.Wait()
}

func joinSession(ctx context.Context, dispatcher *Dispatcher, id sessionid.ID) error {
	done := dispatcher.Shutdown(id)
	timer := time.NewTimer(perSessionShutdownBudget)
	defer timer.Stop()

	select {
	case <-done:
		return nil
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
