// Package state holds the application's in-memory view of the tutors
// and bookings collections. Each container caches a possibly stale
// copy for the lifetime of the server session, tracks a coarse
// loading flag around every in-flight operation, and records the last
// store failure as a message until it is explicitly cleared.
//
// Containers are owned by the composition root and injected into
// handlers; there are no package-level singletons.
package state

import (
	"context"
	"time"
)

// DefaultMinFetchDelay is the perceived-latency floor applied to full
// fetches: the container keeps its loading flag raised for at least
// this long even when the store answers faster. It is a UX choice,
// not a performance requirement.
const DefaultMinFetchDelay = time.Second

// holdFloor blocks until at least min has elapsed since started, or
// the context is done. Mutations skip this; only full fetches race
// the store call against the fixed delay.
func holdFloor(ctx context.Context, started time.Time, min time.Duration) {
	remain := min - time.Since(started)
	if remain <= 0 {
		return
	}
	t := time.NewTimer(remain)
	defer t.Stop()
	select {
	case <-t.C:
	case <-ctx.Done():
	}
}
