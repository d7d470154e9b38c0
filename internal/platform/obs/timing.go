// Package obs provides minimal request/run-scoped timing and logging,
// used by the postgres repositories and the redis snapshot cache.
package obs

import (
	"context"
	"log"
	"time"
)

type ctxKey string

// RunIDKey is the context key carrying the current planning run identifier
// (set by the postgres ResultRepo when it writes a run's result).
const RunIDKey ctxKey = "run_id"

// WithRunID attaches a run id to ctx for downstream Time calls to log.
func WithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, RunIDKey, runID)
}

// Time starts a timer for operation name and returns a completion func that
// logs duration and, if errp points to a non-nil error, the failure.
// Usage: defer obs.Time(ctx, "solver.SolveCommodity")(&err)
func Time(ctx context.Context, name string) func(errp *error) {
	start := time.Now()

	runID, _ := ctx.Value(RunIDKey).(string)

	return func(errp *error) {
		dur := time.Since(start)

		if errp != nil && *errp != nil {
			log.Printf("run_id=%s op=%s dur=%dms err=%v", runID, name, dur.Milliseconds(), *errp)
			return
		}
		log.Printf("run_id=%s op=%s dur=%dms", runID, name, dur.Milliseconds())
	}
}
