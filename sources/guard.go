package sources

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/jobmatchpro/backend/models"
)

// FetchWithin calls f under its own deadline. A fetcher that panics
// contributes nothing. A fetcher still running when the deadline passes is
// abandoned; its eventual result is discarded and ok is false.
func FetchWithin(ctx context.Context, f Fetcher, query string, limit int, timeout time.Duration, logger *zap.Logger) (listings []models.Listing, ok bool) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	log := logger.With(zap.String("source", f.Name()), zap.String("query", query))
	done := make(chan []models.Listing, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Error("fetcher panicked", zap.Any("panic", r))
				done <- nil
			}
		}()
		done <- f.Fetch(ctx, query, limit)
	}()

	select {
	case listings := <-done:
		return listings, true
	case <-ctx.Done():
		log.Warn("fetch abandoned", zap.Error(ctx.Err()))
		return nil, false
	}
}
