package ports

import (
	"context"

	"shopstat/domain/catalog"
	"shopstat/domain/stats"
)

// ObservationSource fetches per-entity observations for a metric under a
// grouping. Implementations perform read-only round trips only; the engine
// never sees connection details. Fetches must honor ctx cancellation and
// are safe to retry since they write nothing.
type ObservationSource interface {
	FetchObservations(ctx context.Context, metric catalog.Metric, grouping catalog.Grouping) ([]stats.Observation, error)
}
