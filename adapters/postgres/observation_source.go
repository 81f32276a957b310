package postgres

import (
	"context"
	"database/sql"
	"time"

	"shopstat/domain/catalog"
	"shopstat/domain/stats"
	"shopstat/internal/errors"
	"shopstat/ports"

	"github.com/jmoiron/sqlx"
)

// observationSource fetches per-entity observation rows from the relational
// warehouse. Read-only: every query is a plain SELECT over the rd_* tables
// prepared upstream.
type observationSource struct {
	db           *sqlx.DB
	queryTimeout time.Duration
}

// NewObservationSource creates an observation source over an open warehouse
// connection. queryTimeout bounds each round trip; zero disables the bound.
func NewObservationSource(db *sqlx.DB, queryTimeout time.Duration) ports.ObservationSource {
	return &observationSource{db: db, queryTimeout: queryTimeout}
}

// FetchObservations runs the metric's retrieval query for the grouping and
// scans one observation per entity. NULL group labels and NULL values are
// kept as empty strings / zeros; the partitioner excludes them by label.
func (s *observationSource) FetchObservations(ctx context.Context, metric catalog.Metric, grouping catalog.Grouping) ([]stats.Observation, error) {
	query, ok := metric.Queries[grouping.ID]
	if !ok {
		return nil, errors.InvalidInput("metric " + metric.ID + " has no query for grouping " + grouping.ID)
	}

	if s.queryTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.queryTimeout)
		defer cancel()
	}

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		if ctx.Err() != nil {
			return nil, errors.DataAccess("warehouse query timed out", ctx.Err())
		}
		return nil, errors.DataAccess("warehouse query failed", err)
	}
	defer rows.Close()

	var observations []stats.Observation
	for rows.Next() {
		var (
			entityID   string
			numeric    sql.NullFloat64
			category   sql.NullString
			groupLabel sql.NullString
		)
		if metric.ValueKind == catalog.KindCategorical {
			err = rows.Scan(&entityID, &category, &groupLabel)
		} else {
			err = rows.Scan(&entityID, &numeric, &groupLabel)
		}
		if err != nil {
			return nil, errors.DataAccess("failed to scan observation row", err)
		}
		observations = append(observations, stats.Observation{
			EntityID:   entityID,
			Numeric:    numeric.Float64,
			Category:   category.String,
			GroupLabel: groupLabel.String,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, errors.DataAccess("warehouse row iteration failed", err)
	}

	if len(observations) == 0 {
		return nil, errors.EmptyResult("query for metric " + metric.ID + " returned no rows")
	}
	return observations, nil
}
