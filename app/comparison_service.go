package app

import (
	"context"

	"shopstat/domain/catalog"
	"shopstat/domain/stats"
	"shopstat/internal"
	"shopstat/internal/analysis"
	"shopstat/internal/errors"
	"shopstat/internal/report"
	"shopstat/ports"
)

// pipelineState tracks where a single invocation is in its lifecycle.
// Idle -> Fetching -> Partitioning -> Computing -> Done | Failed
type pipelineState string

const (
	stateIdle         pipelineState = "idle"
	stateFetching     pipelineState = "fetching"
	statePartitioning pipelineState = "partitioning"
	stateComputing    pipelineState = "computing"
	stateDone         pipelineState = "done"
	stateFailed       pipelineState = "failed"
)

// ComparisonService runs the full fetch -> partition -> compute -> format
// pipeline for one metric/grouping selection. Catalog and engine are shared
// read-only; everything per-invocation is local to the call, so a single
// service value is safe under concurrent callers.
type ComparisonService struct {
	catalog      *catalog.Catalog
	source       ports.ObservationSource
	engine       *analysis.Engine
	minGroupSize int
	log          *internal.Logger
}

// NewComparisonService creates a comparison service
func NewComparisonService(cat *catalog.Catalog, source ports.ObservationSource, engine *analysis.Engine, minGroupSize int) *ComparisonService {
	return &ComparisonService{
		catalog:      cat,
		source:       source,
		engine:       engine,
		minGroupSize: minGroupSize,
		log:          internal.DefaultLogger,
	}
}

// Catalog exposes the immutable metric/grouping registry
func (s *ComparisonService) Catalog() *catalog.Catalog {
	return s.catalog
}

// RunTest executes one synchronous comparison. Pass alpha <= 0 to use the
// engine default. The call suspends only at the fetch boundary; ctx
// cancellation before the statistic is computed aborts the whole
// invocation with no partial result.
func (s *ComparisonService) RunTest(ctx context.Context, metricID, groupingID string, alpha float64) (*stats.TestResult, error) {
	state := stateIdle

	metric, err := s.catalog.Resolve(metricID)
	if err != nil {
		return nil, err
	}
	grouping, err := s.catalog.ResolveGrouping(groupingID)
	if err != nil {
		return nil, err
	}

	state = stateFetching
	s.log.Debug("comparison %s x %s: %s", metricID, groupingID, state)
	observations, err := s.source.FetchObservations(ctx, metric, grouping)
	if err != nil {
		s.log.Warn("comparison %s x %s failed while %s: %v", metricID, groupingID, state, err)
		return nil, err
	}

	state = statePartitioning
	part, err := stats.Partition(observations, metric, grouping, s.minGroupSize)
	if err != nil {
		s.log.Warn("comparison %s x %s failed while %s: %v", metricID, groupingID, state, err)
		return nil, err
	}

	state = stateComputing
	if err := ctx.Err(); err != nil {
		return nil, errors.DataAccess("invocation cancelled", err)
	}
	result, err := s.engine.Run(metric, grouping, part, alpha)
	if err != nil {
		s.log.Warn("comparison %s x %s failed while %s: %v", metricID, groupingID, state, err)
		return nil, err
	}

	state = stateDone
	s.log.Info("comparison %s x %s: %s (%s, p=%.4f)", metricID, groupingID, state, result.Decision, result.PValue)
	return result, nil
}

// RunFormatted runs a test and renders it for presentation
func (s *ComparisonService) RunFormatted(ctx context.Context, metricID, groupingID string, alpha float64) (*stats.TestResult, *report.Formatted, error) {
	result, err := s.RunTest(ctx, metricID, groupingID, alpha)
	if err != nil {
		return nil, nil, err
	}
	metric, _ := s.catalog.Resolve(metricID)
	grouping, _ := s.catalog.ResolveGrouping(groupingID)
	formatted, err := report.Format(result, metric.DisplayName, grouping.DisplayName)
	if err != nil {
		return nil, nil, err
	}
	return result, formatted, nil
}
