package app

import (
	"context"
	"sync"
	"time"

	"shopstat/domain/stats"
	"shopstat/internal/errors"

	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"
)

// SweepCell is the outcome of one metric x grouping combination inside a
// sweep. Failed cells carry the error code and message instead of a result
// so one bad combination never aborts its siblings.
type SweepCell struct {
	MetricID   string            `json:"metric_id"`
	GroupingID string            `json:"grouping_id"`
	Result     *stats.TestResult `json:"result,omitempty"`
	ErrorCode  string            `json:"error_code,omitempty"`
	ErrorMsg   string            `json:"error_message,omitempty"`
}

// SweepReport aggregates a full catalog sweep
type SweepReport struct {
	SweepID   string      `json:"sweep_id"`
	Cells     []SweepCell `json:"cells"`
	Succeeded int         `json:"succeeded"`
	Failed    int         `json:"failed"`
	RuntimeMs int64       `json:"runtime_ms"`
	Alpha     float64     `json:"alpha"`
}

// SweepService runs every metric x grouping combination in the catalog with
// bounded concurrency.
type SweepService struct {
	comparisons *ComparisonService
	sem         *semaphore.Weighted
}

// NewSweepService creates a sweep service allowing maxConcurrent
// simultaneous warehouse round trips.
func NewSweepService(comparisons *ComparisonService, maxConcurrent int64) *SweepService {
	if maxConcurrent < 1 {
		maxConcurrent = 4
	}
	return &SweepService{
		comparisons: comparisons,
		sem:         semaphore.NewWeighted(maxConcurrent),
	}
}

// Run sweeps the whole catalog. Cell ordering is deterministic (catalog
// declaration order) regardless of completion order.
func (s *SweepService) Run(ctx context.Context, alpha float64) (*SweepReport, error) {
	start := time.Now()
	cat := s.comparisons.Catalog()

	type job struct {
		metricID   string
		groupingID string
	}
	var jobs []job
	for _, m := range cat.Metrics() {
		for _, g := range cat.Groupings() {
			jobs = append(jobs, job{metricID: m.ID, groupingID: g.ID})
		}
	}

	cells := make([]SweepCell, len(jobs))
	var wg sync.WaitGroup
	for i, j := range jobs {
		if err := s.sem.Acquire(ctx, 1); err != nil {
			return nil, errors.DataAccess("sweep cancelled", err)
		}
		wg.Add(1)
		go func(idx int, j job) {
			defer wg.Done()
			defer s.sem.Release(1)

			cell := SweepCell{MetricID: j.metricID, GroupingID: j.groupingID}
			result, err := s.comparisons.RunTest(ctx, j.metricID, j.groupingID, alpha)
			if err != nil {
				cell.ErrorCode = errors.GetCode(err)
				cell.ErrorMsg = err.Error()
			} else {
				cell.Result = result
			}
			cells[idx] = cell
		}(i, j)
	}
	wg.Wait()

	report := &SweepReport{
		SweepID:   uuid.NewString(),
		Cells:     cells,
		RuntimeMs: time.Since(start).Milliseconds(),
		Alpha:     alpha,
	}
	for _, c := range cells {
		if c.Result != nil {
			report.Succeeded++
		} else {
			report.Failed++
		}
	}
	return report, nil
}
