package app

import (
	"context"
	"testing"

	"shopstat/domain/catalog"
	"shopstat/domain/stats"
	"shopstat/internal/analysis"
	"shopstat/internal/errors"
	"shopstat/internal/testkit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sweepSource serves generated observations for every combination, with the
// group labels the requested grouping expects. One metric can be forced to
// fail to exercise per-cell error isolation.
type sweepSource struct {
	failMetric string
}

func (s *sweepSource) FetchObservations(ctx context.Context, metric catalog.Metric, grouping catalog.Grouping) ([]stats.Observation, error) {
	if metric.ID == s.failMetric {
		return nil, errors.DataAccess("warehouse unreachable", nil)
	}
	cfg := testkit.DefaultConfig()
	cfg.Labels = [2]string{grouping.GroupALabel, grouping.GroupBLabel}
	gen := testkit.NewGenerator(cfg)
	if metric.ValueKind == catalog.KindCategorical {
		return gen.CategoricalObservations(), nil
	}
	return gen.NumericObservations(), nil
}

func newSweepService(source *sweepSource) *SweepService {
	comparisons := NewComparisonService(catalog.Default(), source, analysis.NewEngine(0.05), 2)
	return NewSweepService(comparisons, 4)
}

func TestSweep_CoversCatalogInDeclarationOrder(t *testing.T) {
	svc := newSweepService(&sweepSource{})
	cat := catalog.Default()

	report, err := svc.Run(context.Background(), 0.05)
	require.NoError(t, err)

	require.Len(t, report.Cells, len(cat.Metrics())*len(cat.Groupings()))
	i := 0
	for _, m := range cat.Metrics() {
		for _, g := range cat.Groupings() {
			assert.Equal(t, m.ID, report.Cells[i].MetricID)
			assert.Equal(t, g.ID, report.Cells[i].GroupingID)
			i++
		}
	}
}

func TestSweep_AllCellsSucceedOnHealthySource(t *testing.T) {
	svc := newSweepService(&sweepSource{})

	report, err := svc.Run(context.Background(), 0.05)
	require.NoError(t, err)

	assert.Equal(t, len(report.Cells), report.Succeeded)
	assert.Zero(t, report.Failed)
	assert.NotEmpty(t, report.SweepID)
	assert.Equal(t, 0.05, report.Alpha)
	for _, cell := range report.Cells {
		require.NotNil(t, cell.Result, "%s x %s", cell.MetricID, cell.GroupingID)
		assert.Empty(t, cell.ErrorCode)
	}
}

func TestSweep_FailedCellDoesNotAbortSiblings(t *testing.T) {
	svc := newSweepService(&sweepSource{failMetric: catalog.MetricDeliveryCost})
	cat := catalog.Default()

	report, err := svc.Run(context.Background(), 0.05)
	require.NoError(t, err)

	wantFailed := len(cat.Groupings())
	assert.Equal(t, wantFailed, report.Failed)
	assert.Equal(t, len(report.Cells)-wantFailed, report.Succeeded)
	for _, cell := range report.Cells {
		if cell.MetricID == catalog.MetricDeliveryCost {
			assert.Nil(t, cell.Result)
			assert.Equal(t, errors.CodeDataAccess, cell.ErrorCode)
			assert.NotEmpty(t, cell.ErrorMsg)
		} else {
			assert.NotNil(t, cell.Result)
		}
	}
}

func TestSweep_ReportsCarryDistinctIDs(t *testing.T) {
	svc := newSweepService(&sweepSource{})

	first, err := svc.Run(context.Background(), 0.05)
	require.NoError(t, err)
	second, err := svc.Run(context.Background(), 0.05)
	require.NoError(t, err)
	assert.NotEqual(t, first.SweepID, second.SweepID)
}
