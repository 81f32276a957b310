package analysis

import (
	"shopstat/domain/catalog"
	domstats "shopstat/domain/stats"
	"shopstat/internal/errors"
)

// Engine runs the statistical test selected by the metric's value kind over
// a partitioned pair of samples. It holds no per-invocation state; a single
// Engine is shared safely across concurrent runs.
type Engine struct {
	defaultAlpha float64
}

// NewEngine creates an engine with the given default significance level
func NewEngine(defaultAlpha float64) *Engine {
	if defaultAlpha <= 0 || defaultAlpha >= 1 {
		defaultAlpha = 0.05
	}
	return &Engine{defaultAlpha: defaultAlpha}
}

// DefaultAlpha returns the engine's default significance level
func (e *Engine) DefaultAlpha() float64 {
	return e.defaultAlpha
}

// Run dispatches to the test implied by the metric's value kind. This is
// the single dispatch point: numeric metrics get Welch's t-test,
// categorical metrics get the chi-square test of independence.
func (e *Engine) Run(metric catalog.Metric, grouping catalog.Grouping, part *domstats.PartitionResult, alpha float64) (*domstats.TestResult, error) {
	if part == nil {
		return nil, errors.InvalidInput("partition result is required")
	}
	if alpha <= 0 || alpha >= 1 {
		alpha = e.defaultAlpha
	}

	var (
		result *domstats.TestResult
		err    error
	)
	switch domstats.KindFor(metric.ValueKind) {
	case domstats.TestChiSquare:
		result, err = chiSquareTest(part.GroupA, part.GroupB, alpha)
	default:
		result, err = welchTTest(part.GroupA, part.GroupB, alpha)
	}
	if err != nil {
		return nil, err
	}

	result.MetricID = metric.ID
	result.GroupingID = grouping.ID
	if part.Dropped > 0 {
		result.Caveats = append(result.Caveats, domstats.CaveatDroppedObservations)
		result.DroppedCount = part.Dropped
	}

	if err := result.Validate(); err != nil {
		return nil, errors.Wrap(err, "test result failed invariant check")
	}
	return result, nil
}

// clampP keeps p-values inside [0, 1] against floating point drift
func clampP(p float64) float64 {
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

// decide applies the significance threshold
func decide(p, alpha float64) domstats.Decision {
	if p < alpha {
		return domstats.RejectNull
	}
	return domstats.FailToReject
}
