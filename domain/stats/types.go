package stats

import (
	"fmt"

	"shopstat/domain/catalog"
)

// ============================================================================
// OBSERVATIONS
// ============================================================================

// Observation is one per-entity row fetched from the warehouse. Exactly one
// of Numeric/Category is meaningful, selected by the metric's ValueKind.
// Observations are invocation-local and discarded once a result is produced.
type Observation struct {
	EntityID   string  `json:"entity_id"`
	Numeric    float64 `json:"numeric,omitempty"`
	Category   string  `json:"category,omitempty"`
	GroupLabel string  `json:"group_label"`
}

// GroupedSample holds the observations belonging to one comparison group.
// INVARIANTS:
// - non-empty after partitioning
// - Values xor Categories populated, matching the metric's ValueKind
// - input order preserved for reproducible display
type GroupedSample struct {
	Label      string    `json:"label"`
	Values     []float64 `json:"values,omitempty"`
	Categories []string  `json:"categories,omitempty"`
}

// Size returns the number of observations in the sample
func (s GroupedSample) Size() int {
	if len(s.Values) > 0 {
		return len(s.Values)
	}
	return len(s.Categories)
}

// ============================================================================
// RESULTS
// ============================================================================

// TestKind identifies the statistical test that produced a result
type TestKind string

const (
	TestWelchT    TestKind = "t_test"
	TestChiSquare TestKind = "chi_square"
)

// Decision is the binary outcome against the significance threshold
type Decision string

const (
	RejectNull   Decision = "reject_null"
	FailToReject Decision = "fail_to_reject"
)

// Caveat flags a computed but low-confidence aspect of a result. A result
// carrying caveats is still a result, never an error.
type Caveat string

const (
	CaveatDegenerateTable        Caveat = "DEGENERATE_TABLE"
	CaveatIndeterminateStatistic Caveat = "INDETERMINATE_STATISTIC"
	CaveatDroppedObservations    Caveat = "DROPPED_OBSERVATIONS"
)

// GroupSummary holds per-group descriptive statistics. Mean and Variance are
// set for numeric metrics; Counts and Percent (column percentages) for
// categorical ones.
type GroupSummary struct {
	Label    string             `json:"label"`
	N        int                `json:"n"`
	Mean     float64            `json:"mean,omitempty"`
	Variance float64            `json:"variance,omitempty"`
	Counts   map[string]int     `json:"counts,omitempty"`
	Percent  map[string]float64 `json:"percent,omitempty"`
}

// ContingencyTable is a category x group cross-tabulation of counts.
// Rows follow Categories order, columns follow Groups order.
type ContingencyTable struct {
	Categories []string    `json:"categories"`
	Groups     [2]string   `json:"groups"`
	Observed   [][]int     `json:"observed"`
	Expected   [][]float64 `json:"expected"`
}

// GrandTotal returns the total observed count
func (t *ContingencyTable) GrandTotal() int {
	total := 0
	for _, row := range t.Observed {
		for _, n := range row {
			total += n
		}
	}
	return total
}

// TestResult is the immutable outcome of one comparison run. It carries no
// run identifier or wall-clock timestamp so that identical inputs produce
// identical results.
type TestResult struct {
	TestKind         TestKind          `json:"test_kind"`
	MetricID         string            `json:"metric_id"`
	GroupingID       string            `json:"grouping_id"`
	Statistic        float64           `json:"statistic"`
	DegreesOfFreedom float64           `json:"degrees_of_freedom"`
	PValue           float64           `json:"p_value"`
	Alpha            float64           `json:"alpha"`
	Decision         Decision          `json:"decision"`
	GroupSummaries   [2]GroupSummary   `json:"group_summaries"`
	Contingency      *ContingencyTable `json:"contingency_table,omitempty"`
	Caveats          []Caveat          `json:"caveats,omitempty"`
	DroppedCount     int               `json:"dropped_count,omitempty"`
}

// HasCaveat reports whether the result carries the given caveat
func (r *TestResult) HasCaveat(c Caveat) bool {
	for _, have := range r.Caveats {
		if have == c {
			return true
		}
	}
	return false
}

// Validate checks result invariants before it leaves the engine
func (r *TestResult) Validate() error {
	if r.PValue < 0.0 || r.PValue > 1.0 {
		return fmt.Errorf("p-value must be in [0.0, 1.0], got %f", r.PValue)
	}
	if r.GroupSummaries[0].N <= 0 || r.GroupSummaries[1].N <= 0 {
		return fmt.Errorf("group summaries must cover non-empty groups")
	}
	if r.TestKind == TestChiSquare && r.Contingency == nil {
		return fmt.Errorf("chi-square result requires a contingency table")
	}
	return nil
}

// KindFor maps a metric's value kind to the test that applies to it
func KindFor(vk catalog.ValueKind) TestKind {
	if vk == catalog.KindCategorical {
		return TestChiSquare
	}
	return TestWelchT
}
