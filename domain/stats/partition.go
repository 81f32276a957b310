package stats

import (
	"fmt"

	"shopstat/domain/catalog"
	"shopstat/internal/errors"
)

// PartitionResult carries the two grouped samples plus the number of
// observations dropped for carrying a label matching neither group.
type PartitionResult struct {
	GroupA  GroupedSample
	GroupB  GroupedSample
	Dropped int
}

// Partition splits observations into the grouping's two groups by exact
// label match. Observations with a missing or unrecognized label are
// dropped; the drop count is reported so callers can surface it as a
// caveat. Input order is preserved within each group.
func Partition(obs []Observation, metric catalog.Metric, grouping catalog.Grouping, minPerGroup int) (*PartitionResult, error) {
	if minPerGroup < 2 {
		minPerGroup = 2 // variance estimation needs at least two observations
	}

	res := &PartitionResult{
		GroupA: GroupedSample{Label: grouping.GroupALabel},
		GroupB: GroupedSample{Label: grouping.GroupBLabel},
	}

	for _, o := range obs {
		var sample *GroupedSample
		switch o.GroupLabel {
		case grouping.GroupALabel:
			sample = &res.GroupA
		case grouping.GroupBLabel:
			sample = &res.GroupB
		default:
			res.Dropped++
			continue
		}
		if metric.ValueKind == catalog.KindCategorical {
			sample.Categories = append(sample.Categories, o.Category)
		} else {
			sample.Values = append(sample.Values, o.Numeric)
		}
	}

	if res.GroupA.Size() < minPerGroup || res.GroupB.Size() < minPerGroup {
		return nil, errors.InsufficientGroupData(fmt.Sprintf(
			"need at least %d observations per group, got %s=%d and %s=%d",
			minPerGroup, res.GroupA.Label, res.GroupA.Size(), res.GroupB.Label, res.GroupB.Size()))
	}

	return res, nil
}
