package catalog

import (
	"testing"

	"shopstat/internal/errors"
)

func TestResolve_KnownAndUnknownMetric(t *testing.T) {
	cat := Default()

	m, err := cat.Resolve(MetricAvgOrderValue)
	if err != nil {
		t.Fatalf("expected avg_order_value to resolve, got %v", err)
	}
	if m.ValueKind != KindNumeric {
		t.Errorf("avg_order_value should be numeric, got %s", m.ValueKind)
	}

	_, err = cat.Resolve("no_such_metric")
	if err == nil {
		t.Fatal("expected error for unknown metric")
	}
	if errors.GetCode(err) != errors.CodeUnknownMetric {
		t.Errorf("expected code %s, got %s", errors.CodeUnknownMetric, errors.GetCode(err))
	}
}

func TestResolveGrouping_Unknown(t *testing.T) {
	cat := Default()

	_, err := cat.ResolveGrouping("age_bucket")
	if err == nil {
		t.Fatal("expected error for unknown grouping")
	}
	if errors.GetCode(err) != errors.CodeUnknownGrouping {
		t.Errorf("expected code %s, got %s", errors.CodeUnknownGrouping, errors.GetCode(err))
	}
}

// Every metric must carry a retrieval query for every grouping, otherwise a
// valid selection would fail at fetch time instead of being caught here.
func TestDefault_EveryMetricCoversEveryGrouping(t *testing.T) {
	cat := Default()

	for _, m := range cat.Metrics() {
		for _, g := range cat.Groupings() {
			if _, ok := m.Queries[g.ID]; !ok {
				t.Errorf("metric %s has no query for grouping %s", m.ID, g.ID)
			}
		}
	}
}

func TestDefault_GroupingsAreTwoValued(t *testing.T) {
	cat := Default()

	for _, g := range cat.Groupings() {
		if g.GroupALabel == "" || g.GroupBLabel == "" {
			t.Errorf("grouping %s has empty labels", g.ID)
		}
		if g.GroupALabel == g.GroupBLabel {
			t.Errorf("grouping %s labels must differ", g.ID)
		}
	}
}

func TestDefault_EnumerationOrderIsStable(t *testing.T) {
	a := Default()
	b := Default()

	metricsA := a.Metrics()
	metricsB := b.Metrics()
	if len(metricsA) != len(metricsB) {
		t.Fatalf("metric counts differ: %d vs %d", len(metricsA), len(metricsB))
	}
	for i := range metricsA {
		if metricsA[i].ID != metricsB[i].ID {
			t.Errorf("metric order differs at %d: %s vs %s", i, metricsA[i].ID, metricsB[i].ID)
		}
	}
}
