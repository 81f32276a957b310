package analysis

import (
	"math"
	"testing"

	domstats "shopstat/domain/stats"
)

func sample(label string, values ...float64) domstats.GroupedSample {
	return domstats.GroupedSample{Label: label, Values: values}
}

// Reference scenario: average order value by gender. Expected values follow
// t = (mean_a - mean_b) / sqrt(var_a/n_a + var_b/n_b) with Bessel-corrected
// variances and Welch-Satterthwaite degrees of freedom.
func TestWelchTTest_ReferenceScenario(t *testing.T) {
	a := sample("M", 100, 200, 150)
	b := sample("F", 300, 250, 400)

	res, err := welchTTest(a, b, 0.05)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if math.Abs(res.Statistic-(-3.1623)) > 1e-3 {
		t.Errorf("t-statistic: got %.4f want -3.1623", res.Statistic)
	}
	if math.Abs(res.DegreesOfFreedom-3.4483) > 1e-3 {
		t.Errorf("degrees of freedom: got %.4f want 3.4483", res.DegreesOfFreedom)
	}
	if res.PValue >= 0.05 {
		t.Errorf("p-value should be significant at 0.05, got %.4f", res.PValue)
	}
	if res.Decision != domstats.RejectNull {
		t.Errorf("expected reject_null, got %s", res.Decision)
	}

	// Descriptives carried on the result
	if res.GroupSummaries[0].N != 3 || math.Abs(res.GroupSummaries[0].Mean-150) > 1e-9 {
		t.Errorf("group A summary wrong: %+v", res.GroupSummaries[0])
	}
	if math.Abs(res.GroupSummaries[0].Variance-2500) > 1e-9 {
		t.Errorf("group A variance should be Bessel-corrected (2500), got %.4f", res.GroupSummaries[0].Variance)
	}
}

// Swapping group order flips the sign of t but leaves the p-value unchanged
func TestWelchTTest_SignSymmetry(t *testing.T) {
	a := sample("M", 12, 15, 11, 18, 14)
	b := sample("F", 20, 22, 19, 25, 21)

	ab, err := welchTTest(a, b, 0.05)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ba, err := welchTTest(b, a, 0.05)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if math.Abs(ab.Statistic+ba.Statistic) > 1e-12 {
		t.Errorf("t(A,B) should equal -t(B,A): %.6f vs %.6f", ab.Statistic, ba.Statistic)
	}
	if math.Abs(ab.PValue-ba.PValue) > 1e-12 {
		t.Errorf("p(A,B) should equal p(B,A): %.6f vs %.6f", ab.PValue, ba.PValue)
	}
	if math.Abs(ab.DegreesOfFreedom-ba.DegreesOfFreedom) > 1e-12 {
		t.Errorf("df should be symmetric: %.6f vs %.6f", ab.DegreesOfFreedom, ba.DegreesOfFreedom)
	}
}

// Two constant groups have no variance to estimate; the engine must report
// an indeterminate caveat rather than NaN.
func TestWelchTTest_IndeterminateStatistic(t *testing.T) {
	a := sample("M", 5, 5, 5)
	b := sample("F", 7, 7, 7)

	res, err := welchTTest(a, b, 0.05)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.HasCaveat(domstats.CaveatIndeterminateStatistic) {
		t.Error("expected INDETERMINATE_STATISTIC caveat")
	}
	if math.IsNaN(res.Statistic) || math.IsNaN(res.PValue) {
		t.Error("indeterminate result must not carry NaN")
	}
	if res.Decision != domstats.FailToReject {
		t.Errorf("indeterminate result must not reject, got %s", res.Decision)
	}
}

func TestWelchTTest_PValueBounds(t *testing.T) {
	cases := []struct {
		name string
		a, b domstats.GroupedSample
	}{
		{"identical groups", sample("M", 1, 2, 3), sample("F", 1, 2, 3)},
		{"huge separation", sample("M", 1, 2, 3, 2, 1), sample("F", 1000, 1001, 1002, 1001, 1000)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res, err := welchTTest(tc.a, tc.b, 0.05)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if res.PValue < 0 || res.PValue > 1 {
				t.Errorf("p-value out of [0,1]: %v", res.PValue)
			}
		})
	}
}
