package report

import (
	"strings"
	"testing"

	domstats "shopstat/domain/stats"
	"shopstat/internal/errors"
)

func welchResult() *domstats.TestResult {
	return &domstats.TestResult{
		TestKind:         domstats.TestWelchT,
		MetricID:         "avg_order_value",
		GroupingID:       "gender",
		Statistic:        -3.1623,
		DegreesOfFreedom: 3.45,
		PValue:           0.0441,
		Alpha:            0.05,
		Decision:         domstats.RejectNull,
		GroupSummaries: [2]domstats.GroupSummary{
			{Label: "M", N: 3, Mean: 150, Variance: 2500},
			{Label: "F", N: 3, Mean: 316.6667, Variance: 5833.3333},
		},
	}
}

func chiSquareResult() *domstats.TestResult {
	return &domstats.TestResult{
		TestKind:         domstats.TestChiSquare,
		MetricID:         "payment_method",
		GroupingID:       "channel",
		Statistic:        11.6667,
		DegreesOfFreedom: 1,
		PValue:           0.0006,
		Alpha:            0.05,
		Decision:         domstats.RejectNull,
		GroupSummaries: [2]domstats.GroupSummary{
			{Label: "WEB", N: 70, Counts: map[string]int{"card": 50, "wallet": 20},
				Percent: map[string]float64{"card": 71, "wallet": 29}},
			{Label: "MOBILE", N: 70, Counts: map[string]int{"card": 30, "wallet": 40},
				Percent: map[string]float64{"card": 43, "wallet": 57}},
		},
		Contingency: &domstats.ContingencyTable{
			Categories: []string{"card", "wallet"},
			Groups:     [2]string{"WEB", "MOBILE"},
			Observed:   [][]int{{50, 30}, {20, 40}},
			Expected:   [][]float64{{40, 40}, {30, 30}},
		},
	}
}

func TestFormat_NilResultRejected(t *testing.T) {
	_, err := Format(nil, "Average order value", "Gender")
	if err == nil {
		t.Fatal("expected error for nil result")
	}
	if errors.GetCode(err) != errors.CodeInvalidInput {
		t.Errorf("expected code %s, got %s", errors.CodeInvalidInput, errors.GetCode(err))
	}
}

func TestFormat_WelchTextBlock(t *testing.T) {
	f, err := Format(welchResult(), "Average order value", "Gender")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, want := range []string{
		"t-test — Average order value",
		"Groups: M vs F",
		"t-statistic: -3.1623",
		"p-value: 0.0441",
		"Conclusion: Significant difference (alpha=0.05)",
	} {
		if !strings.Contains(f.Text, want) {
			t.Errorf("text block missing %q:\n%s", want, f.Text)
		}
	}
	if !strings.Contains(f.Markdown, "| M | 3 | 150.0000 | 2500.0000 |") {
		t.Errorf("markdown missing group summary row:\n%s", f.Markdown)
	}
}

func TestFormat_ChiSquareIncludesTableAndPercentages(t *testing.T) {
	f, err := Format(chiSquareResult(), "Payment method", "Traffic source")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, want := range []string{
		"Null hypothesis",
		"Chi-square statistic: 11.6667 (df=1)",
		"we reject the null hypothesis",
		"card",
		"wallet",
		"71%",
	} {
		if !strings.Contains(f.Text, want) {
			t.Errorf("chi-square text missing %q:\n%s", want, f.Text)
		}
	}
}

func TestFormat_CaveatsSurfaceInOutput(t *testing.T) {
	res := welchResult()
	res.Caveats = []domstats.Caveat{domstats.CaveatDroppedObservations}
	res.DroppedCount = 12

	f, err := Format(res, "Average order value", "Gender")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(f.Text, "12 observations carried unrecognized group labels") {
		t.Errorf("caveat not rendered:\n%s", f.Text)
	}
}
