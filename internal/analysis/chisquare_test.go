package analysis

import (
	"math"
	"testing"

	domstats "shopstat/domain/stats"
	"shopstat/internal/errors"
)

// catSample builds a categorical sample with the given per-category counts
func catSample(label string, counts map[string]int) domstats.GroupedSample {
	s := domstats.GroupedSample{Label: label}
	for cat, n := range counts {
		for i := 0; i < n; i++ {
			s.Categories = append(s.Categories, cat)
		}
	}
	return s
}

// Reference scenario: payment method x channel with observed counts
// [[50,30],[20,40]]. Statistic follows sum (O-E)^2/E over all four cells.
func TestChiSquare_ReferenceScenario(t *testing.T) {
	a := catSample("WEB", map[string]int{"card": 50, "wallet": 20})
	b := catSample("MOBILE", map[string]int{"card": 30, "wallet": 40})

	res, err := chiSquareTest(a, b, 0.05)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if math.Abs(res.Statistic-11.6667) > 1e-3 {
		t.Errorf("chi-square statistic: got %.4f want 11.6667", res.Statistic)
	}
	if res.DegreesOfFreedom != 1 {
		t.Errorf("df: got %.0f want 1", res.DegreesOfFreedom)
	}
	if res.Decision != domstats.RejectNull {
		t.Errorf("expected reject_null at alpha 0.05, got %s (p=%.4f)", res.Decision, res.PValue)
	}
	if res.Contingency == nil {
		t.Fatal("chi-square result must carry its contingency table")
	}
}

// Expected counts under independence must redistribute exactly the
// observed grand total.
func TestChiSquare_ExpectedSumsMatchObserved(t *testing.T) {
	a := catSample("M", map[string]int{"card": 33, "wallet": 12, "transfer": 9})
	b := catSample("F", map[string]int{"card": 21, "wallet": 28, "transfer": 17})

	res, err := chiSquareTest(a, b, 0.05)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	table := res.Contingency
	observedSum := float64(table.GrandTotal())
	expectedSum := 0.0
	for _, row := range table.Expected {
		for _, e := range row {
			expectedSum += e
		}
	}
	if math.Abs(expectedSum-observedSum) > 1e-9 {
		t.Errorf("expected sum %.6f != observed sum %.6f", expectedSum, observedSum)
	}
	if res.Statistic < 0 {
		t.Errorf("chi-square statistic must be non-negative, got %v", res.Statistic)
	}
	wantDF := float64((len(table.Categories) - 1) * 1)
	if res.DegreesOfFreedom != wantDF {
		t.Errorf("df: got %.0f want %.0f", res.DegreesOfFreedom, wantDF)
	}
}

// Scenario: low expected counts degrade power but still produce a result
func TestChiSquare_DegenerateTableIsCaveatNotError(t *testing.T) {
	a := catSample("M", map[string]int{"card": 3, "wallet": 2})
	b := catSample("F", map[string]int{"card": 2, "wallet": 3})

	res, err := chiSquareTest(a, b, 0.05)
	if err != nil {
		t.Fatalf("degenerate table must not be fatal: %v", err)
	}
	if !res.HasCaveat(domstats.CaveatDegenerateTable) {
		t.Error("expected DEGENERATE_TABLE caveat")
	}
}

func TestChiSquare_SingleCategoryIsFatal(t *testing.T) {
	a := catSample("M", map[string]int{"card": 10})
	b := catSample("F", map[string]int{"card": 12})

	_, err := chiSquareTest(a, b, 0.05)
	if err == nil {
		t.Fatal("expected error for single-category table")
	}
	if errors.GetCode(err) != errors.CodeInvalidTable {
		t.Errorf("expected code %s, got %s", errors.CodeInvalidTable, errors.GetCode(err))
	}
}

func TestChiSquare_ColumnPercentages(t *testing.T) {
	a := catSample("M", map[string]int{"card": 75, "wallet": 25})
	b := catSample("F", map[string]int{"card": 40, "wallet": 60})

	res, err := chiSquareTest(a, b, 0.05)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if math.Abs(res.GroupSummaries[0].Percent["card"]-75) > 1e-9 {
		t.Errorf("group A card percentage: got %.2f want 75", res.GroupSummaries[0].Percent["card"])
	}
	if math.Abs(res.GroupSummaries[1].Percent["wallet"]-60) > 1e-9 {
		t.Errorf("group B wallet percentage: got %.2f want 60", res.GroupSummaries[1].Percent["wallet"])
	}
	if res.GroupSummaries[0].N != 100 || res.GroupSummaries[1].N != 100 {
		t.Errorf("group sizes: got %d/%d want 100/100", res.GroupSummaries[0].N, res.GroupSummaries[1].N)
	}
}
