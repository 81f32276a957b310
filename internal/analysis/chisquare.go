package analysis

import (
	"fmt"
	"sort"

	domstats "shopstat/domain/stats"
	"shopstat/internal/errors"

	"gonum.org/v1/gonum/stat/distuv"
)

// minExpectedCell is the classic low-power threshold: expected counts below
// it make the chi-square approximation unreliable.
const minExpectedCell = 5.0

// chiSquareTest runs the test of independence over a category x group
// contingency table built from two categorical samples. Expected counts
// follow the independence model row_total * col_total / grand_total.
func chiSquareTest(a, b domstats.GroupedSample, alpha float64) (*domstats.TestResult, error) {
	table, err := buildContingencyTable(a, b)
	if err != nil {
		return nil, err
	}

	rows := len(table.Categories)
	cols := 2
	grand := float64(table.GrandTotal())

	rowTotals := make([]float64, rows)
	colTotals := make([]float64, cols)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			rowTotals[i] += float64(table.Observed[i][j])
			colTotals[j] += float64(table.Observed[i][j])
		}
	}

	for i, total := range rowTotals {
		if total == 0 {
			return nil, errors.InvalidContingencyTable(fmt.Sprintf(
				"category %q has no observations in either group", table.Categories[i]))
		}
	}
	for j, total := range colTotals {
		if total == 0 {
			return nil, errors.InvalidContingencyTable(fmt.Sprintf(
				"group %q has no observations in any category", table.Groups[j]))
		}
	}

	chiSq := 0.0
	degenerate := false
	table.Expected = make([][]float64, rows)
	for i := 0; i < rows; i++ {
		table.Expected[i] = make([]float64, cols)
		for j := 0; j < cols; j++ {
			expected := rowTotals[i] * colTotals[j] / grand
			table.Expected[i][j] = expected
			if expected < minExpectedCell {
				degenerate = true
			}
			diff := float64(table.Observed[i][j]) - expected
			chiSq += diff * diff / expected
		}
	}

	df := float64((rows - 1) * (cols - 1))
	chiDist := distuv.ChiSquared{K: df}
	pValue := clampP(1 - chiDist.CDF(chiSq))

	result := &domstats.TestResult{
		TestKind:         domstats.TestChiSquare,
		Statistic:        chiSq,
		DegreesOfFreedom: df,
		PValue:           pValue,
		Alpha:            alpha,
		Decision:         decide(pValue, alpha),
		GroupSummaries:   summarizeCategorical(table),
		Contingency:      table,
	}
	if degenerate {
		result.Caveats = append(result.Caveats, domstats.CaveatDegenerateTable)
	}
	return result, nil
}

// buildContingencyTable cross-tabulates category counts per group.
// Categories are sorted so repeated runs render identically.
func buildContingencyTable(a, b domstats.GroupedSample) (*domstats.ContingencyTable, error) {
	countsA := make(map[string]int)
	countsB := make(map[string]int)
	for _, c := range a.Categories {
		countsA[c]++
	}
	for _, c := range b.Categories {
		countsB[c]++
	}

	seen := make(map[string]bool)
	var categories []string
	for c := range countsA {
		if !seen[c] {
			seen[c] = true
			categories = append(categories, c)
		}
	}
	for c := range countsB {
		if !seen[c] {
			seen[c] = true
			categories = append(categories, c)
		}
	}
	sort.Strings(categories)

	if len(categories) < 2 {
		return nil, errors.InvalidContingencyTable(
			"need at least two categories to test independence")
	}

	table := &domstats.ContingencyTable{
		Categories: categories,
		Groups:     [2]string{a.Label, b.Label},
		Observed:   make([][]int, len(categories)),
	}
	for i, c := range categories {
		table.Observed[i] = []int{countsA[c], countsB[c]}
	}
	return table, nil
}

// summarizeCategorical produces per-group counts and column percentages
func summarizeCategorical(table *domstats.ContingencyTable) [2]domstats.GroupSummary {
	var summaries [2]domstats.GroupSummary
	for j := 0; j < 2; j++ {
		counts := make(map[string]int, len(table.Categories))
		total := 0
		for i, c := range table.Categories {
			counts[c] = table.Observed[i][j]
			total += table.Observed[i][j]
		}
		percent := make(map[string]float64, len(table.Categories))
		if total > 0 {
			for c, n := range counts {
				percent[c] = 100 * float64(n) / float64(total)
			}
		}
		summaries[j] = domstats.GroupSummary{
			Label:   table.Groups[j],
			N:       total,
			Counts:  counts,
			Percent: percent,
		}
	}
	return summaries
}
