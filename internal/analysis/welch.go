package analysis

import (
	"math"

	domstats "shopstat/domain/stats"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat/distuv"
)

// welchTTest compares two numeric samples without assuming equal population
// variances. The statistic is t = (meanA - meanB) / sqrt(varA/nA + varB/nB)
// with degrees of freedom from the Welch-Satterthwaite approximation and a
// two-tailed p-value from the t-distribution CDF.
func welchTTest(a, b domstats.GroupedSample, alpha float64) (*domstats.TestResult, error) {
	nA := float64(len(a.Values))
	nB := float64(len(b.Values))

	meanA, _ := stats.Mean(a.Values)
	meanB, _ := stats.Mean(b.Values)
	varA, _ := stats.SampleVariance(a.Values)
	varB, _ := stats.SampleVariance(b.Values)

	summaries := [2]domstats.GroupSummary{
		{Label: a.Label, N: len(a.Values), Mean: meanA, Variance: varA},
		{Label: b.Label, N: len(b.Values), Mean: meanB, Variance: varB},
	}

	se := math.Sqrt(varA/nA + varB/nB)
	if se == 0 {
		// Both variances are zero; the statistic is indeterminate. Report a
		// caveated non-decision rather than propagating NaN.
		return &domstats.TestResult{
			TestKind:         domstats.TestWelchT,
			Statistic:        0,
			DegreesOfFreedom: 0,
			PValue:           1,
			Alpha:            alpha,
			Decision:         domstats.FailToReject,
			GroupSummaries:   summaries,
			Caveats:          []domstats.Caveat{domstats.CaveatIndeterminateStatistic},
		}, nil
	}

	tStat := (meanA - meanB) / se

	// Welch-Satterthwaite degrees of freedom
	df := math.Pow(varA/nA+varB/nB, 2) /
		(math.Pow(varA/nA, 2)/(nA-1) + math.Pow(varB/nB, 2)/(nB-1))

	tDist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
	pValue := clampP(2 * (1 - tDist.CDF(math.Abs(tStat))))

	return &domstats.TestResult{
		TestKind:         domstats.TestWelchT,
		Statistic:        tStat,
		DegreesOfFreedom: df,
		PValue:           pValue,
		Alpha:            alpha,
		Decision:         decide(pValue, alpha),
		GroupSummaries:   summaries,
	}, nil
}
