package report

import (
	"fmt"
	"strings"

	domstats "shopstat/domain/stats"
	"shopstat/internal/errors"
)

// Formatted is the presentation-ready rendering of a test result. Text is a
// plain block suitable for a terminal or result pane; Markdown carries the
// same content for HTML rendering.
type Formatted struct {
	Title    string `json:"title"`
	Text     string `json:"text"`
	Markdown string `json:"markdown"`
}

// Format renders a test result. Pure: no I/O and no failure modes beyond
// input validation.
func Format(res *domstats.TestResult, metricName, groupingName string) (*Formatted, error) {
	if res == nil {
		return nil, errors.InvalidInput("test result is required")
	}

	switch res.TestKind {
	case domstats.TestChiSquare:
		return formatChiSquare(res, groupingName), nil
	default:
		return formatWelch(res, metricName, groupingName), nil
	}
}

func formatWelch(res *domstats.TestResult, metricName, groupingName string) *Formatted {
	a, b := res.GroupSummaries[0], res.GroupSummaries[1]

	var sb strings.Builder
	fmt.Fprintf(&sb, "t-test — %s\n", metricName)
	fmt.Fprintf(&sb, "Groups: %s vs %s\n", a.Label, b.Label)
	fmt.Fprintf(&sb, "%s: n=%d, mean=%.4f, variance=%.4f\n", a.Label, a.N, a.Mean, a.Variance)
	fmt.Fprintf(&sb, "%s: n=%d, mean=%.4f, variance=%.4f\n", b.Label, b.N, b.Mean, b.Variance)
	fmt.Fprintf(&sb, "t-statistic: %.4f\n", res.Statistic)
	fmt.Fprintf(&sb, "degrees of freedom: %.2f\n", res.DegreesOfFreedom)
	fmt.Fprintf(&sb, "p-value: %.4f\n", res.PValue)
	fmt.Fprintf(&sb, "Conclusion: %s (alpha=%.2f)\n", decisionLabel(res.Decision), res.Alpha)
	appendCaveats(&sb, res)

	title := fmt.Sprintf("t-test — %s by %s", metricName, groupingName)
	return &Formatted{
		Title:    title,
		Text:     sb.String(),
		Markdown: welchMarkdown(res, title),
	}
}

func formatChiSquare(res *domstats.TestResult, groupingName string) *Formatted {
	table := res.Contingency

	var sb strings.Builder
	fmt.Fprintf(&sb, "Does the category distribution differ across %s?\n\n", groupingName)
	sb.WriteString("Counts:\n")
	sb.WriteString(renderCounts(table))
	fmt.Fprintf(&sb, "\nColumn percentages by %s:\n", groupingName)
	sb.WriteString(renderPercent(res))
	fmt.Fprintf(&sb, "\nNull hypothesis: the distribution is independent of %s.\n", groupingName)
	fmt.Fprintf(&sb, "Chi-square statistic: %.4f (df=%.0f)\n", res.Statistic, res.DegreesOfFreedom)
	fmt.Fprintf(&sb, "p-value: %.4f\n", res.PValue)
	if res.Decision == domstats.RejectNull {
		fmt.Fprintf(&sb, "Conclusion: we reject the null hypothesis (alpha=%.2f); the distribution differs across %s.\n", res.Alpha, groupingName)
	} else {
		fmt.Fprintf(&sb, "Conclusion: we fail to reject the null hypothesis (alpha=%.2f).\n", res.Alpha)
	}
	appendCaveats(&sb, res)

	title := fmt.Sprintf("Chi-square — distribution by %s", groupingName)
	return &Formatted{
		Title:    title,
		Text:     sb.String(),
		Markdown: chiSquareMarkdown(res, title, groupingName),
	}
}

func renderCounts(table *domstats.ContingencyTable) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%-20s %10s %10s\n", "", table.Groups[0], table.Groups[1])
	for i, c := range table.Categories {
		fmt.Fprintf(&sb, "%-20s %10d %10d\n", c, table.Observed[i][0], table.Observed[i][1])
	}
	return sb.String()
}

func renderPercent(res *domstats.TestResult) string {
	table := res.Contingency
	var sb strings.Builder
	fmt.Fprintf(&sb, "%-20s %10s %10s\n", "", table.Groups[0], table.Groups[1])
	for _, c := range table.Categories {
		fmt.Fprintf(&sb, "%-20s %9.0f%% %9.0f%%\n", c,
			res.GroupSummaries[0].Percent[c], res.GroupSummaries[1].Percent[c])
	}
	return sb.String()
}

func welchMarkdown(res *domstats.TestResult, title string) string {
	a, b := res.GroupSummaries[0], res.GroupSummaries[1]
	var sb strings.Builder
	fmt.Fprintf(&sb, "## %s\n\n", title)
	sb.WriteString("| group | n | mean | variance |\n|---|---|---|---|\n")
	fmt.Fprintf(&sb, "| %s | %d | %.4f | %.4f |\n", a.Label, a.N, a.Mean, a.Variance)
	fmt.Fprintf(&sb, "| %s | %d | %.4f | %.4f |\n\n", b.Label, b.N, b.Mean, b.Variance)
	fmt.Fprintf(&sb, "t = %.4f, df = %.2f, p = %.4f\n\n", res.Statistic, res.DegreesOfFreedom, res.PValue)
	fmt.Fprintf(&sb, "**%s** (alpha=%.2f)\n", decisionLabel(res.Decision), res.Alpha)
	markdownCaveats(&sb, res)
	return sb.String()
}

func chiSquareMarkdown(res *domstats.TestResult, title, groupingName string) string {
	table := res.Contingency
	var sb strings.Builder
	fmt.Fprintf(&sb, "## %s\n\n", title)
	fmt.Fprintf(&sb, "| category | %s | %s |\n|---|---|---|\n", table.Groups[0], table.Groups[1])
	for i, c := range table.Categories {
		fmt.Fprintf(&sb, "| %s | %d (%.0f%%) | %d (%.0f%%) |\n", c,
			table.Observed[i][0], res.GroupSummaries[0].Percent[c],
			table.Observed[i][1], res.GroupSummaries[1].Percent[c])
	}
	fmt.Fprintf(&sb, "\nχ² = %.4f, df = %.0f, p = %.4f\n\n", res.Statistic, res.DegreesOfFreedom, res.PValue)
	if res.Decision == domstats.RejectNull {
		fmt.Fprintf(&sb, "**We reject the null hypothesis** (alpha=%.2f): the distribution differs across %s.\n", res.Alpha, groupingName)
	} else {
		fmt.Fprintf(&sb, "**We fail to reject the null hypothesis** (alpha=%.2f).\n", res.Alpha)
	}
	markdownCaveats(&sb, res)
	return sb.String()
}

func appendCaveats(sb *strings.Builder, res *domstats.TestResult) {
	for _, c := range res.Caveats {
		fmt.Fprintf(sb, "Caveat: %s\n", caveatLabel(c, res))
	}
}

func markdownCaveats(sb *strings.Builder, res *domstats.TestResult) {
	for _, c := range res.Caveats {
		fmt.Fprintf(sb, "\n> Caveat: %s\n", caveatLabel(c, res))
	}
}

func caveatLabel(c domstats.Caveat, res *domstats.TestResult) string {
	switch c {
	case domstats.CaveatDegenerateTable:
		return "expected cell counts below 5; the chi-square approximation has low power here"
	case domstats.CaveatIndeterminateStatistic:
		return "both groups have zero variance; the t-statistic is indeterminate"
	case domstats.CaveatDroppedObservations:
		return fmt.Sprintf("%d observations carried unrecognized group labels and were excluded", res.DroppedCount)
	default:
		return string(c)
	}
}

func decisionLabel(d domstats.Decision) string {
	if d == domstats.RejectNull {
		return "Significant difference"
	}
	return "No statistically significant difference"
}
