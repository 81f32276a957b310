package excel

import (
	"fmt"

	"shopstat/domain/stats"
	"shopstat/internal/errors"
	"shopstat/ports"

	"github.com/xuri/excelize/v2"
)

// reportWriter exports test results to an .xlsx workbook, one sheet per
// result, for analysts who consume findings in spreadsheets.
type reportWriter struct{}

// NewReportWriter creates an Excel report writer
func NewReportWriter() ports.ReportWriter {
	return &reportWriter{}
}

// WriteResults renders each result to its own sheet and saves the workbook
func (w *reportWriter) WriteResults(path string, results []*stats.TestResult) error {
	if len(results) == 0 {
		return errors.InvalidInput("no results to export")
	}

	f := excelize.NewFile()
	defer f.Close()

	for i, res := range results {
		sheet := fmt.Sprintf("%s x %s", res.MetricID, res.GroupingID)
		if len(sheet) > 31 { // Excel sheet name limit
			sheet = sheet[:31]
		}
		if i == 0 {
			f.SetSheetName("Sheet1", sheet)
		} else if _, err := f.NewSheet(sheet); err != nil {
			return errors.Wrap(err, "failed to create sheet")
		}
		if err := writeSheet(f, sheet, res); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return errors.Wrap(err, "failed to save report workbook")
	}
	return nil
}

func writeSheet(f *excelize.File, sheet string, res *stats.TestResult) error {
	rows := [][]interface{}{
		{"test", string(res.TestKind)},
		{"metric", res.MetricID},
		{"grouping", res.GroupingID},
		{"statistic", res.Statistic},
		{"degrees of freedom", res.DegreesOfFreedom},
		{"p-value", res.PValue},
		{"alpha", res.Alpha},
		{"decision", string(res.Decision)},
	}
	for _, c := range res.Caveats {
		rows = append(rows, []interface{}{"caveat", string(c)})
	}
	rows = append(rows, []interface{}{})

	if res.TestKind == stats.TestChiSquare && res.Contingency != nil {
		t := res.Contingency
		rows = append(rows, []interface{}{"category", t.Groups[0], t.Groups[1], t.Groups[0] + " %", t.Groups[1] + " %"})
		for i, c := range t.Categories {
			rows = append(rows, []interface{}{
				c, t.Observed[i][0], t.Observed[i][1],
				res.GroupSummaries[0].Percent[c], res.GroupSummaries[1].Percent[c],
			})
		}
	} else {
		rows = append(rows, []interface{}{"group", "n", "mean", "variance"})
		for _, g := range res.GroupSummaries {
			rows = append(rows, []interface{}{g.Label, g.N, g.Mean, g.Variance})
		}
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return errors.Wrap(err, "failed to compute cell coordinates")
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return errors.Wrap(err, "failed to write report row")
		}
	}
	return nil
}
