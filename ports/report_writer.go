package ports

import (
	"shopstat/domain/stats"
)

// ReportWriter exports computed results to an external artifact such as a
// spreadsheet. Writers receive finished results only; they never reach back
// into the pipeline.
type ReportWriter interface {
	WriteResults(path string, results []*stats.TestResult) error
}
