package ui

import (
	"net/http"
	"path/filepath"
	"time"

	domstats "shopstat/domain/stats"
	"shopstat/internal/errors"

	"github.com/gin-gonic/gin"
	"github.com/gomarkdown/markdown"
)

// RunTestRequest is the invocation contract consumed by any front end
type RunTestRequest struct {
	MetricID   string  `json:"metric_id" binding:"required"`
	GroupingID string  `json:"grouping_id" binding:"required"`
	Alpha      float64 `json:"alpha"`
}

// SweepRequest triggers a full catalog sweep, optionally exporting the
// successful results to a spreadsheet.
type SweepRequest struct {
	Alpha  float64 `json:"alpha"`
	Export bool    `json:"export"`
}

func (s *Server) handleCatalog(c *gin.Context) {
	cat := s.comparisons.Catalog()
	c.JSON(http.StatusOK, gin.H{
		"metrics":   cat.Metrics(),
		"groupings": cat.Groupings(),
	})
}

func (s *Server) handleRunTest(c *gin.Context) {
	var req RunTestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{
			"kind":    errors.CodeInvalidInput,
			"message": err.Error(),
		}})
		return
	}

	result, formatted, err := s.comparisons.RunFormatted(c.Request.Context(), req.MetricID, req.GroupingID, req.Alpha)
	if err != nil {
		s.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"result":    result,
		"formatted": formatted,
		"html":      string(markdown.ToHTML([]byte(formatted.Markdown), nil, nil)),
	})
}

func (s *Server) handleSweep(c *gin.Context) {
	var req SweepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{
			"kind":    errors.CodeInvalidInput,
			"message": err.Error(),
		}})
		return
	}

	report, err := s.sweeps.Run(c.Request.Context(), req.Alpha)
	if err != nil {
		s.renderError(c, err)
		return
	}

	response := gin.H{"report": report}
	if req.Export {
		var results []*domstats.TestResult
		for _, cell := range report.Cells {
			if cell.Result != nil {
				results = append(results, cell.Result)
			}
		}
		path := filepath.Join(s.exportDir, "sweep-"+time.Now().Format("20060102-150405")+".xlsx")
		if err := s.reports.WriteResults(path, results); err != nil {
			s.log.Error("sweep export failed: %v", err)
			response["export_error"] = err.Error()
		} else {
			response["export_path"] = path
		}
	}
	c.JSON(http.StatusOK, response)
}

// renderError maps the pipeline error taxonomy onto HTTP status codes. The
// caller can always distinguish bad input (4xx, fix the request) from
// data-quality failures (422, change the selection) from retryable
// warehouse trouble (502).
func (s *Server) renderError(c *gin.Context, err error) {
	code := errors.GetCode(err)
	status := http.StatusInternalServerError
	switch code {
	case errors.CodeUnknownMetric, errors.CodeUnknownGrouping:
		status = http.StatusNotFound
	case errors.CodeInvalidInput:
		status = http.StatusBadRequest
	case errors.CodeEmptyResult, errors.CodeInsufficientData, errors.CodeInvalidTable:
		status = http.StatusUnprocessableEntity
	case errors.CodeDataAccess:
		status = http.StatusBadGateway
	}
	c.JSON(status, gin.H{"error": gin.H{
		"kind":      code,
		"message":   err.Error(),
		"retryable": errors.Retryable(err),
	}})
}
