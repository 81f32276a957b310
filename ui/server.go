package ui

import (
	"net/http"

	"shopstat/app"
	"shopstat/internal"
	"shopstat/ports"

	"github.com/gin-gonic/gin"
)

// Server exposes the comparison engine over HTTP. It is a thin adapter:
// every request runs the full pipeline on the request goroutine and
// marshals only the finished result back.
type Server struct {
	router      *gin.Engine
	comparisons *app.ComparisonService
	sweeps      *app.SweepService
	reports     ports.ReportWriter
	exportDir   string
	log         *internal.Logger
}

// NewServer creates the HTTP server around the application services
func NewServer(comparisons *app.ComparisonService, sweeps *app.SweepService, reports ports.ReportWriter, exportDir string) *Server {
	s := &Server{
		router:      gin.Default(),
		comparisons: comparisons,
		sweeps:      sweeps,
		reports:     reports,
		exportDir:   exportDir,
		log:         internal.DefaultLogger,
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := s.router.Group("/api")
	{
		api.GET("/catalog", s.handleCatalog)
		api.POST("/tests/run", s.handleRunTest)
		api.POST("/sweep", s.handleSweep)
	}
}

// Run starts the HTTP server on the given port
func (s *Server) Run(port string) error {
	s.log.Info("statistical comparison API listening on :%s", port)
	return s.router.Run(":" + port)
}
