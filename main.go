package main

import (
	"log"
	"os"

	"shopstat/adapters/excel"
	"shopstat/adapters/postgres"
	"shopstat/app"
	"shopstat/domain/catalog"
	"shopstat/internal/analysis"
	"shopstat/internal/config"
	"shopstat/internal/errors"
	"shopstat/ui"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

// initDatabase opens the read-only warehouse connection
func initDatabase(appConfig *config.Config) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", appConfig.Database.URL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to warehouse")
	}
	db.SetMaxOpenConns(appConfig.Database.MaxOpenConns)
	if err := db.Ping(); err != nil {
		return nil, errors.Wrap(err, "failed to ping warehouse")
	}
	return db, nil
}

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}
	gin.SetMode(appConfig.Server.GinMode)

	db, err := initDatabase(appConfig)
	if err != nil {
		log.Fatalf("Database error: %v", err)
	}
	defer db.Close()

	if err := os.MkdirAll(appConfig.Report.ExportDir, 0o755); err != nil {
		log.Fatalf("Failed to create export directory: %v", err)
	}

	cat := catalog.Default()
	source := postgres.NewObservationSource(db, appConfig.Database.QueryTimeout)
	engine := analysis.NewEngine(appConfig.Engine.Alpha)
	comparisons := app.NewComparisonService(cat, source, engine, appConfig.Engine.MinGroupSize)
	sweeps := app.NewSweepService(comparisons, 4)
	reports := excel.NewReportWriter()

	server := ui.NewServer(comparisons, sweeps, reports, appConfig.Report.ExportDir)
	if err := server.Run(appConfig.Server.Port); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
