package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"shopstat/adapters/postgres"
	"shopstat/app"
	"shopstat/domain/catalog"
	"shopstat/internal/analysis"
	"shopstat/internal/config"
	"shopstat/internal/errors"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

func main() {
	metricID := flag.String("metric", "", "metric id (see -list)")
	groupingID := flag.String("grouping", catalog.GroupingGender, "grouping id")
	alpha := flag.Float64("alpha", 0, "significance level (0 = configured default)")
	list := flag.Bool("list", false, "list available metrics and groupings")
	flag.Parse()

	cat := catalog.Default()
	if *list {
		fmt.Println("Metrics:")
		for _, m := range cat.Metrics() {
			fmt.Printf("  %-24s %s (%s)\n", m.ID, m.DisplayName, m.ValueKind)
		}
		fmt.Println("Groupings:")
		for _, g := range cat.Groupings() {
			fmt.Printf("  %-24s %s vs %s\n", g.ID, g.GroupALabel, g.GroupBLabel)
		}
		return
	}
	if *metricID == "" {
		flag.Usage()
		os.Exit(2)
	}

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}
	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	db, err := sqlx.Connect("postgres", appConfig.Database.URL)
	if err != nil {
		log.Fatalf("Failed to connect to warehouse: %v", err)
	}
	defer db.Close()

	source := postgres.NewObservationSource(db, appConfig.Database.QueryTimeout)
	engine := analysis.NewEngine(appConfig.Engine.Alpha)
	comparisons := app.NewComparisonService(cat, source, engine, appConfig.Engine.MinGroupSize)

	_, formatted, err := comparisons.RunFormatted(context.Background(), *metricID, *groupingID, *alpha)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error [%s]: %v\n", errors.GetCode(err), err)
		os.Exit(1)
	}
	fmt.Println(formatted.Text)
}
