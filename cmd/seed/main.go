package main

import (
	"context"
	"flag"
	"log"

	"shopstat/internal/config"
	"shopstat/internal/testkit"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

// seed loads a synthetic warehouse for local development. Production
// deployments get their rd_* tables from the upstream ETL, never from here.
func main() {
	customers := flag.Int("customers", 2000, "number of synthetic customers")
	seed := flag.Int64("seed", 42, "rng seed")
	flag.Parse()

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

	genConfig := testkit.DefaultConfig()
	genConfig.Seed = *seed
	gen := testkit.NewGenerator(genConfig)

	if err := gen.SeedWarehouse(context.Background(), db, *customers); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
	log.Printf("Seeded %d synthetic customers", *customers)
}
