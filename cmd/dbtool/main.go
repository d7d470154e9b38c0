// cmd/dbtool initializes the postgres schema and, given a capacity
// history CSV, seeds it -- the same two-step responsibility as the
// teacher's cmd/dbtool/main.go (schema init then SeedFromJSON), ported
// from sqlite+JSON seeding to postgres+CSV.
package main

import (
	"context"
	"database/sql"
	"log"
	"os"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"vehicle-transport-planner/internal/adapters/csv"
	"vehicle-transport-planner/internal/adapters/postgres"
	"vehicle-transport-planner/internal/config"
	"vehicle-transport-planner/internal/platform/db"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if strings.TrimSpace(databaseURL) == "" {
		log.Fatal("DATABASE_URL is required")
	}

	conn, err := db.Open(databaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	seedPath := config.GetEnv("CAPACITY_HISTORY_SEED_PATH", "")
	if err := initAndSeed(conn, seedPath); err != nil {
		log.Fatal(err)
	}
}

func initAndSeed(conn *sql.DB, seedPath string) error {
	log.Println("Initializing database schema...")
	if err := postgres.InitSchema(conn); err != nil {
		log.Fatalf("schema initialization failed: %v", err)
	}
	log.Println("Schema ready.")

	if strings.TrimSpace(seedPath) == "" {
		log.Println("No CAPACITY_HISTORY_SEED_PATH set, skipping seed.")
		return nil
	}

	log.Println("Seeding capacity history...")
	loader := &csv.Loader{CapacityHistoryPath: seedPath}
	observations, err := loader.ListCapacityHistory()
	if err != nil {
		log.Fatalf("seeding failed: %v", err)
	}

	repo := postgres.NewCapacityHistoryRepo(conn)
	if err := repo.InsertMany(context.Background(), observations); err != nil {
		log.Fatalf("seeding failed: %v", err)
	}
	log.Printf("Seeding complete: %d observations.", len(observations))

	return nil
}
