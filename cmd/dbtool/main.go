package main

import (
	"context"
	"database/sql"
	"encoding/csv"
	"eta-service/internal/adapters/repositories"
	"eta-service/internal/platform/db"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
)

// dbtool manages the trips store outside the serving path:
//
//	dbtool init            create the schema
//	dbtool export [path]   write recorded trips as the training CSV
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if strings.TrimSpace(databaseURL) == "" {
		log.Fatal("DATABASE_URL is required")
	}

	dbConn, err := db.Open(databaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer dbConn.Close()

	cmd := "init"
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}

	switch cmd {
	case "init":
		log.Println("Initializing database schema...")
		if err := repositories.InitSchema(dbConn); err != nil {
			log.Fatalf("schema initialization failed: %v", err)
		}
		log.Println("Schema ready.")
	case "export":
		path := "data/trips.csv"
		if len(os.Args) > 2 {
			path = os.Args[2]
		}
		if err := exportCSV(dbConn, path); err != nil {
			log.Fatalf("export failed: %v", err)
		}
		log.Printf("Exported trips to %s", path)
	default:
		log.Fatalf("unknown command %q (want init or export)", cmd)
	}
}

// exportCSV writes every recorded trip with the column names the training
// job expects.
func exportCSV(dbConn *sql.DB, path string) error {
	repo := repositories.NewPostgresTripRepository(dbConn)

	trips, err := repo.ListTrips(context.Background(), 0)
	if err != nil {
		return fmt.Errorf("export csv: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export csv: create %q: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)

	header := []string{"distance_travelled", "day_of_week", "time_of_day", "peak_traffic", "eta"}
	if err := w.Write(header); err != nil {
		return fmt.Errorf("export csv: write header: %w", err)
	}

	for _, t := range trips {
		record := []string{
			strconv.FormatFloat(t.DistanceKm, 'f', 2, 64),
			string(t.DayOfWeek),
			strconv.Itoa(t.Hour),
			string(t.Traffic),
			strconv.FormatFloat(t.ETAMinutes, 'f', 2, 64),
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("export csv: write trip %d: %w", t.TripID, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("export csv: flush: %w", err)
	}

	return nil
}
