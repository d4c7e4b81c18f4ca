package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"

	"github.com/smartkitchen/inventory-api/internal/domain"
	"github.com/smartkitchen/inventory-api/internal/ingest"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
)

func newDBURLFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:     "db-url",
		Usage:    "Database connection string",
		Required: true,
		EnvVars:  []string{"DATABASE_URL"},
	}
}

func openDB(c *cli.Context) (*sql.DB, error) {
	db, err := sql.Open("pgx", c.String("db-url"))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return db, nil
}

func ensureSchema(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS consumption_events (
			id BIGSERIAL PRIMARY KEY,
			item_name TEXT NOT NULL,
			date_consumed DATE NOT NULL,
			quantity_used DOUBLE PRECISION NOT NULL,
			remaining_stock DOUBLE PRECISION NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_consumption_events_item
			ON consumption_events (item_name, date_consumed)`,
		`CREATE TABLE IF NOT EXISTS meal_plans (
			id BIGSERIAL PRIMARY KEY,
			plan_date DATE NOT NULL,
			payload JSONB NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
	}
	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("schema setup failed: %w", err)
		}
	}
	return nil
}

type sampleRow struct {
	item     string
	date     string
	quantity float64
	stock    float64
}

var sampleRows = []sampleRow{
	{"Milk", "2025-03-01", 1, 5},
	{"Milk", "2025-03-05", 1, 4},
	{"Milk", "2025-03-10", 1, 3},
	{"Eggs", "2025-03-02", 6, 12},
	{"Eggs", "2025-03-06", 6, 6},
	{"Eggs", "2025-03-09", 6, 0},
	{"Rice", "2025-03-03", 500, 5000},
	{"Rice", "2025-03-08", 500, 4500},
	{"Rice", "2025-03-13", 500, 4000},
	{"Tomatoes", "2025-03-04", 3, 10},
	{"Tomatoes", "2025-03-07", 3, 7},
	{"Tomatoes", "2025-03-11", 3, 4},
	{"Bread", "2025-03-05", 1, 3},
	{"Bread", "2025-03-08", 1, 2},
	{"Bread", "2025-03-12", 1, 1},
}

func seedSample(c *cli.Context) error {
	db, err := openDB(c)
	if err != nil {
		return err
	}
	defer db.Close()

	ctx := c.Context
	if err := ensureSchema(ctx, db); err != nil {
		return err
	}

	for _, row := range sampleRows {
		_, err := db.ExecContext(ctx,
			`INSERT INTO consumption_events (item_name, date_consumed, quantity_used, remaining_stock)
			 VALUES ($1, $2, $3, $4)`,
			row.item, row.date, row.quantity, row.stock)
		if err != nil {
			return fmt.Errorf("failed to insert sample row for %s: %w", row.item, err)
		}
	}

	log.Printf("seeded %d sample consumption events", len(sampleRows))
	return nil
}

func seedSchema(c *cli.Context) error {
	db, err := openDB(c)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := ensureSchema(c.Context, db); err != nil {
		return err
	}
	log.Println("schema ready")
	return nil
}

func importCSV(c *cli.Context) error {
	path := c.String("file")
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	events, err := ingest.ParseConsumptionCSV(f)
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}

	db, err := openDB(c)
	if err != nil {
		return err
	}
	defer db.Close()

	ctx := c.Context
	if err := ensureSchema(ctx, db); err != nil {
		return err
	}

	for i, event := range events {
		_, err := db.ExecContext(ctx,
			`INSERT INTO consumption_events (item_name, date_consumed, quantity_used, remaining_stock)
			 VALUES ($1, $2, $3, $4)`,
			event.ItemName, event.DateConsumed.Format(domain.DateLayout), event.QuantityUsed, event.RemainingStock)
		if err != nil {
			return fmt.Errorf("failed to insert row %d: %w", i+1, err)
		}
	}

	log.Printf("imported %d consumption events from %s", len(events), path)
	return nil
}

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: could not load .env file: %v", err)
	}

	app := &cli.App{
		Name:  "seed",
		Usage: "Prepare and populate the kitchen inventory database",
		Commands: []*cli.Command{
			{
				Name:   "schema",
				Usage:  "Create the tables if they do not exist",
				Flags:  []cli.Flag{newDBURLFlag()},
				Action: seedSchema,
			},
			{
				Name:   "sample",
				Usage:  "Insert the starter consumption log",
				Flags:  []cli.Flag{newDBURLFlag()},
				Action: seedSample,
			},
			{
				Name:  "import",
				Usage: "Import consumption events from a CSV file",
				Flags: []cli.Flag{
					newDBURLFlag(),
					&cli.StringFlag{
						Name:     "file",
						Usage:    "Path to the CSV file",
						Required: true,
					},
				},
				Action: importCSV,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
