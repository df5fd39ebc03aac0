package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"stock-backend/internal/cache"
	"stock-backend/internal/config"
	"stock-backend/internal/database"
	"stock-backend/internal/db"
	"stock-backend/internal/repositories"
	"stock-backend/internal/services"
	"stock-backend/migrations"
)

// Child tables first so the RESTRICT foreign keys never fire
var tables = []string{
	"outward_entries",
	"inward_entries",
	"products",
	"containers",
	"measurements",
	"racks",
}

func main() {
	yes := flag.Bool("yes", false, "Skip the confirmation prompt")
	noSeed := flag.Bool("no-seed", false, "Leave the tables empty instead of loading sample data")
	flag.Parse()

	fmt.Println("========================================")
	fmt.Println("   Reset Stock Database")
	fmt.Println("========================================")
	fmt.Println()
	fmt.Println("WARNING: This will DELETE ALL STOCK DATA!")
	fmt.Println()
	fmt.Println("This will clear products, racks, containers, measurements")
	fmt.Println("and every inward and outward entry. ID sequences keep counting,")
	fmt.Println("so deleted ids are never handed out again.")
	fmt.Println()

	if !*yes {
		fmt.Print("Type 'yes' to confirm: ")
		var confirm string
		fmt.Scanln(&confirm)
		if confirm != "yes" {
			fmt.Println("Reset cancelled.")
			return
		}
	}

	cfg := config.Load()
	if cfg.Database.Driver != config.DriverPostgres {
		log.Fatalf("reset only applies to the %s driver (configured: %s)", config.DriverPostgres, cfg.Database.Driver)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		log.Fatalf("Unable to connect to database: %v", err)
	}
	defer pool.Close()

	migrator := database.NewMigrator(pool, migrations.FS)
	if err := migrator.RunMigrations(ctx); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		log.Fatalf("Failed to begin transaction: %v", err)
	}
	defer tx.Rollback(ctx)

	for _, table := range tables {
		if _, err := tx.Exec(ctx, fmt.Sprintf("DELETE FROM %s", table)); err != nil {
			log.Fatalf("Failed to clear %s: %v", table, err)
		}
		fmt.Printf("  - Cleared %s\n", table)
	}

	if err := tx.Commit(ctx); err != nil {
		log.Fatalf("Failed to commit transaction: %v", err)
	}

	// Cached summaries describe the old data
	c := cache.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, 0)
	defer c.Close()
	c.InvalidateStock(ctx)

	if !*noSeed {
		seed := services.NewSeedService(repositories.NewPostgresStore(pool), nil, c)
		if err := seed.InitDatabase(ctx); err != nil {
			log.Fatalf("Failed to load sample data: %v", err)
		}
		fmt.Println("  - Loaded sample data")
	}

	fmt.Println()
	fmt.Println("Database reset successful!")
}
