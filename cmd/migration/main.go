package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"

	"github.com/latoulicious/dexbox/internal/config"
	"github.com/latoulicious/dexbox/pkg/catalog"
	"github.com/latoulicious/dexbox/pkg/database"
	"github.com/latoulicious/dexbox/pkg/database/migration"
	"github.com/latoulicious/dexbox/pkg/logging"
)

func main() {
	// Parse the command line arguments
	migrateFlag := flag.Bool("migrate", false, "Run the migrations")
	resetFlag := flag.Bool("reset", false, "Drop every table before migrating")
	seedFlag := flag.Bool("seed", false, "Copy the file or HTTP catalogue into the database")
	checkFlag := flag.Bool("check", false, "Check database connectivity and exit")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if cfg.Database.URL == "" {
		log.Fatal("DATABASE_URL environment variable not set")
	}
	logging.SetGlobalLoggerFactory(logging.NewLoggerFactory(logging.Options{
		Level:  cfg.Logger.Level,
		Format: "text",
	}))

	dm, err := database.Open(cfg.Database.URL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer dm.Close()
	log.Println("Connected to database")

	ctx := context.Background()

	if *checkFlag {
		runCheck(ctx, dm)
		return
	}

	// Reset Flag
	if *resetFlag {
		log.Println("Resetting database...")
		if err := migration.Reset(dm.DB()); err != nil {
			log.Fatalf("Failed to drop tables: %v", err)
		}
		log.Println("Database reset successfully")
	}

	// Schema Flag; seeding and reset need the schema too
	if *migrateFlag || *resetFlag || *seedFlag {
		if err := migration.RunMigration(dm.DB()); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
	}

	if *seedFlag {
		source := seedSource(cfg)
		log.Printf("Seeding catalogue from %s source...", source.Name())

		seedCtx, cancel := context.WithTimeout(ctx, cfg.Data.Timeout)
		defer cancel()
		if err := catalog.NewSynchronizer(source, dm.Catalog).Sync(seedCtx); err != nil {
			log.Fatalf("Failed to seed catalogue: %v", err)
		}

		stats, err := dm.GetStats(ctx)
		if err != nil {
			log.Fatalf("Failed to read back catalogue: %v", err)
		}
		log.Printf("Catalogue seeded: %d entries, %d balls, %d items, %d natures",
			stats.Entries, stats.Items[catalog.ListBalls], stats.Items[catalog.ListItems], stats.Items[catalog.ListNatures])
	}
}

// seedSource is the configured source, or the file source when the
// database itself is configured as the source.
func seedSource(cfg *config.Config) catalog.Source {
	if cfg.Data.Source == config.SourceHTTP {
		return catalog.NewHTTPSource(cfg.Data.BaseURL, cfg.Data.Paths(), &http.Client{Timeout: cfg.Data.Timeout})
	}
	return catalog.NewFileSource(cfg.Data.BaseDir, cfg.Data.Paths())
}

func runCheck(ctx context.Context, dm *database.DatabaseManager) {
	fmt.Println("=== Database Connectivity Check ===")

	report, err := database.Check(ctx, dm.DB())
	if err != nil {
		log.Fatalf("❌ %v", err)
	}

	fmt.Printf("✅ %s version: %s\n", report.Dialect, report.Version)
	fmt.Printf("📊 Connections: open %d, in use %d, idle %d\n", report.OpenConns, report.InUse, report.Idle)
	if len(report.MissingTables) > 0 {
		fmt.Printf("⚠️  Missing tables (run -migrate): %v\n", report.MissingTables)
	} else {
		fmt.Printf("✅ All tables exist, %d catalogue entries stored\n", report.Entries)
	}
	fmt.Printf("✅ Transaction capability verified\n")
	fmt.Printf("✅ Simple query completed in %v\n", report.QueryTime)
	if report.Slow() {
		fmt.Println("⚠️  Query took longer than 5 seconds - check network latency")
	}

	fmt.Println("\n=== Database Connectivity Check Complete ===")
}
