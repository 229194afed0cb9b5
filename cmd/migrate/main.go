package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"cc-catalog/logging"
	"cc-catalog/storage"
)

func main() {
	var (
		dataPath = flag.String("data", "./data", "Path to database directory")
		command  = flag.String("cmd", "up", "Migration command: up, down, status, version, reset, purge")
	)
	flag.Parse()

	ctx := context.Background()
	log := logging.New("cc-catalog-migrate", false)

	sqliteStorage := storage.NewSQLiteStorage(*dataPath, log)
	if err := sqliteStorage.Initialize(ctx); err != nil {
		log.WithError(err).Fatal("failed to initialize storage")
	}
	defer sqliteStorage.Close()

	switch *command {
	case "up":
		if err := sqliteStorage.RunMigrations(ctx); err != nil {
			log.WithError(err).Fatal("failed to run migrations")
		}
		fmt.Println("Migrations completed successfully")

	case "down":
		if err := sqliteStorage.RollbackMigration(ctx); err != nil {
			log.WithError(err).Fatal("failed to rollback migration")
		}
		fmt.Println("Migration rolled back successfully")

	case "status":
		migrationManager := sqliteStorage.GetMigrationManager()
		if err := migrationManager.Initialize(); err != nil {
			log.WithError(err).Fatal("failed to initialize migration manager")
		}
		if err := migrationManager.Status(ctx); err != nil {
			log.WithError(err).Fatal("failed to get migration status")
		}

	case "version":
		version, err := sqliteStorage.GetDatabaseVersion(ctx)
		if err != nil {
			log.WithError(err).Fatal("failed to get database version")
		}
		fmt.Printf("Database version: %d\n", version)

	case "reset":
		if err := sqliteStorage.ResetDatabase(ctx); err != nil {
			log.WithError(err).Fatal("failed to reset database")
		}
		fmt.Println("Database reset completed successfully")

	case "purge":
		n, err := sqliteStorage.PurgeExpired(ctx)
		if err != nil {
			log.WithError(err).Fatal("failed to purge cache")
		}
		fmt.Printf("Purged %d expired entries\n", n)

	default:
		fmt.Printf("Unknown command: %s\n", *command)
		fmt.Println("Available commands: up, down, status, version, reset, purge")
		os.Exit(1)
	}
}
