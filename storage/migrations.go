package storage

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
	"github.com/sirupsen/logrus"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

const migrationsDir = "migrations"

// MigrationManager applies the embedded cache schema migrations.
type MigrationManager struct {
	db  *sql.DB
	log *logrus.Entry
}

func NewMigrationManager(db *sql.DB, log *logrus.Entry) *MigrationManager {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &MigrationManager{db: db, log: log}
}

func (m *MigrationManager) Initialize() error {
	goose.SetBaseFS(embedMigrations)
	goose.SetLogger(m.log)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %v", err)
	}
	return nil
}

func (m *MigrationManager) Up(ctx context.Context) error {
	if err := goose.UpContext(ctx, m.db, migrationsDir); err != nil {
		return fmt.Errorf("failed to run migrations: %v", err)
	}
	return nil
}

func (m *MigrationManager) Down(ctx context.Context) error {
	if err := goose.DownContext(ctx, m.db, migrationsDir); err != nil {
		return fmt.Errorf("failed to rollback migration: %v", err)
	}
	return nil
}

func (m *MigrationManager) Status(ctx context.Context) error {
	if err := goose.StatusContext(ctx, m.db, migrationsDir); err != nil {
		return fmt.Errorf("failed to get migration status: %v", err)
	}
	return nil
}

func (m *MigrationManager) Version(ctx context.Context) (int64, error) {
	version, err := goose.GetDBVersionContext(ctx, m.db)
	if err != nil {
		return 0, fmt.Errorf("failed to get database version: %v", err)
	}
	return version, nil
}

func (m *MigrationManager) Reset(ctx context.Context) error {
	if err := goose.ResetContext(ctx, m.db, migrationsDir); err != nil {
		return fmt.Errorf("failed to reset database: %v", err)
	}
	return nil
}
