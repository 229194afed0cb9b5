package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"
)

const dbFileName = "cc_catalog_cache.db"

// SQLiteStorage is the process-wide cache backing store. Values are opaque
// byte slices with an absolute expiry; readers never see expired rows.
type SQLiteStorage struct {
	db       *sql.DB
	dbPath   string
	dataPath string
	log      *logrus.Entry
	now      func() time.Time
}

type StorageInterface interface {
	Cache
	Initialize(ctx context.Context) error
	Delete(ctx context.Context, key string) error
	PurgeExpired(ctx context.Context) (int64, error)
	GetStats(ctx context.Context) (map[string]int64, error)
	Close() error
}

func NewSQLiteStorage(dataPath string, log *logrus.Entry) *SQLiteStorage {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &SQLiteStorage{
		dbPath:   filepath.Join(dataPath, dbFileName),
		dataPath: dataPath,
		log:      log.WithField("component", "storage"),
		now:      time.Now,
	}
}

func (s *SQLiteStorage) Initialize(ctx context.Context) error {
	if err := os.MkdirAll(s.dataPath, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %v", err)
	}

	db, err := sql.Open("sqlite3", s.dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %v", err)
	}
	// one writer at a time; sqlite serializes anyway
	db.SetMaxOpenConns(1)
	s.db = db

	if err := s.RunMigrations(ctx); err != nil {
		return err
	}

	s.log.WithField("path", s.dbPath).Debug("cache database initialized")
	return nil
}

// Get returns the value stored under key if it has not expired.
func (s *SQLiteStorage) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM cache_entries WHERE cache_key = ? AND expires_at > ?`,
		key, s.now().UnixNano()).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read cache entry: %v", err)
	}
	return value, true, nil
}

// Set stores value under key, replacing any previous entry.
func (s *SQLiteStorage) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if value == nil {
		value = []byte{}
	}
	query := `
	INSERT INTO cache_entries (cache_key, value, expires_at, created_at, updated_at)
	VALUES (?, ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
	ON CONFLICT(cache_key) DO UPDATE SET
		value = excluded.value,
		expires_at = excluded.expires_at,
		updated_at = CURRENT_TIMESTAMP
	`
	if _, err := s.db.ExecContext(ctx, query, key, value, s.now().Add(ttl).UnixNano()); err != nil {
		return fmt.Errorf("failed to store cache entry: %v", err)
	}
	return nil
}

func (s *SQLiteStorage) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM cache_entries WHERE cache_key = ?`, key); err != nil {
		return fmt.Errorf("failed to delete cache entry: %v", err)
	}
	return nil
}

// PurgeExpired removes every expired entry and reports how many were dropped.
func (s *SQLiteStorage) PurgeExpired(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM cache_entries WHERE expires_at <= ?`, s.now().UnixNano())
	if err != nil {
		return 0, fmt.Errorf("failed to purge expired entries: %v", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count purged entries: %v", err)
	}
	return n, nil
}

func (s *SQLiteStorage) GetStats(ctx context.Context) (map[string]int64, error) {
	stats := make(map[string]int64)
	now := s.now().UnixNano()

	var total, expired, size int64
	err := s.db.QueryRowContext(ctx, `
	SELECT COUNT(*),
		COALESCE(SUM(CASE WHEN expires_at <= ? THEN 1 ELSE 0 END), 0),
		COALESCE(SUM(LENGTH(value)), 0)
	FROM cache_entries`, now).Scan(&total, &expired, &size)
	if err != nil {
		return nil, fmt.Errorf("failed to get cache stats: %v", err)
	}
	stats["total"] = total
	stats["expired"] = expired
	stats["bytes"] = size
	return stats, nil
}

func (s *SQLiteStorage) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLiteStorage) GetDB() (*sql.DB, error) {
	if s.db == nil {
		db, err := sql.Open("sqlite3", s.dbPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open database: %v", err)
		}
		s.db = db
	}
	return s.db, nil
}

// Migration management methods
func (s *SQLiteStorage) GetMigrationManager() *MigrationManager {
	return NewMigrationManager(s.db, s.log)
}

func (s *SQLiteStorage) GetDatabaseVersion(ctx context.Context) (int64, error) {
	migrationManager := s.GetMigrationManager()
	if err := migrationManager.Initialize(); err != nil {
		return 0, err
	}
	return migrationManager.Version(ctx)
}

func (s *SQLiteStorage) RunMigrations(ctx context.Context) error {
	migrationManager := s.GetMigrationManager()
	if err := migrationManager.Initialize(); err != nil {
		return fmt.Errorf("failed to initialize migrations: %v", err)
	}
	return migrationManager.Up(ctx)
}

func (s *SQLiteStorage) RollbackMigration(ctx context.Context) error {
	migrationManager := s.GetMigrationManager()
	if err := migrationManager.Initialize(); err != nil {
		return err
	}
	return migrationManager.Down(ctx)
}

func (s *SQLiteStorage) ResetDatabase(ctx context.Context) error {
	migrationManager := s.GetMigrationManager()
	if err := migrationManager.Initialize(); err != nil {
		return err
	}
	return migrationManager.Reset(ctx)
}
