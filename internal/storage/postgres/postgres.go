package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/gocraft/dbr/v2"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

type Store struct {
	conn   *dbr.Connection
	sess   *dbr.Session
	logger *zap.Logger
}

func New(dsn string, logger *zap.Logger) (*Store, error) {
	conn, err := dbr.Open("postgres", dsn, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// set up connection pool
	conn.SetMaxOpenConns(25)
	conn.SetMaxIdleConns(5)
	conn.SetConnMaxLifetime(5 * time.Minute)

	// check connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := conn.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	sess := conn.NewSession(nil)

	logger.Info("successfully connected to PostgreSQL")

	return &Store{
		conn:   conn,
		sess:   sess,
		logger: logger,
	}, nil
}

func (s *Store) Close() error {
	return s.conn.Close()
}

func (s *Store) Ping(ctx context.Context) error {
	return s.conn.PingContext(ctx)
}

// Migrate creates the schema if it does not exist yet. Links carry a unique
// index: it is the dedup key that makes job saves idempotent across cycles.
func (s *Store) Migrate(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS jobs (
			id BIGSERIAL PRIMARY KEY,
			title TEXT NOT NULL,
			company TEXT NOT NULL DEFAULT 'Not specified',
			link TEXT NOT NULL UNIQUE,
			category TEXT NOT NULL DEFAULT 'General',
			location TEXT NOT NULL DEFAULT 'Philippines',
			salary TEXT,
			source TEXT NOT NULL,
			date_found TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_jobs_category ON jobs (category)`,
		`CREATE INDEX IF NOT EXISTS idx_jobs_date_found ON jobs (date_found DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_jobs_source ON jobs (source)`,
		`CREATE TABLE IF NOT EXISTS users (
			user_id BIGINT PRIMARY KEY,
			name TEXT NOT NULL DEFAULT '',
			subscribed BOOLEAN NOT NULL DEFAULT TRUE,
			filters TEXT NOT NULL DEFAULT 'All',
			joined_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_users_subscribed ON users (subscribed)`,
	}

	for _, stmt := range statements {
		if _, err := s.sess.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	s.logger.Info("database schema ready")
	return nil
}
