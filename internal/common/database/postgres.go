// internal/common/database/postgres.go
package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"intent-workers/internal/common/config"

	_ "github.com/lib/pq"
)

// intentAuditDDL creates the append-only table written by the audit store.
const intentAuditDDL = `CREATE TABLE IF NOT EXISTS intent_audit (
	id               BIGSERIAL PRIMARY KEY,
	request_id       TEXT NOT NULL,
	input            TEXT NOT NULL,
	intent           TEXT NOT NULL,
	detection_method TEXT NOT NULL,
	confidence       DOUBLE PRECISION NOT NULL,
	action           TEXT NOT NULL,
	status           TEXT NOT NULL DEFAULT '',
	error_type       TEXT NOT NULL DEFAULT '',
	created_at       TIMESTAMPTZ NOT NULL
)`

// PostgresClient wraps the SQL database connection
type PostgresClient struct {
	DB *sql.DB
}

// NewPostgres creates a new PostgreSQL client
func NewPostgres(cfg config.PostgresConfig) (*PostgresClient, error) {
	db, err := sql.Open("postgres", cfg.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxConnections)
	db.SetMaxIdleConns(cfg.MaxIdle)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(5 * time.Minute)

	return &PostgresClient{DB: db}, nil
}

// Ping tests the database connection
func (c *PostgresClient) Ping(ctx context.Context) error {
	return c.DB.PingContext(ctx)
}

// Close closes the database connection
func (c *PostgresClient) Close() error {
	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}

// Migrate creates the tables this service writes to.
func (c *PostgresClient) Migrate(ctx context.Context) error {
	if _, err := c.DB.ExecContext(ctx, intentAuditDDL); err != nil {
		return fmt.Errorf("create intent_audit: %w", err)
	}
	return nil
}
