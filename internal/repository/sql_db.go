package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"CryptoIntel/internal/domain/models"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	_ "modernc.org/sqlite"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

func init() {
	sqlx.BindDriver(DriverSQLite, sqlx.QUESTION)
}

// sqlSchema is portable between Postgres and SQLite.
var sqlSchema = []string{
	`CREATE TABLE IF NOT EXISTS price_alerts (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		token_symbol TEXT NOT NULL,
		alert_type TEXT NOT NULL CHECK (alert_type IN ('price', 'volume', 'percentage')),
		threshold_value DOUBLE PRECISION NOT NULL,
		direction TEXT NOT NULL CHECK (direction IN ('above', 'below')),
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_price_alerts_user ON price_alerts (user_id, created_at)`,
	`CREATE TABLE IF NOT EXISTS portfolio_positions (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		token_symbol TEXT NOT NULL,
		token_address TEXT,
		amount DOUBLE PRECISION NOT NULL,
		avg_price DOUBLE PRECISION NOT NULL,
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_portfolio_positions_user ON portfolio_positions (user_id, created_at)`,
}

// OpenSQL opens and pings a Postgres or SQLite database.
func OpenSQL(ctx context.Context, driver, dsn string) (*sqlx.DB, error) {
	switch driver {
	case DriverPostgres, DriverSQLite:
	default:
		return nil, fmt.Errorf("unsupported sql driver %q", driver)
	}
	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}
	if driver == DriverSQLite {
		// one writer at a time
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(5 * time.Minute)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s: %w", driver, err)
	}
	return db, nil
}

// Migrate creates the alert and portfolio tables when they do not exist.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	for _, stmt := range sqlSchema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

// sqlError maps constraint violations to invalid input and wraps the rest.
func sqlError(action string, err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "23505", "23514", "22P02":
			return models.InvalidInput(fmt.Sprintf("Database %s failed: %s", action, pqErr.Message))
		}
	}
	return fmt.Errorf("Database %s failed: %w", action, err)
}
