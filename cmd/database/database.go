package database

import (
	"context"
	"fmt"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/muhammadheryan/property-listing/cmd/config"
)

// Portable across MySQL and Postgres.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
	id VARCHAR(36) PRIMARY KEY,
	name VARCHAR(255) NOT NULL,
	email VARCHAR(255) NOT NULL UNIQUE,
	password_hash VARCHAR(255) NOT NULL,
	agency VARCHAR(255) NOT NULL DEFAULT '',
	contact VARCHAR(255) NOT NULL DEFAULT '',
	created_at TIMESTAMP NOT NULL
)`,
	`CREATE TABLE IF NOT EXISTS properties (
	id VARCHAR(36) PRIMARY KEY,
	title VARCHAR(255) NOT NULL,
	price DOUBLE PRECISION NOT NULL,
	type VARCHAR(100) NOT NULL,
	location VARCHAR(255) NOT NULL,
	address TEXT NOT NULL,
	description TEXT NOT NULL,
	surface DOUBLE PRECISION NOT NULL,
	bedrooms INT NOT NULL,
	bathrooms INT NOT NULL,
	equipment TEXT NOT NULL,
	images TEXT NOT NULL,
	status VARCHAR(32) NOT NULL,
	owner_id VARCHAR(36) NULL,
	created_at TIMESTAMP NOT NULL
)`,
}

// Connect opens the SQL pool for DB_DRIVER mysql or postgres and applies the schema.
func Connect(ctx context.Context, cfg *config.Config) (*sqlx.DB, error) {
	db, err := sqlx.ConnectContext(ctx, cfg.Database.Driver, cfg.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", cfg.Database.Driver, err)
	}

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	if err := Migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func Migrate(ctx context.Context, db *sqlx.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
