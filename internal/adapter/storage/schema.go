package storage

import (
	"context"
	"database/sql"
	"fmt"
)

const createCountersTable = `
	CREATE TABLE IF NOT EXISTS counters (
		id VARCHAR(255) NOT NULL PRIMARY KEY,
		value INT NOT NULL DEFAULT 0,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
	)`

// Bootstrap makes the backend ready for the repository: it creates the
// database and the counters table if they are missing, and returns a pool
// scoped to the database for reuse. Safe to run on every start.
func Bootstrap(ctx context.Context, cfg Config) (*sql.DB, error) {
	server, err := Connect(ctx, cfg, "")
	if err != nil {
		return nil, err
	}

	if _, err := server.ExecContext(ctx, "CREATE DATABASE IF NOT EXISTS "+cfg.Name); err != nil {
		server.Close()
		return nil, fmt.Errorf("create database %s: %w", cfg.Name, err)
	}
	server.Close()

	db, err := Connect(ctx, cfg, cfg.Name)
	if err != nil {
		return nil, err
	}

	if err := EnsureSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// EnsureSchema creates the counters table if it does not exist.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, createCountersTable); err != nil {
		return fmt.Errorf("create counters table: %w", err)
	}
	return nil
}
