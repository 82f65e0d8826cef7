package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rl1809/counter-service/internal/core/domain"
	"github.com/rl1809/counter-service/internal/port"
)

type MySQLAdapter struct {
	db *sql.DB
}

func NewMySQLAdapter(db *sql.DB) *MySQLAdapter {
	return &MySQLAdapter{db: db}
}

func (m *MySQLAdapter) Increment(ctx context.Context, id string) (int64, error) {
	var value int64
	err := m.db.QueryRowContext(ctx,
		`SELECT value FROM counters WHERE id = ?`, id).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		// First use: create the row at zero. The upsert keeps concurrent
		// first callers from racing the insert.
		_, err := m.db.ExecContext(ctx, `
			INSERT INTO counters (id, value) VALUES (?, 0)
			ON DUPLICATE KEY UPDATE id = id`, id)
		if err != nil {
			return 0, fmt.Errorf("insert counter: %w", err)
		}
	} else if err != nil {
		return 0, fmt.Errorf("select counter: %w", err)
	}

	// Relative update so concurrent increments never lose each other.
	_, err = m.db.ExecContext(ctx,
		`UPDATE counters SET value = value + 1 WHERE id = ?`, id)
	if err != nil {
		return 0, fmt.Errorf("increment counter: %w", err)
	}

	err = m.db.QueryRowContext(ctx,
		`SELECT value FROM counters WHERE id = ?`, id).Scan(&value)
	if err != nil {
		return 0, fmt.Errorf("reread counter: %w", err)
	}

	return value, nil
}

func (m *MySQLAdapter) Get(ctx context.Context, id string) (*domain.Counter, error) {
	var c domain.Counter
	err := m.db.QueryRowContext(ctx,
		`SELECT id, value, updated_at FROM counters WHERE id = ?`, id,
	).Scan(&c.ID, &c.Value, &c.UpdatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, port.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query counter: %w", err)
	}

	return &c, nil
}
