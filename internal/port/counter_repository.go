package port

import (
	"context"
	"errors"

	"github.com/rl1809/counter-service/internal/core/domain"
)

// ErrNotFound is returned by Get when no row exists for the id yet.
// Increment never returns it: it creates the row on first use.
var ErrNotFound = errors.New("counter not found")

type CounterRepository interface {
	// Increment applies a single relative increment and returns the value
	// after it. The row is created lazily at zero on first use.
	Increment(ctx context.Context, id string) (int64, error)

	// Get reads the counter without mutating it.
	Get(ctx context.Context, id string) (*domain.Counter, error)
}
