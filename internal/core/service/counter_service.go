package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rl1809/counter-service/internal/port"
)

var ErrNotConnected = errors.New("database not connected")

type CounterService struct {
	repo port.CounterRepository
}

// NewCounterService wires the service to its repository. A nil repository
// marks the service as not yet connected: Increment and Read fail with
// ErrNotConnected until the service is constructed with a live one.
func NewCounterService(repo port.CounterRepository) *CounterService {
	return &CounterService{repo: repo}
}

// Increment advances the named counter by one and returns the value after
// this call's increment was applied.
func (s *CounterService) Increment(ctx context.Context, id string) (int64, error) {
	if s.repo == nil {
		return 0, ErrNotConnected
	}

	value, err := s.repo.Increment(ctx, id)
	if err != nil {
		return 0, fmt.Errorf("increment %s: %w", id, err)
	}

	return value, nil
}

// Read returns the current value without mutating it. Counters that have
// never been incremented report port.ErrNotFound.
func (s *CounterService) Read(ctx context.Context, id string) (int64, error) {
	if s.repo == nil {
		return 0, ErrNotConnected
	}

	counter, err := s.repo.Get(ctx, id)
	if err != nil {
		return 0, fmt.Errorf("read %s: %w", id, err)
	}

	return counter.Value, nil
}
