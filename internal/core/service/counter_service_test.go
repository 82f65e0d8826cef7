package service

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rl1809/counter-service/internal/core/domain"
	"github.com/rl1809/counter-service/internal/port"
)

// Mock CounterRepository
type mockCounterRepo struct {
	mu      sync.Mutex
	values  map[string]int64
	failure error
}

func newMockCounterRepo() *mockCounterRepo {
	return &mockCounterRepo{values: make(map[string]int64)}
}

func (m *mockCounterRepo) Increment(ctx context.Context, id string) (int64, error) {
	if m.failure != nil {
		return 0, m.failure
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[id]++
	return m.values[id], nil
}

func (m *mockCounterRepo) Get(ctx context.Context, id string) (*domain.Counter, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	value, ok := m.values[id]
	if !ok {
		return nil, port.ErrNotFound
	}
	return &domain.Counter{ID: id, Value: value, UpdatedAt: time.Now()}, nil
}

func TestIncrement_FirstUseReturnsOne(t *testing.T) {
	svc := NewCounterService(newMockCounterRepo())

	value, err := svc.Increment(context.Background(), domain.WellKnownID)
	if err != nil {
		t.Fatalf("Increment failed: %v", err)
	}
	if value != 1 {
		t.Errorf("expected 1 on a fresh counter, got %d", value)
	}
}

func TestIncrement_Sequential(t *testing.T) {
	svc := NewCounterService(newMockCounterRepo())

	for want := int64(1); want <= 3; want++ {
		value, err := svc.Increment(context.Background(), domain.WellKnownID)
		if err != nil {
			t.Fatalf("Increment failed: %v", err)
		}
		if value != want {
			t.Errorf("expected %d, got %d", want, value)
		}
	}
}

func TestIncrement_Concurrent(t *testing.T) {
	totalRequests := 50

	repo := newMockCounterRepo()
	svc := NewCounterService(repo)

	var errCount atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < totalRequests; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.Increment(context.Background(), domain.WellKnownID); err != nil {
				errCount.Add(1)
			}
		}()
	}

	wg.Wait()

	if errCount.Load() != 0 {
		t.Fatalf("expected no errors, got %d", errCount.Load())
	}

	final, err := svc.Read(context.Background(), domain.WellKnownID)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if final != int64(totalRequests) {
		t.Errorf("expected final value %d, got %d", totalRequests, final)
	}
}

func TestIncrement_NotConnected(t *testing.T) {
	svc := NewCounterService(nil)

	_, err := svc.Increment(context.Background(), domain.WellKnownID)
	if !errors.Is(err, ErrNotConnected) {
		t.Errorf("expected ErrNotConnected, got: %v", err)
	}
}

func TestIncrement_RepositoryError(t *testing.T) {
	repo := newMockCounterRepo()
	repo.failure = errors.New("query failed")
	svc := NewCounterService(repo)

	_, err := svc.Increment(context.Background(), domain.WellKnownID)
	if !errors.Is(err, repo.failure) {
		t.Errorf("expected wrapped repository error, got: %v", err)
	}
}

func TestRead_NotConnected(t *testing.T) {
	svc := NewCounterService(nil)

	_, err := svc.Read(context.Background(), domain.WellKnownID)
	if !errors.Is(err, ErrNotConnected) {
		t.Errorf("expected ErrNotConnected, got: %v", err)
	}
}

func TestRead_MissingCounter(t *testing.T) {
	svc := NewCounterService(newMockCounterRepo())

	_, err := svc.Read(context.Background(), "never-incremented")
	if !errors.Is(err, port.ErrNotFound) {
		t.Errorf("expected port.ErrNotFound, got: %v", err)
	}
}
