package orders

import (
	"context"
	"sync"
	"time"

	"github.com/example/kpi-dashboard/internal/models"
)

// Store is the append-only order log. The simulator is the only writer;
// the aggregator and the API read it.
type Store interface {
	// Append adds orders to the log, assigning ids in place where the
	// backend supports it.
	Append(ctx context.Context, orders []models.Order) error
	// Since returns orders with created_at >= cutoff, ascending.
	Since(ctx context.Context, cutoff time.Time) ([]models.Order, error)
	// Prune drops orders with created_at < cutoff, returning how many
	// were removed. Keeps the log retention-bounded.
	Prune(ctx context.Context, cutoff time.Time) (int, error)
}

// MemoryStore keeps orders in process. Appends arrive in wall-clock order
// so the slice stays chronologically ascending.
type MemoryStore struct {
	mu     sync.Mutex
	orders []models.Order
	nextID int64
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{nextID: 1}
}

func (s *MemoryStore) Append(_ context.Context, orders []models.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range orders {
		orders[i].ID = s.nextID
		s.nextID++
		s.orders = append(s.orders, orders[i])
	}
	return nil
}

func (s *MemoryStore) Since(_ context.Context, cutoff time.Time) ([]models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Orders are ascending; walk back from the tail to find the window start.
	start := len(s.orders)
	for start > 0 && !s.orders[start-1].CreatedAt.Before(cutoff) {
		start--
	}

	out := make([]models.Order, len(s.orders)-start)
	copy(out, s.orders[start:])
	return out, nil
}

func (s *MemoryStore) Prune(_ context.Context, cutoff time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	drop := 0
	for drop < len(s.orders) && s.orders[drop].CreatedAt.Before(cutoff) {
		drop++
	}
	if drop > 0 {
		s.orders = append([]models.Order(nil), s.orders[drop:]...)
	}
	return drop, nil
}
