package orders

import (
	"context"
	"math"
	"math/rand"
	"time"

	"github.com/example/kpi-dashboard/internal/models"
)

// Plausible range for a synthetic order amount, in dollars.
const (
	MinAmount = 5.0
	MaxAmount = 500.0
)

// Simulator fabricates order rows when no real source exists. Amounts are
// uniform within [MinAmount, MaxAmount], created_at is the current time.
type Simulator struct {
	store Store
	rng   *rand.Rand
}

func NewSimulator(store Store) *Simulator {
	return &Simulator{
		store: store,
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Simulate appends exactly n orders. n <= 0 is a no-op.
func (s *Simulator) Simulate(ctx context.Context, n int) ([]models.Order, error) {
	if n <= 0 {
		return nil, nil
	}
	now := time.Now().UTC()
	out := make([]models.Order, 0, n)
	for i := 0; i < n; i++ {
		amt := roundTo(MinAmount+s.rng.Float64()*(MaxAmount-MinAmount), 2)
		out = append(out, models.Order{CreatedAt: now, Amount: amt})
	}
	if err := s.store.Append(ctx, out); err != nil {
		return nil, err
	}
	return out, nil
}

func roundTo(x float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(x*scale) / scale
}
