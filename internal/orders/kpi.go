package orders

import (
	"context"
	"time"

	"github.com/example/kpi-dashboard/internal/models"
)

// Aggregator computes windowed sales KPIs over the order log. An empty
// store is an expected transient state, not an error: it yields a zeroed
// snapshot.
type Aggregator struct {
	store Store
}

func NewAggregator(store Store) *Aggregator { return &Aggregator{store: store} }

// WindowedKPIs sums, counts, and averages order amounts over the trailing
// windowMinutes. Non-positive windows and empty windows both produce the
// zero snapshot; the mean is never a division by zero.
func (a *Aggregator) WindowedKPIs(ctx context.Context, windowMinutes int) (models.KpiSnapshot, error) {
	if windowMinutes <= 0 {
		return models.KpiSnapshot{}, nil
	}
	cutoff := time.Now().UTC().Add(-time.Duration(windowMinutes) * time.Minute)
	rows, err := a.store.Since(ctx, cutoff)
	if err != nil {
		return models.KpiSnapshot{}, err
	}

	var total float64
	for _, o := range rows {
		total += o.Amount
	}

	snap := models.KpiSnapshot{
		TotalSales: roundTo(total, 2),
		Orders:     len(rows),
	}
	if len(rows) > 0 {
		snap.AvgOrderValue = roundTo(total/float64(len(rows)), 2)
	}
	return snap, nil
}

// OrdersInWindow returns (created_at, amount) pairs over the trailing
// windowHours, chronologically ascending, for time-series display.
func (a *Aggregator) OrdersInWindow(ctx context.Context, windowHours int) ([]models.OrderPoint, error) {
	if windowHours <= 0 {
		return []models.OrderPoint{}, nil
	}
	cutoff := time.Now().UTC().Add(-time.Duration(windowHours) * time.Hour)
	rows, err := a.store.Since(ctx, cutoff)
	if err != nil {
		return nil, err
	}

	out := make([]models.OrderPoint, 0, len(rows))
	for _, o := range rows {
		out = append(out, models.OrderPoint{CreatedAt: o.CreatedAt, Amount: o.Amount})
	}
	return out, nil
}
