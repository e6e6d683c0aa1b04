package refresh

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/example/kpi-dashboard/internal/models"
	"github.com/example/kpi-dashboard/internal/orders"
)

// kpiWindowMinutes is the snapshot window published on every tick, matching
// the dashboard's headline "last hour" panel.
const kpiWindowMinutes = 60

// SnapshotPublisher streams the per-tick snapshot somewhere downstream.
type SnapshotPublisher interface {
	PublishSnapshot(ctx context.Context, snap models.KpiSnapshot) error
}

// Loop drives the refresh cycle: fabricate orders, prune expired ones,
// recompute the snapshot, optionally publish it. Ticks run sequentially on
// one goroutine, so they never overlap.
type Loop struct {
	sim       *orders.Simulator
	agg       *orders.Aggregator
	store     orders.Store
	pub       SnapshotPublisher // nil disables publishing
	interval  time.Duration
	perTick   int
	retention time.Duration
	logger    *zap.Logger
}

func New(sim *orders.Simulator, agg *orders.Aggregator, store orders.Store,
	pub SnapshotPublisher, interval time.Duration, perTick int, retention time.Duration,
	logger *zap.Logger) *Loop {
	return &Loop{
		sim:       sim,
		agg:       agg,
		store:     store,
		pub:       pub,
		interval:  interval,
		perTick:   perTick,
		retention: retention,
		logger:    logger,
	}
}

func (l *Loop) Run(ctx context.Context) {
	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			l.logger.Info("refresh loop stopped")
			return
		case <-ticker.C:
			l.Tick(ctx)
		}
	}
}

// Tick performs one refresh cycle. A failing step logs and ends the tick;
// the next tick starts clean.
func (l *Loop) Tick(ctx context.Context) {
	if _, err := l.sim.Simulate(ctx, l.perTick); err != nil {
		l.logger.Error("simulate orders", zap.Error(err))
		return
	}

	if n, err := l.store.Prune(ctx, time.Now().UTC().Add(-l.retention)); err != nil {
		l.logger.Error("prune orders", zap.Error(err))
	} else if n > 0 {
		l.logger.Debug("pruned orders", zap.Int("count", n))
	}

	snap, err := l.agg.WindowedKPIs(ctx, kpiWindowMinutes)
	if err != nil {
		l.logger.Error("windowed kpis", zap.Error(err))
		return
	}

	if l.pub != nil {
		if err := l.pub.PublishSnapshot(ctx, snap); err != nil {
			l.logger.Error("publish snapshot", zap.Error(err))
		}
	}

	l.logger.Debug("refresh tick",
		zap.Float64("total_sales", snap.TotalSales),
		zap.Int("orders", snap.Orders),
	)
}
