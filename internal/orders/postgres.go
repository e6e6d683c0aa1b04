package orders

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/example/kpi-dashboard/internal/models"
)

// PostgresStore persists orders across restarts. Schema:
//
//	CREATE TABLE orders (
//	    id         BIGSERIAL PRIMARY KEY,
//	    created_at TIMESTAMPTZ NOT NULL,
//	    amount     DOUBLE PRECISION NOT NULL
//	);
//	CREATE INDEX orders_created_at_idx ON orders (created_at);
type PostgresStore struct {
	DB *pgxpool.Pool
}

func NewPostgresStore(db *pgxpool.Pool) *PostgresStore { return &PostgresStore{DB: db} }

func Connect(ctx context.Context, url string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return pool, nil
}

func (s *PostgresStore) Append(ctx context.Context, orders []models.Order) error {
	if len(orders) == 0 {
		return nil
	}
	b := &pgx.Batch{}
	for _, o := range orders {
		b.Queue(`INSERT INTO orders (created_at, amount) VALUES ($1, $2)`, o.CreatedAt, o.Amount)
	}
	br := s.DB.SendBatch(ctx, b)
	defer br.Close()
	for range orders {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("insert order: %w", err)
		}
	}
	return nil
}

func (s *PostgresStore) Since(ctx context.Context, cutoff time.Time) ([]models.Order, error) {
	rows, err := s.DB.Query(ctx,
		`SELECT id, created_at, amount FROM orders WHERE created_at >= $1 ORDER BY created_at`, cutoff)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]models.Order, 0)
	for rows.Next() {
		var o models.Order
		if err := rows.Scan(&o.ID, &o.CreatedAt, &o.Amount); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

func (s *PostgresStore) Prune(ctx context.Context, cutoff time.Time) (int, error) {
	tag, err := s.DB.Exec(ctx, `DELETE FROM orders WHERE created_at < $1`, cutoff)
	if err != nil {
		return 0, err
	}
	return int(tag.RowsAffected()), nil
}
