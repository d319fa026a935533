package postgres

import (
	"context"
	"fmt"
	"math/big"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"dwh-dashboard/internal/source"
	"dwh-dashboard/internal/storage"
	"dwh-dashboard/internal/table"
)

// Querier is the part of *pgxpool.Pool the row source needs.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

type Storage struct {
	db Querier
}

// NewPool opens and pings a connection pool.
func NewPool(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	const op = "storage.postgres.NewPool"

	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("%s: parse config: %w", op, err)
	}
	cfg.MaxConns = 10

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: connect: %w", op, err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("%s: ping: %w", op, err)
	}

	return pool, nil
}

func New(db Querier) *Storage {
	return &Storage{db: db}
}

// Fetch reads every row of the view backing d.
func (s *Storage) Fetch(ctx context.Context, d source.Domain) ([]table.Row, error) {
	const op = "storage.postgres.Fetch"

	view, err := storage.ViewFor(d)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rows, err := s.db.Query(ctx, view.Query())
	if err != nil {
		return nil, fmt.Errorf("%s: query %s: %w", op, view.Name, err)
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()
	out := []table.Row{}
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, fmt.Errorf("%s: %s: values: %w", op, view.Name, err)
		}

		row := make(table.Row, len(fields))
		for i, f := range fields {
			if i < len(values) {
				row[f.Name] = value(values[i])
			}
		}
		out = append(out, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %s: iterate: %w", op, view.Name, err)
	}

	return out, nil
}

// value unwraps pgx numeric types into float64 so rows encode as JSON numbers.
func value(v any) any {
	switch n := v.(type) {
	case pgtype.Numeric:
		if !n.Valid || n.NaN {
			return nil
		}
		f, err := n.Float64Value()
		if err != nil || !f.Valid {
			return nil
		}
		return f.Float64
	case *big.Int:
		f, _ := new(big.Float).SetInt(n).Float64()
		return f
	default:
		return v
	}
}
