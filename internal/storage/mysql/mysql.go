package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"

	"dwh-dashboard/internal/source"
	"dwh-dashboard/internal/storage"
	"dwh-dashboard/internal/table"
)

type Storage struct {
	db *sql.DB
}

func New(ctx context.Context, dsn string) (*Storage, error) {
	const op = "storage.mysql.New"

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to open db: %w", op, err)
	}

	db.SetMaxOpenConns(10)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: ping: %w", op, err)
	}

	return &Storage{db: db}, nil
}

func (s *Storage) Close() error {
	return s.db.Close()
}

// Fetch reads every row of the view backing d. Column names become row keys.
func (s *Storage) Fetch(ctx context.Context, d source.Domain) ([]table.Row, error) {
	const op = "storage.mysql.Fetch"

	view, err := storage.ViewFor(d)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rows, err := s.db.QueryContext(ctx, view.Query())
	if err != nil {
		return nil, fmt.Errorf("%s: query %s: %w", op, view.Name, err)
	}
	defer rows.Close()

	out, err := scanRows(rows)
	if err != nil {
		return nil, fmt.Errorf("%s: %s: %w", op, view.Name, err)
	}

	return out, nil
}

func scanRows(rows *sql.Rows) ([]table.Row, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("columns: %w", err)
	}

	out := []table.Row{}
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}

		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}

		row := make(table.Row, len(cols))
		for i, col := range cols {
			row[col] = value(values[i])
		}
		out = append(out, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate: %w", err)
	}

	return out, nil
}

// value turns driver bytes (DECIMAL, VARCHAR) into strings; the report
// normalizers parse numeric text.
func value(v any) any {
	if b, ok := v.([]byte); ok {
		return string(b)
	}
	return v
}
