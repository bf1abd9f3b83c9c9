// Package clickhouse archives accepted ledger blocks to ClickHouse.
package clickhouse

import (
	"context"
	"errors"
	"fmt"

	"github.com/ClickHouse/clickhouse-go/v2"
)

type Repository struct {
	conn    Conn
	metrics Metrics
}

func NewRepository(dsn string, metrics Metrics) (*Repository, error) {
	if dsn == "" {
		return nil, errors.New("clickhouse dsn is required")
	}

	options, err := clickhouse.ParseDSN(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse clickhouse dsn: %w", err)
	}

	conn, err := clickhouse.Open(options)
	if err != nil {
		return nil, fmt.Errorf("open clickhouse connection: %w", err)
	}

	return &Repository{conn: driverConn{conn: conn}, metrics: metrics}, nil
}

// Close releases the underlying connection.
func (r *Repository) Close() error {
	return r.conn.Close()
}

type driverConn struct {
	conn clickhouse.Conn
}

func (c driverConn) PrepareBatch(ctx context.Context, query string) (Batch, error) {
	batch, err := c.conn.PrepareBatch(ctx, query)
	if err != nil {
		return nil, err
	}
	return batch, nil
}

func (c driverConn) Query(ctx context.Context, query string, args ...any) (Rows, error) {
	rows, err := c.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (c driverConn) QueryRow(ctx context.Context, query string, args ...any) Row {
	return c.conn.QueryRow(ctx, query, args...)
}

func (c driverConn) Close() error {
	return c.conn.Close()
}
