package skim_db

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"skim/config"
	"skim/domain"
)

// DBTX is the subset of pgxpool.Pool the drivers use. Tests substitute a
// pgxmock pool.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type SkimDBRepository struct {
	db DBTX
}

func NewSkimDBRepository(db DBTX) *SkimDBRepository {
	return &SkimDBRepository{db: db}
}

// InitDBConnection opens the pgx connection pool for the configured database.
func InitDBConnection(ctx context.Context, cfg config.DatabaseConfig) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, err
	}
	poolConfig.MaxConns = int32(cfg.MaxConnections)
	poolConfig.ConnConfig.ConnectTimeout = cfg.ConnectionTimeout

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return pool, nil
}

// uniqueViolation is the Postgres error code for a unique constraint breach.
const uniqueViolation = "23505"

// classifyStorageError maps a pgx error onto the storage error taxonomy.
// Unique-constraint violations become conflicts, which callers treat as an
// expected race outcome; everything else means storage is unavailable.
func classifyStorageError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return &domain.StorageError{Kind: domain.StorageConflict, Cause: err}
	}
	return &domain.StorageError{Kind: domain.StorageUnavailable, Cause: err}
}
