package infrastructure

import (
	"context"

	"github.com/jackc/pgx/v4/pgxpool"
)

func NewResumePool(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.Connect(ctx, dsn)
	if err != nil {
		return nil, err
	}
	return pool, nil
}
