package db

import (
	"context"
	"fmt"
)

type Config struct {
	Driver   string // postgres | mysql | sqlite
	DSN      string
	MaxConns int
}

// Open builds the Executor selected by cfg.Driver.
func Open(ctx context.Context, cfg Config) (Executor, error) {
	switch cfg.Driver {
	case "", "postgres":
		pool, err := ConnectPostgres(ctx, cfg.DSN, int32(cfg.MaxConns))
		if err != nil {
			return nil, err
		}
		return NewPgxExecutor(pool), nil
	case "mysql", "sqlite":
		return OpenSQL(cfg.Driver, cfg.DSN, cfg.MaxConns)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.Driver)
	}
}
