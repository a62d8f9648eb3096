package main

import (
	"context"
	"fmt"

	"osurebuild/internal/config"
	"osurebuild/internal/dataset"
	"osurebuild/internal/dataset/parquetfile"
	"osurebuild/internal/dataset/postgres"
	"osurebuild/internal/dataset/sqlite"
)

func openSource(ctx context.Context, cfg *config.ProjectConfig) (dataset.Source, error) {
	switch cfg.Dataset.Driver {
	case "parquet":
		return parquetfile.New(cfg.Dataset.Path), nil
	case "sqlite":
		return sqlite.New(ctx, cfg.Dataset.DSN)
	case "postgres":
		return postgres.New(ctx, cfg.Dataset.DSN)
	default:
		return nil, fmt.Errorf("unknown dataset driver: %s", cfg.Dataset.Driver)
	}
}
