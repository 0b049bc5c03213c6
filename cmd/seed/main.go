package main

import (
	"context"
	"fmt"
	"os"

	"github.com/agriquote/agriquote-backend/internal/platform"
	"github.com/agriquote/agriquote-backend/internal/seed"
	"github.com/agriquote/agriquote-backend/pkg/config"
	"github.com/agriquote/agriquote-backend/pkg/logger"
	"github.com/joho/godotenv"
)

func main() {
	ctx := context.Background()
	logg := logger.New(logger.Options{ServiceName: "seed"})

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logg.Error(ctx, "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "seed",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
		Format:      cfg.App.LogFormat,
	})
	ctx = logg.WithField(ctx, "env", cfg.App.Env)

	plat, err := platform.Open(ctx, cfg, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap storage", err)
		os.Exit(1)
	}
	defer func() {
		if err := plat.Close(); err != nil {
			logg.Error(ctx, "error closing storage", err)
		}
	}()

	syncer, err := seed.NewSyncer(plat.Users, plat.Tractors, logg)
	if err != nil {
		logg.Error(ctx, "failed to create seed syncer", err)
		os.Exit(1)
	}

	res, err := syncer.Sync(ctx)
	if err != nil {
		logg.Error(ctx, "seed sync failed", err)
		os.Exit(1)
	}

	fmt.Printf("users inserted=%d merged=%d skipped=%d, tractors inserted=%d\n",
		res.UsersInserted, res.UsersMerged, res.UsersSkipped, res.TractorsInserted)
}
