// Command migrate moves legacy flat hoardings under their categories and
// backfills booking fields added after launch.
//
//	go run ./cmd/migrate -dry-run
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"hoardify/config"
	"hoardify/database/migrate"
	"hoardify/utils"

	"go.uber.org/zap"
)

func main() {
	dryRun := flag.Bool("dry-run", false, "report what would change without writing")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	logger, err := utils.InitLogger(cfg)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	fb, err := utils.FirebaseInit(ctx, cfg)
	if err != nil {
		logger.Fatal("migrate: failed to initialize firebase", zap.Error(err))
	}
	defer fb.Close()

	m := &migrate.Migrator{Client: fb.Firestore, DryRun: *dryRun, Logger: logger}
	rep, err := m.Run(ctx)
	logger.Info("Migration finished",
		zap.Bool("dryRun", *dryRun),
		zap.Int("hoardingsMoved", rep.HoardingsMoved),
		zap.Int("categoriesCreated", rep.CategoriesCreated),
		zap.Int("bookingsBackfilled", rep.BookingsBackfilled),
		zap.Int("failed", rep.Failed),
	)
	if err != nil {
		logger.Error("Migration aborted", zap.Error(err))
		os.Exit(1)
	}
	if rep.Failed > 0 {
		os.Exit(1)
	}
}
