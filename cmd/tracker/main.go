package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/vshulcz/apmtrack/internal/adapters/persistence/file"
	"github.com/vshulcz/apmtrack/internal/adapters/source/evdev"
	"github.com/vshulcz/apmtrack/internal/config"
	"github.com/vshulcz/apmtrack/internal/services/tracker"
	"github.com/vshulcz/apmtrack/pkg/util"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	util.PrintBuildInfo(buildVersion, buildDate, buildCommit)
	_ = godotenv.Load()

	cfg, err := config.LoadTrackerConfig(os.Args[1:], nil)
	if err != nil {
		log.Fatalf("failed to parse flags: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer logger.Sync()

	release, err := tracker.AcquirePidfile(cfg.PidFile)
	if err != nil {
		log.Fatalf("cannot start: %v", err)
	}
	defer release()

	src := evdev.New(cfg.InputDir, logger)
	store := file.New(cfg.DataFile)
	svc := tracker.New(cfg, src, store, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Printf("tracker started: data=%s input=%s save=%s stats=%s",
		cfg.DataFile, cfg.InputDir, cfg.SaveInterval, cfg.StatsInterval)
	if err := svc.Run(ctx); err != nil {
		release()
		log.Fatal(err)
	}
}
