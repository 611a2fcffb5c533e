package main

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"os/signal"
	"syscall"

	"sysinfo-server/internal/logger"
	"sysinfo-server/internal/sysinfo"
	"sysinfo-server/pkg/config"
	"sysinfo-server/pkg/types"
)

// Collects a single snapshot and prints the same document /system-info would serve.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLog := logger.New(cfg.Server)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	collector := sysinfo.NewFromConfig(cfg.Collector, appLog)

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")

	snap, err := collector.Collect(ctx)
	if err != nil {
		_ = enc.Encode(types.ErrorDocument{Error: err.Error()})
		os.Exit(1)
	}

	if err := enc.Encode(snap); err != nil {
		log.Fatalf("Failed to encode snapshot: %v", err)
	}
}
