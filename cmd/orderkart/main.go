package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/orderkart/orderkart/config"
	"github.com/orderkart/orderkart/internal/api"
	"github.com/orderkart/orderkart/internal/app"
	"github.com/orderkart/orderkart/internal/webserver"
)

var (
	configFile = flag.String("c", "orderkart.yml", "config file path")
	syncOnce   = flag.Bool("sync", false, "run one catalog sync and exit")
	showVer    = flag.Bool("v", false, "print version and exit")
)

var version = "dev"

func main() {
	flag.Parse()

	if *showVer {
		fmt.Printf("orderkart %s\n", version)
		return
	}

	cfg := config.LoadConfig(*configFile)
	application := app.NewApplication(cfg)
	if err := application.Init(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "init failed: %v\n", err)
		os.Exit(1)
	}
	defer application.Release()

	if *syncOnce {
		result, err := application.SyncService().Sync(context.Background())
		if err != nil {
			zap.L().Error("sync failed", zap.Error(err))
			os.Exit(1)
		}
		zap.L().Info("sync finished",
			zap.Int("added", result.Stats.Added),
			zap.Int("updated", result.Stats.Updated),
			zap.Int("deleted", result.Stats.Deleted),
			zap.Int("products", len(result.Products)))
		return
	}

	ws := webserver.Init(cfg)
	api.Register(cfg, application.Store(), application.CartService(), application.SyncService())

	go func() {
		if err := ws.Listen(); err != nil {
			zap.L().Fatal("webserver stopped", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan
	zap.L().Info("shutting down")
}
