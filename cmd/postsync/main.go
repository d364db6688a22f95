package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"postsync/pkg/config"
	"postsync/pkg/handlers"
	"postsync/pkg/remote"
	"postsync/pkg/store"
	"postsync/pkg/transport"
)

func main() {
	configPath := os.Getenv("POSTSYNC_CONFIG")
	if configPath == "" {
		configPath = "postsync.toml"
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	zapLogger, err := zap.NewProduction()
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	defer func() {
		err := zapLogger.Sync()
		if err != nil {
			fmt.Println(err)
		}
	}()
	logger := zapLogger.Sugar()

	registry := prometheus.NewRegistry()
	st := store.New(nil)
	client := transport.NewClient(cfg.HTTPTimeout(), uint64(cfg.RetryMax))
	controller := remote.New(st, client, cfg.ResourceURL, logger, nil).
		WithMetrics(remote.NewMetrics(registry))

	postHandler := handlers.PostHandler{
		Store:  st,
		Remote: controller,
		ByUser: store.NewByUserSelector(st),
		Logger: logger,
	}
	router := handlers.GenerateRoutes(postHandler, registry)
	handler := handlers.PostProcess(router, logger)

	// Initial load; a failure lands in status/error and the UI can refresh.
	go func() {
		if err := controller.FetchAll(context.Background()); err != nil {
			logger.Infow("initial fetch failed", "error", err.Error())
		}
	}()

	logger.Infow("starting server",
		"type", "START",
		"addr", cfg.Addr,
	)
	err = http.ListenAndServe(cfg.Addr, handler)
	if err != nil {
		fmt.Println(err)
	}
}
