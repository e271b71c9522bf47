package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cpuscout/app/api"
	"cpuscout/app/cfg"
	"cpuscout/app/dataset"
	"cpuscout/app/history"
	"cpuscout/app/metrics"
	"cpuscout/app/vendors"
)

func main() {
	appCfg, err := cfg.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if appCfg == nil {
		// Help was shown, exit gracefully
		return
	}

	logLevel := slog.LevelInfo
	if appCfg.Debug {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})))

	slog.Info("Starting CPU Scout server", "version", appCfg.Version)

	snapshot, err := dataset.Load(appCfg.DataFile)
	if err != nil {
		slog.Error("Failed to load dataset", "file", appCfg.DataFile, "error", err)
		os.Exit(1)
	}
	slog.Info("Dataset loaded", "file", snapshot.Path, "records", snapshot.Len())

	palette, err := vendors.Load(appCfg.VendorsFile)
	if err != nil {
		slog.Error("Failed to load vendor palette", "file", appCfg.VendorsFile, "error", err)
		os.Exit(1)
	}

	registry := metrics.NewRegistry()
	lookup := history.NewLookup(history.NewGenerator(appCfg.HistoryDays), palette)

	handler := api.NewHandler(snapshot, lookup, registry, appCfg.Version)
	server := api.NewServer(handler, registry)

	httpServer := &http.Server{
		Addr:         ":" + appCfg.Port,
		Handler:      server,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("Starting HTTP server", "port", appCfg.Port)
		slog.Info("API endpoints available",
			"cpus", "/api/cpus",
			"offers", "/api/offers",
			"history", "/api/history?slug=<product-slug>",
			"health", "/health",
			"stats", "/stats",
			"metrics", "/metrics")

		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		slog.Info("Received signal", "signal", sig.String())
	case err := <-serverErrChan:
		slog.Error("Server error", "error", err)
	}

	slog.Info("Shutting down server gracefully")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	} else {
		slog.Info("HTTP server stopped")
	}
}
