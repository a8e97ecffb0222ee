// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package main is the entry point for the dealership API server. It loads
// configuration, connects to services, primes the stock snapshot, and
// starts the HTTP server with graceful shutdown support.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"mgepcar/internal/cache"
	"mgepcar/internal/config"
	"mgepcar/internal/database"
	"mgepcar/internal/handlers"
	"mgepcar/internal/router"
	"mgepcar/internal/session"
	"mgepcar/internal/stock"
	"mgepcar/internal/storage"
	"mgepcar/internal/store"
)

func main() {
	// .env is a development convenience; absence is not an error.
	godotenv.Load()

	// Structured logger — text in development, JSON in production.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	var handler slog.Handler
	if cfg.IsDev() {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	} else {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	}
	slog.SetDefault(slog.New(handler))

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
		"site", cfg.SiteName,
	)

	// Connect to PostgreSQL.
	db, err := database.Connect(cfg.DSN())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Run pending migrations.
	if err := database.Migrate(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Seed the initial admin account (no-op if users already exist).
	if cfg.IsDev() {
		if err := database.Seed(db); err != nil {
			slog.Error("failed to seed database", "error", err)
			os.Exit(1)
		}
	}

	// Connect to Valkey (sessions + response cache).
	valkeyClient, err := cache.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
	if err != nil {
		slog.Error("failed to connect to valkey", "error", err)
		os.Exit(1)
	}
	defer valkeyClient.Close()

	sessionStore := session.NewStore(valkeyClient, session.DefaultTTL)
	respCache := cache.NewResponseCache(valkeyClient, cache.DefaultResponseTTL)

	// Initialize data stores.
	userStore := store.NewUserStore(db)
	listingStore := store.NewListingStore(db)
	reviewStore := store.NewReviewStore(db)
	tokenStore := store.NewReviewTokenStore(db)
	leadStore := store.NewLeadStore(db)
	mediaStore := store.NewMediaStore(db)

	// Connect to S3-compatible object storage (optional — the API works
	// without it, with photo uploads disabled).
	var storageClient *storage.Client
	if cfg.HasStorage() {
		storageClient, err = storage.New(
			cfg.S3Endpoint, cfg.S3Region, cfg.S3AccessKey, cfg.S3SecretKey,
			cfg.S3Bucket, cfg.S3Private, cfg.S3PublicURL,
		)
		if err != nil {
			slog.Error("failed to initialize S3 storage", "error", err)
			os.Exit(1)
		}
		slog.Info("s3 storage connected",
			"endpoint", cfg.S3Endpoint,
			"public_bucket", cfg.S3Bucket,
			"private_bucket", cfg.S3Private,
		)
	} else {
		slog.Warn("s3 storage not configured — photo uploads disabled")
	}

	// Prime the in-memory stock snapshot. A failed initial refresh keeps
	// the bundled fallback catalog, so the storefront is never empty.
	stockStore := stock.New(listingStore)
	stockStore.Refresh(context.Background())
	if n, fallback := stockStore.Serving(); fallback {
		slog.Warn("serving fallback catalog", "listings", n)
	} else {
		slog.Info("stock snapshot loaded", "listings", n)
	}

	// Create handler groups with their dependencies.
	adminHandlers := handlers.NewAdmin(listingStore, reviewStore, tokenStore, leadStore,
		mediaStore, userStore, stockStore, respCache, storageClient)
	authHandlers := handlers.NewAuth(sessionStore, userStore, cfg.SiteName)
	leadHandlers := handlers.NewLeads(leadStore, listingStore, reviewStore, tokenStore)
	publicHandlers := handlers.NewPublic(stockStore, reviewStore, tokenStore, respCache)

	// Set up the Chi router with all middleware and routes.
	r, limiters := router.New(sessionStore, adminHandlers, authHandlers, leadHandlers, publicHandlers)
	defer func() {
		for _, l := range limiters {
			l.Stop()
		}
	}()

	// WriteTimeout accommodates multi-megabyte photo uploads to S3.
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}
