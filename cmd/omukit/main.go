// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package main is the entry point for the Omu Media Kit server.
// It loads configuration, connects to services, sets up routing, and starts
// the HTTP server with graceful shutdown support.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"omukit/internal/brand"
	"omukit/internal/cache"
	"omukit/internal/config"
	"omukit/internal/database"
	"omukit/internal/handlers"
	"omukit/internal/middleware"
	"omukit/internal/models"
	"omukit/internal/renderjob"
	"omukit/internal/router"
	"omukit/internal/store"
	"omukit/internal/templated"
)

func main() {
	// Structured logger — outputs JSON in production, text in development.
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	// Load configuration from environment variables.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
		"data_source", cfg.DataSource,
	)

	// Connect to PostgreSQL (optional — journal and brand persistence
	// degrade gracefully without it).
	var (
		journal    *store.RenderRecordStore
		brandStore *brand.Store
	)
	if cfg.DBHost != "" {
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

		journal = store.NewRenderRecordStore(db)
		settings := store.NewSettingStore(db)
		brandStore, err = brand.NewStore(brand.NewSettingsPersistence(settings))
		if err != nil {
			slog.Error("failed to load brand guidelines", "error", err)
			os.Exit(1)
		}
	} else {
		slog.Warn("postgresql not configured — render journal disabled, brand guidelines persist to file",
			"path", cfg.BrandFile,
		)
		brandStore, err = brand.NewStore(brand.NewFilePersistence(cfg.BrandFile))
		if err != nil {
			slog.Error("failed to load brand guidelines", "error", err)
			os.Exit(1)
		}
	}

	// Connect to Valkey (optional — template metadata cache).
	var tmplCache *cache.TemplateCache
	if cfg.ValkeyHost != "" {
		valkeyClient, err := cache.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
		if err != nil {
			slog.Error("failed to connect to valkey", "error", err)
			os.Exit(1)
		}
		defer valkeyClient.Close()
		tmplCache = cache.NewTemplateCache(valkeyClient, cfg.TemplateCacheTTL)
	} else {
		slog.Warn("valkey not configured — template metadata cache disabled")
	}

	// Select the data source: the live Templated.io API or the built-in
	// fixture for offline development.
	var remote templated.API
	switch cfg.DataSource {
	case "fixture":
		remote = templated.NewFixture()
		slog.Info("using fixture data source")
	default:
		client, err := templated.NewClient(cfg.TemplatedAPIKey, cfg.TemplatedBaseURL)
		if err != nil {
			slog.Error("failed to create templated client", "error", err)
			os.Exit(1)
		}
		remote = client
	}

	// The render controller polls job status and feeds every transition
	// into the journal. The controller is the single journal writer, so
	// handler and poll-loop updates cannot race.
	renders := renderjob.New(remote, cfg.PollInterval, func(job renderjob.Job) {
		slog.Info("render status",
			"render_id", job.ID,
			"template_id", job.TemplateID,
			"status", job.Status,
		)
		if journal == nil {
			return
		}
		if err := recordJob(journal, job); err != nil {
			slog.Error("failed to journal render status", "render_id", job.ID, "error", err)
		}
	})

	api := handlers.New(remote, tmplCache, brandStore, renders, journal)

	// Rate limit render submissions: each one consumes remote quota.
	renderLimiter := middleware.NewRateLimiter(10, time.Minute)
	defer renderLimiter.Stop()

	r := router.New(api, renderLimiter)

	// Create the HTTP server with sensible timeouts. WriteTimeout must
	// accommodate uploads being forwarded to the remote API.
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 90 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start the server in a goroutine so we can listen for shutdown signals.
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

	// Stop polling before draining so no journal write lands mid-shutdown.
	renders.Cancel()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}

// recordJob upserts one render status transition into the journal.
func recordJob(journal *store.RenderRecordStore, job renderjob.Job) error {
	existing, err := journal.FindByRenderID(job.ID)
	if err != nil {
		return err
	}

	var url, errDetail *string
	if job.URL != "" {
		url = &job.URL
	}
	if job.Error != "" {
		errDetail = &job.Error
	}

	if existing == nil {
		_, err := journal.Create(&models.RenderRecord{
			RenderID:     job.ID,
			TemplateID:   job.TemplateID,
			TemplateName: job.TemplateName,
			Status:       string(job.Status),
			URL:          url,
			ErrorDetail:  errDetail,
		})
		return err
	}
	return journal.UpdateStatus(job.ID, string(job.Status), url, errDetail)
}
