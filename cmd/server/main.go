package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"amplify/internal/campaign"
	"amplify/internal/config"
	"amplify/internal/email"
	"amplify/internal/intake"
	"amplify/internal/jobs"
	"amplify/internal/metrics"
	"amplify/internal/notify"
	"amplify/internal/repository"
	"amplify/internal/seed"
	"amplify/internal/server"
	"amplify/internal/store"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg := config.Load()

	yamlCfg, err := config.LoadYAMLConfig()
	if err != nil {
		log.Fatalf("Failed to load config file: %v", err)
	}

	// Initialize store
	st, err := store.Open(ctx, store.Options{
		Driver:      cfg.StoreDriver,
		Path:        cfg.StorePath,
		DatabaseURL: cfg.DatabaseURL,
		RedisURL:    cfg.RedisURL,
	})
	if err != nil {
		log.Fatalf("Failed to open %s store: %v", cfg.StoreDriver, err)
	}
	defer st.Close()
	log.Printf("Using %s store", cfg.StoreDriver)

	roster, err := seed.Starter(cfg.SeedDisabled, yamlCfg.SeedFile())
	if err != nil {
		log.Fatalf("Failed to load starter roster: %v", err)
	}

	repos, err := repository.Open(ctx, st, roster)
	if err != nil {
		log.Fatalf("Failed to load collections: %v", err)
	}
	metrics.Init(repos)

	feed := notify.NewFeed(notify.DefaultFeedSize)
	sinks := []notify.Sink{notify.LogSink{Logger: slog.Default()}, feed}
	if mailer := email.NewService(cfg); mailer.IsEnabled() && len(cfg.AlertEmails) > 0 {
		sinks = append(sinks, email.NewSink(mailer, cfg.AlertEmails, cfg.BaseURL))
	}
	notifier := notify.New(sinks...)

	srv := server.New(cfg)
	srv.RegisterRoutes(server.Deps{
		Store:     st,
		Repos:     repos,
		Campaigns: campaign.NewService(repos.Campaigns, repos.Influencers),
		Intake:    intake.NewService(repos, notifier),
		Notifier:  notifier,
		Feed:      feed,
		Filters:   yamlCfg.DefaultFilters(),
	})

	// Start roster snapshots
	if cfg.SnapshotsEnabled() {
		snapshotter := jobs.NewSnapshotter(repos.Influencers, cfg.SnapshotDir, cfg.SnapshotInterval).
			WithStoreBackup(st)
		go snapshotter.Start(ctx)
	}

	// Graceful shutdown
	go func() {
		if err := srv.Start(); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	log.Printf("Server started on %s", cfg.ServerAddr)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	cancel()
	if err := srv.Shutdown(); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}
	log.Println("Server exited")
}
