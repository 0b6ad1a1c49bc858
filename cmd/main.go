package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/bilgisen/lawgate/internal/api"
	"github.com/bilgisen/lawgate/internal/cache"
	"github.com/bilgisen/lawgate/internal/catalog"
	"github.com/bilgisen/lawgate/internal/config"
	"github.com/bilgisen/lawgate/internal/contact"
	"github.com/bilgisen/lawgate/internal/logger"
	"github.com/bilgisen/lawgate/internal/metrics"
	"github.com/bilgisen/lawgate/internal/storage"
)

func main() {
	// Load and validate configuration
	cfg := config.Load()

	// Initialize logger
	if err := logger.Init(logger.Config{
		Level:  cfg.LogLevel,
		Output: cfg.LogFile,
		Pretty: cfg.LogPretty,
	}); err != nil {
		panic(err)
	}

	log := logger.Get()
	log.Info().Str("env", cfg.Env).Msg("Starting application...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTPTimeout)
	defer cancel()

	// Dedupe store: Redis when configured, in-process otherwise
	var seen cache.Store
	if cfg.RedisURL != "" {
		redisClient, err := cache.NewRedisClient(ctx, cfg.RedisURL, cfg.RedisPrefix)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize Redis client")
		}
		seen = redisClient
	} else {
		log.Warn().Msg("REDIS_URL not set, using in-memory dedupe store")
		seen = cache.NewMemoryStore()
	}
	defer func() {
		log.Info().Msg("Closing dedupe store...")
		if err := seen.Close(); err != nil {
			log.Error().Err(err).Msg("Error closing dedupe store")
		}
	}()

	// Submission archive: R2 when credentials are present, local disk otherwise
	var archive storage.Archive
	if cfg.R2Enabled() {
		r2, err := storage.NewR2Archive(ctx, storage.R2Config{
			AccountID: cfg.R2AccountID,
			Endpoint:  cfg.R2Endpoint,
			AccessKey: cfg.R2AccessKey,
			SecretKey: cfg.R2SecretKey,
			Bucket:    cfg.R2Bucket,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize R2 archive")
		}
		archive = r2
	} else {
		fa, err := storage.NewFileArchive(cfg.StoragePath)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize file archive")
		}
		archive = fa
	}

	var verifier contact.Verifier
	if cfg.RecaptchaSecret != "" {
		verifier = contact.NewRecaptchaVerifier(cfg.RecaptchaSecret, cfg.RecaptchaTimeout)
	} else if !cfg.SkipRecaptcha {
		log.Warn().Msg("RECAPTCHA_SECRET_KEY not set, contact submissions will be rejected")
	}

	m := metrics.New()
	svc := contact.NewService(contact.Options{
		Recipients:  cfg.ContactRecipients,
		SkipCaptcha: cfg.SkipRecaptcha,
		DedupeTTL:   cfg.DedupeTTL,
	},
		verifier,
		contact.NewSendGridMailer(cfg.SendGridAPIKey, cfg.SenderEmail, cfg.SenderName),
		seen,
		archive,
		m,
	)

	cat := catalog.MustLoad()
	log.Info().Int("entries", cat.Len()).Msg("Content catalog loaded")

	app := api.NewApp(cfg, api.NewHandlers(cfg, cat, svc, archive, seen, m))

	// Start server in a goroutine
	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting server")
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited properly")
}
