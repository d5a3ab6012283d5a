package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"callcampaign_backend/internal/adapters"
	"callcampaign_backend/internal/campaigns"
	"callcampaign_backend/internal/dialer"
	"callcampaign_backend/internal/events"
	"callcampaign_backend/internal/exports"
	apphttp "callcampaign_backend/internal/http"
	"callcampaign_backend/internal/http/router"
	"callcampaign_backend/internal/leads"
	"callcampaign_backend/internal/notification"
	"callcampaign_backend/internal/storage"
	"callcampaign_backend/internal/webhook"
	"callcampaign_backend/platform/config"
	"callcampaign_backend/platform/db"
	"callcampaign_backend/platform/logger"
	"callcampaign_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize structured logger
	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ========================================================================
	// Infrastructure Layer
	// ========================================================================

	if err := withRetry(ctx, log, "database migrations", 5, 2*time.Second, func() error {
		return db.RunMigrations(ctx, cfg, "migrations")
	}); err != nil {
		log.Error("failed to run database migrations", "error", err)
		panic("failed to run database migrations: " + err.Error())
	}
	log.Info("database migrations complete")

	var pool *pgxpool.Pool
	if err := withRetry(ctx, log, "database connection", 5, 2*time.Second, func() error {
		p, err := db.NewPool(ctx, cfg)
		if err != nil {
			return err
		}
		pool = p
		return nil
	}); err != nil {
		log.Error("failed to connect to database", "error", err)
		panic("failed to connect to database: " + err.Error())
	}
	defer pool.Close()
	log.Info("database connection established")

	// Event bus for decoupled communication between modules
	eventBus := events.NewInMemoryBus(log)

	// Shared validator instance for dependency injection
	val := validator.New()

	// Storage service for CSV import archiving (MinIO, optional)
	var storageSvc storage.Service
	if cfg.IsMinIOEnabled() {
		minioSvc, err := storage.NewMinIOService(cfg)
		if err != nil {
			log.Error("failed to initialize storage service", "error", err)
			panic("failed to initialize storage service: " + err.Error())
		}
		if err := withRetry(ctx, log, "ensure lead-imports bucket", 5, 2*time.Second, func() error {
			return minioSvc.EnsureBucketExists(ctx, cfg.GetMinioBucketLeadImports())
		}); err != nil {
			log.Error("failed to ensure storage bucket exists", "error", err, "bucket", cfg.GetMinioBucketLeadImports())
			panic("failed to ensure storage bucket exists: " + err.Error())
		}
		storageSvc = minioSvc
		log.Info("storage service initialized", "leadImportsBucket", cfg.GetMinioBucketLeadImports())
	} else {
		log.Warn("MINIO_ENDPOINT not configured; CSV import archiving disabled")
	}

	// Dial queue client (optional)
	var dialQueue dialer.DialQueue
	if cfg.GetRedisURL() != "" {
		queue, err := dialer.NewQueue(cfg)
		if err != nil {
			log.Error("failed to initialize dial queue", "error", err)
			panic("failed to initialize dial queue: " + err.Error())
		}
		defer queue.Close()
		dialQueue = queue
		log.Info("dial queue initialized", "queue", cfg.GetDialQueueName())
	} else {
		log.Warn("REDIS_URL not configured; campaign dialing disabled")
	}

	// ========================================================================
	// Domain Modules (Composition Root)
	// ========================================================================

	leadsModule := leads.NewModule(pool, eventBus, storageSvc, cfg.GetMinioBucketLeadImports(), val, log)
	campaignsModule := campaigns.NewModule(pool, val, log)

	// Anti-corruption adapters keep the dialer and webhook contexts off
	// repository types.
	dialerStore := adapters.NewDialerLeadStore(leadsModule.Repository())
	webhookStore := adapters.NewWebhookLeadStore(leadsModule.Repository())

	dialerModule := dialer.NewModule(dialerStore, cfg, dialQueue, campaignsModule.Service(), eventBus, val, log)
	webhookModule := webhook.NewModule(webhookStore, eventBus, log)

	exportSource := adapters.NewExportSource(leadsModule.Repository(), campaignsModule.Repository())
	exportsModule := exports.NewModule(exportSource, log)

	// Ops email alerts subscribe to domain events (not HTTP-facing)
	if cfg.GetEmailEnabled() {
		sender := notification.NewSMTPSender(
			cfg.GetSMTPHost(), cfg.GetSMTPPort(),
			cfg.GetSMTPUsername(), cfg.GetSMTPPassword(),
			cfg.GetEmailFromAddress(), cfg.GetEmailFromName(),
		)
		notifier := notification.NewNotifier(sender, cfg.GetOpsAlertAddress(), log)
		notifier.Register(eventBus)
		log.Info("email notifications enabled", "opsAddress", cfg.GetOpsAlertAddress())
	}

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Config:   cfg,
		Logger:   log,
		Health:   db.NewPoolAdapter(pool),
		EventBus: eventBus,
		Modules: []apphttp.Module{
			leadsModule,
			campaignsModule,
			dialerModule,
			webhookModule,
			exportsModule,
		},
	}

	engine := router.New(app)

	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: engine,
	}

	srvErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		srvErr <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, gracefully shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("server shutdown failed", "error", err)
		}
	case err := <-srvErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			panic("server error: " + err.Error())
		}
	}
}

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		return fmt.Errorf("%s: invalid retry attempts", name)
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := fn(); err == nil {
			return nil
		} else {
			lastErr = err
			log.Warn("retryable operation failed", "operation", name, "attempt", attempt, "error", err)
		}

		if attempt < attempts {
			delay := time.Duration(attempt*attempt) * baseDelay
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return errors.New(name + ": " + lastErr.Error())
}
