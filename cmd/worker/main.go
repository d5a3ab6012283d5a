// Command worker consumes the campaign dial queue and places the calls.
// It shares the database and event wiring with the API server but serves
// no HTTP traffic.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"callcampaign_backend/internal/adapters"
	"callcampaign_backend/internal/dialer"
	"callcampaign_backend/internal/dialer/vapi"
	"callcampaign_backend/internal/events"
	leadrepo "callcampaign_backend/internal/leads/repository"
	"callcampaign_backend/internal/notification"
	"callcampaign_backend/platform/config"
	"callcampaign_backend/platform/db"
	"callcampaign_backend/platform/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting dial worker", "env", cfg.Env, "queue", cfg.GetDialQueueName())

	if cfg.GetRedisURL() == "" {
		panic("REDIS_URL is required for the dial worker")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		panic("failed to connect to database: " + err.Error())
	}
	defer pool.Close()

	eventBus := events.NewInMemoryBus(log)

	if cfg.GetEmailEnabled() {
		sender := notification.NewSMTPSender(
			cfg.GetSMTPHost(), cfg.GetSMTPPort(),
			cfg.GetSMTPUsername(), cfg.GetSMTPPassword(),
			cfg.GetEmailFromAddress(), cfg.GetEmailFromName(),
		)
		notifier := notification.NewNotifier(sender, cfg.GetOpsAlertAddress(), log)
		notifier.Register(eventBus)
	}

	store := adapters.NewDialerLeadStore(leadrepo.New(pool))
	svc := dialer.NewService(store, vapi.NewClient(cfg), eventBus, log)

	worker, err := dialer.NewWorker(cfg, svc, log)
	if err != nil {
		log.Error("failed to initialize dial worker", "error", err)
		panic("failed to initialize dial worker: " + err.Error())
	}

	worker.Run(ctx)
	log.Info("dial worker stopped")
}
