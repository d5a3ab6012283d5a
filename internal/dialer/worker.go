package dialer

import (
	"context"
	"fmt"

	"callcampaign_backend/platform/apperr"
	"callcampaign_backend/platform/config"
	"callcampaign_backend/platform/logger"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

// Worker consumes dial tasks and triggers the calls.
type Worker struct {
	server *asynq.Server
	mux    *asynq.ServeMux
	svc    *Service
	log    *logger.Logger
}

// NewWorker creates the dial queue worker.
func NewWorker(cfg config.DialQueueConfig, svc *Service, log *logger.Logger) (*Worker, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL, cfg.GetRedisTLSInsecure())
	if err != nil {
		return nil, err
	}

	queue := cfg.GetDialQueueName()
	if queue == "" {
		queue = "default"
	}

	concurrency := cfg.GetDialConcurrency()
	if concurrency < 1 {
		concurrency = 4
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			queue: 1,
		},
	})

	mux := asynq.NewServeMux()
	w := &Worker{
		server: server,
		mux:    mux,
		svc:    svc,
		log:    log,
	}

	mux.HandleFunc(TaskDialLead, w.handleDialLead)

	return w, nil
}

// handleDialLead triggers one call. Precondition failures and provider
// rejections are terminal for the lead, so the task never retries on them.
func (w *Worker) handleDialLead(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseDialLeadPayload(task)
	if err != nil {
		return err
	}

	leadID, err := uuid.Parse(payload.LeadID)
	if err != nil {
		return err
	}

	if _, err := w.svc.TriggerCall(ctx, leadID); err != nil {
		switch apperr.GetKind(err) {
		case apperr.KindNotFound, apperr.KindBadRequest, apperr.KindUpstream:
			w.log.DialEvent("queued_dial_skipped", payload.LeadID, false, err.Error())
			return nil
		default:
			return err
		}
	}

	return nil
}

// Run serves the queue until the context is cancelled.
func (w *Worker) Run(ctx context.Context) {
	if w == nil || w.server == nil {
		return
	}

	go func() {
		<-ctx.Done()
		w.server.Shutdown()
	}()

	if err := w.server.Run(w.mux); err != nil {
		w.log.Error("dial worker stopped", "error", err)
	}
}
