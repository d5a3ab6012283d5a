package dialer

import (
	"context"
	"crypto/tls"
	"fmt"

	"callcampaign_backend/platform/config"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
)

// DialQueue enqueues campaign dial work.
type DialQueue interface {
	EnqueueCampaignDial(ctx context.Context, campaignID uuid.UUID, leadIDs []uuid.UUID) (int, error)
}

// Queue is the asynq-backed dial queue client. Optional: a nil *Queue means
// dialing campaigns is unavailable (REDIS_URL unset).
type Queue struct {
	client *asynq.Client
	queue  string
}

// NewQueue creates the dial queue client.
func NewQueue(cfg config.DialQueueConfig) (*Queue, error) {
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

	return &Queue{
		client: asynq.NewClient(opt),
		queue:  queue,
	}, nil
}

// Close releases the underlying redis connection.
func (q *Queue) Close() error {
	if q == nil || q.client == nil {
		return nil
	}
	return q.client.Close()
}

// EnqueueCampaignDial enqueues one dial task per lead, concurrently for
// large campaigns. Returns how many tasks were enqueued; the first enqueue
// error aborts the remainder.
func (q *Queue) EnqueueCampaignDial(ctx context.Context, campaignID uuid.UUID, leadIDs []uuid.UUID) (int, error) {
	if q == nil || q.client == nil {
		return 0, fmt.Errorf("dial queue not configured")
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(8)

	for _, leadID := range leadIDs {
		leadID := leadID
		g.Go(func() error {
			task, err := NewDialLeadTask(DialLeadPayload{
				LeadID:     leadID.String(),
				CampaignID: campaignID.String(),
			})
			if err != nil {
				return err
			}
			_, err = q.client.EnqueueContext(gctx, task, asynq.Queue(q.queue), asynq.MaxRetry(0))
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return 0, err
	}

	return len(leadIDs), nil
}

func redisClientOpt(redisURL string, tlsInsecure bool) (asynq.RedisClientOpt, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return asynq.RedisClientOpt{}, err
	}

	var tlsConfig *tls.Config
	if opt.TLSConfig != nil {
		clone := opt.TLSConfig.Clone()
		if tlsInsecure {
			clone.InsecureSkipVerify = true
		}
		tlsConfig = clone
	} else if tlsInsecure {
		tlsConfig = &tls.Config{InsecureSkipVerify: true}
	}

	return asynq.RedisClientOpt{
		Addr:      opt.Addr,
		Password:  opt.Password,
		DB:        opt.DB,
		TLSConfig: tlsConfig,
	}, nil
}
