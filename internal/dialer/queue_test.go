package dialer

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
)

type testQueueConfig struct {
	redisURL string
}

func (c testQueueConfig) GetRedisURL() string       { return c.redisURL }
func (c testQueueConfig) GetRedisTLSInsecure() bool { return false }
func (c testQueueConfig) GetDialQueueName() string  { return "dialer" }
func (c testQueueConfig) GetDialConcurrency() int   { return 4 }

func TestNewQueueRequiresRedisURL(t *testing.T) {
	if _, err := NewQueue(testQueueConfig{}); err == nil {
		t.Fatal("expected error without redis url")
	}
}

func TestEnqueueCampaignDial(t *testing.T) {
	srv := miniredis.RunT(t)

	queue, err := NewQueue(testQueueConfig{redisURL: "redis://" + srv.Addr()})
	if err != nil {
		t.Fatalf("NewQueue returned error: %v", err)
	}
	defer queue.Close()

	campaignID := uuid.New()
	leadIDs := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}

	queued, err := queue.EnqueueCampaignDial(context.Background(), campaignID, leadIDs)
	if err != nil {
		t.Fatalf("EnqueueCampaignDial returned error: %v", err)
	}
	if queued != len(leadIDs) {
		t.Fatalf("queued = %d, want %d", queued, len(leadIDs))
	}

	// asynq stores pending task IDs in a per-queue list.
	pending, err := srv.List("asynq:{dialer}:pending")
	if err != nil {
		t.Fatalf("reading pending list: %v", err)
	}
	if len(pending) != len(leadIDs) {
		t.Fatalf("pending tasks = %d, want %d", len(pending), len(leadIDs))
	}
}

func TestEnqueueCampaignDialEmpty(t *testing.T) {
	srv := miniredis.RunT(t)

	queue, err := NewQueue(testQueueConfig{redisURL: "redis://" + srv.Addr()})
	if err != nil {
		t.Fatalf("NewQueue returned error: %v", err)
	}
	defer queue.Close()

	queued, err := queue.EnqueueCampaignDial(context.Background(), uuid.New(), nil)
	if err != nil {
		t.Fatalf("EnqueueCampaignDial returned error: %v", err)
	}
	if queued != 0 {
		t.Fatalf("queued = %d, want 0", queued)
	}
}
