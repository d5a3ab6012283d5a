package service

import (
	"testing"

	"callcampaign_backend/internal/campaigns/repository"
)

func TestDeriveStatus(t *testing.T) {
	tests := []struct {
		name string
		agg  repository.Aggregates
		want string
	}{
		{"empty campaign", repository.Aggregates{}, repository.StatusPending},
		{"all pending", repository.Aggregates{LeadsCount: 5, Remaining: 5}, repository.StatusPending},
		{"in progress wins over completed", repository.Aggregates{LeadsCount: 5, InProgress: 1, Completed: 4}, repository.StatusInProgress},
		{"completed wins over failed", repository.Aggregates{LeadsCount: 5, Completed: 3, Failed: 2}, repository.StatusCompleted},
		{"only failures is partial", repository.Aggregates{LeadsCount: 5, Failed: 2, Remaining: 3}, repository.StatusPartial},
		{"single completed", repository.Aggregates{LeadsCount: 1, Completed: 1}, repository.StatusCompleted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DeriveStatus(tt.agg); got != tt.want {
				t.Fatalf("DeriveStatus(%+v) = %q, want %q", tt.agg, got, tt.want)
			}
		})
	}
}
