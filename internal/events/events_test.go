package events

import (
	"testing"
	"time"
)

func TestExperimentCompletedEventValidate(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name    string
		event   ExperimentCompletedEvent
		wantErr bool
	}{
		{
			name: "valid completed",
			event: ExperimentCompletedEvent{
				Version:     EventVersion1,
				Experiment:  "lce-line",
				Status:      "completed",
				Metrics:     map[string]interface{}{"CACHE_HIT_RATIO": 0.5},
				CompletedAt: now,
			},
			wantErr: false,
		},
		{
			name: "valid failed",
			event: ExperimentCompletedEvent{
				Version:     EventVersion1,
				Experiment:  "bad-policy",
				Status:      "failed",
				Error:       "registry: no cache policy registered under \"DOES_NOT_EXIST\"",
				CompletedAt: now,
			},
			wantErr: false,
		},
		{
			name: "missing experiment",
			event: ExperimentCompletedEvent{
				Version:     EventVersion1,
				Status:      "completed",
				CompletedAt: now,
			},
			wantErr: true,
		},
		{
			name: "invalid version",
			event: ExperimentCompletedEvent{
				Version:     999,
				Experiment:  "lce-line",
				Status:      "completed",
				CompletedAt: now,
			},
			wantErr: true,
		},
		{
			name: "invalid status",
			event: ExperimentCompletedEvent{
				Version:     EventVersion1,
				Experiment:  "lce-line",
				Status:      "running",
				CompletedAt: now,
			},
			wantErr: true,
		},
		{
			name: "failed without error message",
			event: ExperimentCompletedEvent{
				Version:     EventVersion1,
				Experiment:  "bad-policy",
				Status:      "failed",
				CompletedAt: now,
			},
			wantErr: true,
		},
		{
			name: "zero completed_at",
			event: ExperimentCompletedEvent{
				Version:    EventVersion1,
				Experiment: "lce-line",
				Status:     "completed",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.event.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
