// Package events defines the pubsub event published after each
// experiment finishes, giving an out-of-scope sweep-orchestration
// collaborator (spec.md §1, §6) a concrete seam to subscribe from
// without the simulation core depending on that collaborator.
package events

import (
	"errors"
	"fmt"
	"time"
)

// EventVersion1 is the current ExperimentCompletedEvent schema
// version, following pkg/pubsub/events.go's versioning convention:
// add fields in later versions, never remove or repurpose one.
const EventVersion1 = 1

// ExperimentCompletedEvent reports one finished experiment, successful
// or failed, to ExperimentResultsTopic.
type ExperimentCompletedEvent struct {
	// Version of the event schema.
	Version int `json:"version"`

	// Experiment is the ExperimentSpec.Name that finished.
	Experiment string `json:"experiment"`

	// Status is "completed" or "failed".
	Status string `json:"status"`

	// Error is the failure's message when Status is "failed", per
	// spec.md §7's per-experiment error propagation; empty on success.
	Error string `json:"error,omitempty"`

	// Metrics holds, on success, the collector-name-keyed result
	// dictionary spec.md §6 describes. Empty on failure: "the
	// experiment is skipped and its slot in the aggregated results is
	// empty" (§7).
	Metrics map[string]interface{} `json:"metrics,omitempty"`

	// CompletedAt is when the experiment finished.
	CompletedAt time.Time `json:"completed_at"`
}

// Validate checks that e is well-formed before publishing, following
// pkg/pubsub/events.go's Validate pattern.
func (e *ExperimentCompletedEvent) Validate() error {
	if e.Version != EventVersion1 {
		return fmt.Errorf("unsupported event version: %d", e.Version)
	}
	if e.Experiment == "" {
		return errors.New("experiment field is required")
	}
	switch e.Status {
	case "completed", "failed":
	default:
		return fmt.Errorf("invalid status: %s (must be completed or failed)", e.Status)
	}
	if e.Status == "failed" && e.Error == "" {
		return errors.New("error is required when status is failed")
	}
	if e.CompletedAt.IsZero() {
		return errors.New("completed_at cannot be zero")
	}
	return nil
}
