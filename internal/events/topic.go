package events

import "encore.dev/pubsub"

// ExperimentResultsTopic is published to once per finished experiment
// (by internal/runner), mirroring invalidation/service.go's
// CacheInvalidateTopic: one topic per event type, at-least-once
// delivery since a missed completion notification is recoverable (the
// subscriber can always re-read the runner's own Result slot) but a
// duplicate is harmless.
var ExperimentResultsTopic = pubsub.NewTopic[*ExperimentCompletedEvent](
	"experiment-results",
	pubsub.TopicConfig{
		DeliveryGuarantee: pubsub.AtLeastOnce,
	},
)
