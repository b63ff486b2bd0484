// Package icnsim is the public surface of the in-network caching
// simulator: a thin re-export of the internal/ packages a collaborator
// needs to build a topology, register components, and run experiments,
// without reaching into internal/ directly.
package icnsim

import (
	"github.com/icarus-sim/icnsim/internal/network"
	"github.com/icarus-sim/icnsim/internal/registry"
	"github.com/icarus-sim/icnsim/internal/runner"
)

// Topology types (spec.md §3).
type (
	Topology  = network.Topology
	NodeID    = network.NodeID
	ContentID = network.ContentID
	NodeRole  = network.NodeRole
	LinkType  = network.LinkType
)

// Node roles and link types.
const (
	RoleReceiver = network.RoleReceiver
	RoleRouter   = network.RoleRouter
	RoleSource   = network.RoleSource

	LinkInternal = network.LinkInternal
	LinkExternal = network.LinkExternal
)

// NewTopology builds an empty Topology; add nodes and edges with its
// own methods before passing it to an ExperimentSpec.
func NewTopology() *Topology { return network.NewTopology() }

// Registry is the name->constructor table for cache policies,
// strategies, and collectors (spec.md §6, §9).
type Registry = registry.Registry

// NewRegistry builds a Registry pre-populated with every built-in
// cache policy, strategy, and collector this module ships.
func NewRegistry() *Registry { return registry.New() }

// Runner types and construction (C9, spec.md §5).
type (
	ExperimentSpec = runner.ExperimentSpec
	CollectorSpec  = runner.CollectorSpec
	Result         = runner.Result
	SweepOptions   = runner.SweepOptions
	Event          = runner.Event
	EventSource    = runner.EventSource
	Logger         = runner.Logger
)

// NewSliceEventSource adapts a pre-built slice of events to
// EventSource, for callers that already hold the full event stream in
// memory.
func NewSliceEventSource(events []Event) EventSource {
	return runner.NewSliceEventSource(events)
}

// ExperimentRunner builds and drives experiments against a Registry.
type ExperimentRunner = runner.ExperimentRunner

// NewRunner builds an ExperimentRunner over reg. A nil logger defaults
// to the standard library logger.
func NewRunner(reg *Registry, logger Logger) *ExperimentRunner {
	return runner.New(reg, logger)
}
