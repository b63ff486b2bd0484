// Package runner implements the C9 ExperimentRunner: given a topology,
// an event stream, a strategy spec, and a set of collector specs, it
// builds the C4-C8 components through the registry and drives the
// event loop, collecting per-experiment results and propagating
// errors per spec.md §7's rule.
package runner

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/icarus-sim/icnsim/internal/cachepolicy"
	"github.com/icarus-sim/icnsim/internal/collector"
	"github.com/icarus-sim/icnsim/internal/events"
	"github.com/icarus-sim/icnsim/internal/network"
	"github.com/icarus-sim/icnsim/internal/registry"
	"github.com/icarus-sim/icnsim/internal/simerr"
)

// Logger is the minimal logging seam a caller can override: a small
// interface around the standard logger rather than a hardcoded
// os.Stdout target.
type Logger interface {
	Printf(format string, args ...interface{})
}

// stdLogger wraps the standard library logger so an ExperimentRunner
// built with a nil Logger still logs somewhere sensible.
type stdLogger struct{}

func (stdLogger) Printf(format string, args ...interface{}) { log.Printf(format, args...) }

// Event is one entry of an event stream: a content request for
// receiver at logical time, optionally excluded from collector
// accounting when Log is false (a warmup request).
type Event struct {
	Time     float64
	Receiver network.NodeID
	Content  network.ContentID
	Log      bool
}

// EventSource is the "iterator yielding (time, event) tuples" of
// spec.md §6. Next returns ok=false once the stream is exhausted.
type EventSource interface {
	Next() (Event, bool)
}

// SliceEventSource adapts a pre-built slice of events to EventSource,
// for callers (and tests) that already hold the full stream in memory.
type SliceEventSource struct {
	events []Event
	pos    int
}

// NewSliceEventSource builds an EventSource over events, in order.
func NewSliceEventSource(events []Event) *SliceEventSource {
	return &SliceEventSource{events: events}
}

func (s *SliceEventSource) Next() (Event, bool) {
	if s.pos >= len(s.events) {
		return Event{}, false
	}
	e := s.events[s.pos]
	s.pos++
	return e, true
}

// CollectorSpec names one collector to attach, plus its constructor
// parameters.
type CollectorSpec struct {
	Name   string
	Params json.RawMessage
}

// ExperimentSpec is everything ExperimentRunner needs to build and run
// one experiment: the topology and cache-policy factory that make up
// the Model, the strategy under test, and the collectors to report
// through.
type ExperimentSpec struct {
	Name string

	Topology          *network.Topology
	CachePolicy       string
	CachePolicyParams json.RawMessage

	Events EventSource

	Strategy       string
	StrategyParams json.RawMessage

	Collectors []CollectorSpec
}

// Result is one experiment's outcome: either a results map keyed by
// collector name (each value that collector's own Results()/Mean()-style
// summary, per spec.md §6's "result dictionary keyed by collector
// name"), or the error that aborted it.
type Result struct {
	Name    string
	Metrics map[string]interface{}
	Err     error
}

// ExperimentRunner builds and drives single experiments through the
// registry's named components. The zero value is not usable; build one
// with New.
type ExperimentRunner struct {
	reg    *registry.Registry
	logger Logger
}

// New builds an ExperimentRunner over reg. A nil logger defaults to the
// standard library logger.
func New(reg *registry.Registry, logger Logger) *ExperimentRunner {
	if logger == nil {
		logger = stdLogger{}
	}
	return &ExperimentRunner{reg: reg, logger: logger}
}

// Run builds the Model/View/Controller/Strategy/Collector set for spec
// and drives its event stream to completion, returning the accumulated
// collector results. A fatal error (PreconditionFailure,
// TopologyInconsistency, StrategyAssertion, per spec.md §7) aborts the
// experiment and is logged and returned on the Result, rather than
// panicking.
func (r *ExperimentRunner) Run(ctx context.Context, spec ExperimentSpec) Result {
	res := Result{Name: spec.Name}
	defer r.publishCompletion(ctx, &res)

	policyName := spec.CachePolicy
	policyParams := spec.CachePolicyParams
	var policyErr error
	model, err := network.NewModel(spec.Topology, func(_ network.NodeID, capacity int) cachepolicy.Cache[network.ContentID] {
		c, cerr := r.reg.CachePolicy(policyName, capacity, policyParams)
		if cerr != nil {
			// CacheFactory has no error return (network.go's own
			// contract); stash the first failure and substitute a
			// harmless Null cache so NewModel can still finish
			// walking the topology, then fail the experiment below
			// with the real error instead of this placeholder.
			if policyErr == nil {
				policyErr = cerr
			}
			return cachepolicy.NewNullCache[network.ContentID]()
		}
		return c
	})
	if err != nil {
		r.fail(&res, err)
		return res
	}
	if policyErr != nil {
		r.fail(&res, simerr.NewPrecondition("Run", "cache policy %q: %v", policyName, policyErr))
		return res
	}

	view := network.NewView(model)
	collectors := make([]collector.Collector, 0, len(spec.Collectors))
	for _, cs := range spec.Collectors {
		c, cerr := r.reg.Collector(cs.Name, view, cs.Params)
		if cerr != nil {
			r.fail(&res, cerr)
			return res
		}
		collectors = append(collectors, c)
	}
	proxy := collector.NewProxy(collectors...)
	ctrl := network.NewController(model, proxy)

	strat, err := r.reg.Strategy(spec.Strategy, view, ctrl, spec.StrategyParams)
	if err != nil {
		r.fail(&res, err)
		return res
	}

	for {
		ev, ok := spec.Events.Next()
		if !ok {
			break
		}
		if err := strat.ProcessEvent(ev.Time, ev.Receiver, ev.Content, ev.Log); err != nil {
			if simerr.Fatal(err) {
				r.fail(&res, err)
				return res
			}
		}
	}

	res.Metrics = resultsOf(spec.Collectors, collectors)
	return res
}

func (r *ExperimentRunner) fail(res *Result, err error) {
	res.Err = err
	r.logger.Printf("[ERROR] experiment %q failed: %v", res.Name, err)
}

// publishCompletion reports res to ExperimentResultsTopic, giving an
// out-of-scope sweep-orchestration collaborator a seam to observe
// finished experiments without the core depending on it. A publish
// failure is logged, not surfaced on the Result: it never reflects on
// whether the experiment itself succeeded.
func (r *ExperimentRunner) publishCompletion(ctx context.Context, res *Result) {
	event := &events.ExperimentCompletedEvent{
		Version:     events.EventVersion1,
		Experiment:  res.Name,
		CompletedAt: time.Now(),
	}
	if res.Err != nil {
		event.Status = "failed"
		event.Error = res.Err.Error()
	} else {
		event.Status = "completed"
		event.Metrics = res.Metrics
	}
	if _, err := events.ExperimentResultsTopic.Publish(ctx, event); err != nil {
		r.logger.Printf("[WARN] failed to publish completion event for experiment %q: %v", res.Name, err)
	}
}

func resultsOf(specs []CollectorSpec, collectors []collector.Collector) map[string]interface{} {
	out := make(map[string]interface{}, len(collectors))
	for i, c := range collectors {
		out[specs[i].Name] = dumpResults(c)
	}
	return out
}

// dumpResults extracts a collector's own results summary. Each
// built-in collector exposes a differently-shaped Results()/Mean()
// method (per spec.md §6, "no on-wire protocol mandated"), so this
// type-switches over the concrete collectors this module ships rather
// than widening the Collector interface with a method every future
// collector would be forced to implement identically.
func dumpResults(c collector.Collector) interface{} {
	switch v := c.(type) {
	case *collector.CacheHitRatioCollector:
		return v.Results()
	case *collector.LinkLoadCollector:
		return v.Results()
	case *collector.LatencyCollector:
		return v.Mean()
	case *collector.PathStretchCollector:
		return v.Mean()
	default:
		return nil
	}
}
