package registry

import (
	"encoding/json"
	"fmt"

	"github.com/icarus-sim/icnsim/internal/collector"
	"github.com/icarus-sim/icnsim/internal/network"
)

func registerBuiltinCollectors(r *Registry) {
	r.RegisterCollector("CACHE_HIT_RATIO", func(_ *network.View, _ json.RawMessage) (collector.Collector, error) {
		return collector.NewCacheHitRatioCollector(), nil
	})

	type linkLoadParams struct {
		RequestSize float64 `json:"req_size"`
		ContentSize float64 `json:"content_size"`
	}
	r.RegisterCollector("LINK_LOAD", func(view *network.View, params json.RawMessage) (collector.Collector, error) {
		p := linkLoadParams{RequestSize: collector.DefaultRequestSize, ContentSize: collector.DefaultContentSize}
		if len(params) > 0 {
			if err := json.Unmarshal(params, &p); err != nil {
				return nil, fmt.Errorf("registry: LINK_LOAD params: %w", err)
			}
		}
		return collector.NewLinkLoadCollector(view, p.RequestSize, p.ContentSize), nil
	})

	type latencyParams struct {
		IncludeSidePaths bool `json:"include_side_paths"`
	}
	r.RegisterCollector("LATENCY", func(view *network.View, params json.RawMessage) (collector.Collector, error) {
		var p latencyParams
		if len(params) > 0 {
			if err := json.Unmarshal(params, &p); err != nil {
				return nil, fmt.Errorf("registry: LATENCY params: %w", err)
			}
		}
		return collector.NewLatencyCollector(view, p.IncludeSidePaths), nil
	})

	r.RegisterCollector("PATH_STRETCH", func(view *network.View, _ json.RawMessage) (collector.Collector, error) {
		return collector.NewPathStretchCollector(view), nil
	})
}
