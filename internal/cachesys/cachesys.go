// Package cachesys implements composite "systems of caches": arrays,
// trees, and paths of individual Cache instances, plus a hash-sharded
// set of same-policy caches. These supplement the base cache-policy
// library (internal/cachepolicy) for topologies that model a node's
// storage as more than a single bounded container.
package cachesys

import "github.com/icarus-sim/icnsim/internal/cachepolicy"

// Cache is the subset of cachepolicy.Cache these composites build on.
type Cache[K comparable] = cachepolicy.Cache[K]
