// Package wirebox is a small dependency-injection container for Go.
//
// The engine lives in the di subpackage and is organized around four ideas:
//
//   - Key: a contract (interface/type identity) plus an optional qualifier,
//     used as the lookup token for every binding.
//   - Provider: a deferred factory — a constructor description, a factory
//     function, or a pre-built instance.
//   - Registry: the binding table (single and ordered multi-bindings) plus
//     the per-registry singleton cache.
//   - Injector: the resolver that walks the dependency graph, detects
//     cycles, applies scope caching, and produces instances.
//
// Wiring stays explicit: constructor dependencies are declared as ordered
// Key lists at binding time, and the resolver never inspects user types at
// resolution time.
//
// See subpackages:
//   - di: the resolution engine (keys, registry, scopes, resolver, members)
//   - discovery: name-pattern candidate catalog feeding registries
//   - clock, confload, serde: leaf collaborators registered like any contract
//   - cmd/wiregen: composition-root generator driven by a JSON manifest
//   - examples/webapp: end-to-end wiring of a small HTTP service
package wirebox
