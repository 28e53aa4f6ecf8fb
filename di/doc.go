// Package di is the wirebox resolution engine: a registry of bindings from
// Keys to providers, a scope/lifecycle manager, and a constructor-graph
// resolver with cycle detection and optional-dependency handling.
//
// A Key pairs a contract identity with an optional qualifier, so multiple
// implementations of one contract can coexist:
//
//	db := di.KeyOf[Database]()
//	primary := di.Named[Database]("primary")
//
// A Provider wraps exactly one of: a constructor description (ordered
// dependency Keys plus a build function), a factory function receiving the
// active Injector, or a pre-built instance. Scope decides how often the
// provider runs: Transient (every resolution), InjectorSingleton (once per
// Registry) or GlobalSingleton (once per process, resettable for tests via
// ResetGlobal).
//
// Resolution is deterministic and cycle-safe: dependencies construct
// depth-first in declaration order, multi-bindings resolve in registration
// order, and errors always name the Key involved — UnboundError carries the
// full request chain, CycleError the ordered cycle path, BuildError the
// preserved cause. Singleton construction is single-flight per Key, so N
// concurrent resolutions run the provider once and share the instance.
//
// Two configuration styles share one Registry: direct Bind/BindMulti calls,
// and the fluent Binder façade plus the Register/Inject generic shortcuts —
// the façade is a thin layer over the same engine, so mixing them behaves
// as plain last-registration-wins.
//
// Import
//
//	"github.com/kettleby/wirebox/di"
package di
