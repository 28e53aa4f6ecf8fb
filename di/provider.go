package di

import "reflect"

// BuildFunc builds an instance from resolved constructor dependencies.
// deps arrives in declaration order; absent optional dependencies are nil.
type BuildFunc func(deps []any) (any, error)

// FactoryFunc builds an instance with access to the active Injector,
// for providers that resolve dependencies dynamically.
type FactoryFunc func(in *Injector) (any, error)

type providerKind uint8

const (
	kindConstructor providerKind = iota
	kindFactory
	kindInstance
)

// Dependency declares one constructor requirement: the Key to resolve and
// whether its absence is tolerated.
type Dependency struct {
	Key      Key
	Optional bool
}

// Dep declares a required constructor dependency.
func Dep(k Key) Dependency { return Dependency{Key: k} }

// OptionalDep declares an optional constructor dependency. When the Key is
// unbound the build function receives nil in that slot instead of the
// resolution failing.
func OptionalDep(k Key) Dependency { return Dependency{Key: k, Optional: true} }

// Provider is a deferred factory. It wraps exactly one of:
//
//   - a constructor description: an ordered Dependency list plus a BuildFunc
//     (Construct, ConstructorOf)
//   - a factory function taking the active Injector (Factory, FactoryOf)
//   - a pre-built instance (Instance)
//
// A Provider is invoked only when an instance is actually required, and no
// more often than the binding's scope allows.
type Provider struct {
	kind     providerKind
	build    BuildFunc
	deps     []Dependency
	factory  FactoryFunc
	instance any

	// produces is the provider's product type when known at construction
	// time; nil disables the bind-time compatibility check.
	produces reflect.Type
}

// Construct wraps a build function plus its ordered dependency list.
//
// The product type is unknown, so binding skips the compatibility check;
// prefer ConstructorOf when the product type is statically known.
func Construct(build BuildFunc, deps ...Dependency) *Provider {
	return &Provider{kind: kindConstructor, build: build, deps: deps}
}

// ConstructorOf wraps a typed build function plus its ordered dependency
// list. The product type T is recorded for the bind-time compatibility
// check against the bound Key's contract.
func ConstructorOf[T any](build func(deps []any) (T, error), deps ...Dependency) *Provider {
	return &Provider{
		kind: kindConstructor,
		build: func(resolved []any) (any, error) {
			return build(resolved)
		},
		deps:     deps,
		produces: typeOf[T](),
	}
}

// Factory wraps a factory function that receives the active Injector.
func Factory(fn FactoryFunc) *Provider {
	return &Provider{kind: kindFactory, factory: fn}
}

// FactoryOf wraps a typed factory function. As with ConstructorOf, the
// product type T participates in the bind-time compatibility check.
func FactoryOf[T any](fn func(in *Injector) (T, error)) *Provider {
	return &Provider{
		kind: kindFactory,
		factory: func(in *Injector) (any, error) {
			return fn(in)
		},
		produces: typeOf[T](),
	}
}

// Instance wraps a pre-built value. It trivially resolves to itself; any
// declared scope is ignored since the value already exists.
func Instance(v any) *Provider {
	return &Provider{kind: kindInstance, instance: v, produces: reflect.TypeOf(v)}
}

// Dependencies returns a copy of the constructor dependency list, in
// declaration order. Factory and instance providers have none.
func (p *Provider) Dependencies() []Dependency {
	if len(p.deps) == 0 {
		return nil
	}
	out := make([]Dependency, len(p.deps))
	copy(out, p.deps)
	return out
}

// compatible reports whether the provider's product (when known) can
// satisfy the contract of k. Providers with unknown products pass.
func (p *Provider) compatible(k Key) bool {
	if p.produces == nil || k.contract == nil {
		return true
	}
	return p.produces.AssignableTo(k.contract)
}
