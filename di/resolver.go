package di

import "fmt"

// Injector resolves Keys against a Registry: it walks the dependency
// graph depth-first in declaration order, detects cycles, applies scope
// caching and produces the final instance.
//
// Injectors are cheap views over their Registry and safe for concurrent
// use; all shared state lives on the Registry (and, for GlobalSingleton
// bindings, in the process-wide cache).
type Injector struct {
	reg *Registry

	// ctx is set only on the derived view handed to factory providers: it
	// carries the in-flight set of the resolution call that invoked the
	// factory, so Keys the factory resolves stay on the same cycle-checked
	// walk. Injectors returned by NewInjector leave it nil and start a
	// fresh walk per call.
	ctx *resolutionContext
}

// NewInjector returns an Injector bound to reg.
func NewInjector(reg *Registry) *Injector {
	return &Injector{reg: reg}
}

// Registry returns the Registry this Injector resolves against.
func (in *Injector) Registry() *Registry { return in.reg }

// Resolve produces the instance for k, constructing missing dependencies
// recursively. It fails with an UnboundError, CycleError or BuildError as
// described in the package documentation; the first failure aborts the
// whole call and nothing is retried.
func (in *Injector) Resolve(k Key) (any, error) {
	v, _, err := in.resolve(k, in.callContext(), false)
	return v, err
}

// ResolveOptional is Resolve for dependencies that may legitimately be
// missing: an unbound k yields (nil, false, nil) instead of an
// UnboundError. Every other failure is reported as with Resolve.
func (in *Injector) ResolveOptional(k Key) (any, bool, error) {
	return in.resolve(k, in.callContext(), true)
}

// callContext returns the in-flight set for a Resolve entry point: the
// inherited one on a factory-scoped view, a fresh one otherwise.
func (in *Injector) callContext() *resolutionContext {
	if in.ctx != nil {
		return in.ctx
	}
	return newResolutionContext()
}

// forCall returns the Injector view factory providers receive: same
// Registry, but sharing the calling walk's in-flight set.
func (in *Injector) forCall(ctx *resolutionContext) *Injector {
	return &Injector{reg: in.reg, ctx: ctx}
}

// resolutionContext is the call-local in-flight set for one top-level
// resolution: an ordered Key path for diagnostics plus a membership set
// for O(1) cycle checks. It is never shared across concurrent calls, so
// two unrelated resolutions of the same contract never see each other's
// in-flight markers.
type resolutionContext struct {
	path   []Key
	active map[Key]struct{}
}

func newResolutionContext() *resolutionContext {
	return &resolutionContext{active: make(map[Key]struct{})}
}

func (c *resolutionContext) push(k Key) {
	c.path = append(c.path, k)
	c.active[k] = struct{}{}
}

func (c *resolutionContext) pop() {
	last := c.path[len(c.path)-1]
	c.path = c.path[:len(c.path)-1]
	delete(c.active, last)
}

// cycle returns the ordered cycle path for k: from k's first occurrence
// on the path back to k itself.
func (c *resolutionContext) cycle(k Key) []Key {
	for i, on := range c.path {
		if on == k {
			out := make([]Key, 0, len(c.path)-i+1)
			out = append(out, c.path[i:]...)
			return append(out, k)
		}
	}
	return []Key{k, k}
}

// chain returns a copy of the current request path, root first.
func (c *resolutionContext) chain() []Key {
	out := make([]Key, len(c.path))
	copy(out, c.path)
	return out
}

// resolve is one step of the graph walk. ok is false only for an absent
// optional dependency.
func (in *Injector) resolve(k Key, ctx *resolutionContext, optional bool) (any, bool, error) {
	if _, busy := ctx.active[k]; busy {
		return nil, false, CycleError{Path: ctx.cycle(k)}
	}
	ctx.push(k)
	defer ctx.pop()

	// A cached singleton short-circuits the walk entirely; its own
	// dependencies are not re-walked. The process-wide cache is consulted
	// only after the binding is known, so a registry that never bound k
	// cannot observe another registry's global singleton.
	if v, ok := in.reg.cache.peek(k); ok {
		return v, true, nil
	}

	b, providers, mode := in.reg.lookup(k)
	switch mode {
	case bindNone:
		if optional {
			return nil, false, nil
		}
		return nil, false, UnboundError{Key: k, Chain: ctx.chain()}

	case bindMulti:
		out := make([]any, 0, len(providers))
		for _, p := range providers {
			v, err := in.invoke(k, p, ctx)
			if err != nil {
				return nil, false, err
			}
			out = append(out, v)
		}
		return out, true, nil
	}

	// Pre-built instances resolve to themselves; the declared scope is
	// irrelevant since there is nothing left to construct or cache.
	if b.provider.kind == kindInstance {
		return b.provider.instance, true, nil
	}

	compute := func() (any, error) { return in.invoke(k, b.provider, ctx) }

	var v any
	var err error
	switch b.scope {
	case InjectorSingleton:
		v, err = in.reg.cache.get(k, compute)
	case GlobalSingleton:
		v, err = globalCache.get(k, compute)
	default:
		v, err = compute()
	}
	if err != nil {
		return nil, false, err
	}
	return v, true, nil
}

// invoke runs a provider, resolving constructor dependencies first in
// declaration order. A failing dependency propagates untouched; a failure
// (or panic) inside the provider's own code is wrapped into a BuildError
// for k with the cause preserved.
func (in *Injector) invoke(k Key, p *Provider, ctx *resolutionContext) (any, error) {
	switch p.kind {
	case kindInstance:
		return p.instance, nil

	case kindFactory:
		return safeBuild(k, func() (any, error) { return p.factory(in.forCall(ctx)) })

	default:
		args := make([]any, len(p.deps))
		for i, d := range p.deps {
			v, ok, err := in.resolve(d.Key, ctx, d.Optional)
			if err != nil {
				return nil, err
			}
			if !ok {
				// Absent optional dependency: nil slot.
				args[i] = nil
				continue
			}
			args[i] = v
		}
		return safeBuild(k, func() (any, error) { return p.build(args) })
	}
}

// safeBuild invokes user build code, converting panics and returned
// errors into a BuildError for k. The panic path is cold, so the fmt
// formatting cost does not matter there.
func safeBuild(k Key, fn func() (any, error)) (v any, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			v = nil
			if cause, ok := rec.(error); ok {
				err = BuildError{Key: k, Cause: cause}
				return
			}
			err = BuildError{Key: k, Cause: fmt.Errorf("panic: %v", rec)}
		}
	}()

	v, err = fn()
	if err != nil {
		return nil, BuildError{Key: k, Cause: err}
	}
	return v, nil
}
