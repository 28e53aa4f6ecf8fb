package di

import "sync"

// Warning is a configuration-time signal, emitted when a single-valued
// binding is replaced (last registration wins; replacement is supported
// reconfiguration, e.g. test overrides, not a failure).
type Warning struct {
	Key    Key
	Detail string
}

// String implements fmt.Stringer.
func (w Warning) String() string {
	return "di: " + w.Key.String() + ": " + w.Detail
}

// WarnFunc receives configuration warnings as they happen.
type WarnFunc func(Warning)

type binding struct {
	provider *Provider
	scope    ScopeKind
}

type bindingMode uint8

const (
	bindNone bindingMode = iota
	bindSingle
	bindMulti
)

// Registry maps Keys to providers plus scope tags. It owns its bindings
// and its injector-singleton cache; both live exactly as long as the
// Registry does.
//
// Configuration (Bind, BindMulti, Install) is expected to finish before
// resolution starts, but the Registry is safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	bindings map[Key]binding
	multi    map[Key][]*Provider
	warnings []Warning
	warn     WarnFunc

	cache *scopeCache
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		bindings: make(map[Key]binding),
		multi:    make(map[Key][]*Provider),
		cache:    newScopeCache(),
	}
}

// OnWarning installs a hook that receives configuration warnings in
// addition to them being recorded on the Registry. The hook runs outside
// the Registry's lock.
func (r *Registry) OnWarning(fn WarnFunc) {
	r.mu.Lock()
	r.warn = fn
	r.mu.Unlock()
}

// Warnings returns a copy of the warnings recorded so far.
func (r *Registry) Warnings() []Warning {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if len(r.warnings) == 0 {
		return nil
	}
	out := make([]Warning, len(r.warnings))
	copy(out, r.warnings)
	return out
}

// Bind registers or overrides the single-valued binding for k.
//
// Rebinding an existing Key replaces the previous provider and records a
// Warning; it is not an error. Replacement also evicts this Registry's
// cached injector-singleton for k, so the next resolution runs the new
// provider even after the old binding was resolved. GlobalSingleton
// instances are process-shared and survive a per-Registry rebind; use
// ResetGlobal to clear them.
//
// Binding a Key that already has multi-bindings is a BindingModeError.
// Providers with a known product type are checked against the contract
// here, once, so resolution only ever works with pre-validated bindings.
func (r *Registry) Bind(k Key, p *Provider, scope ScopeKind) error {
	if p == nil {
		return NilProviderError{Key: k}
	}
	if !p.compatible(k) {
		return IncompatibleProviderError{Key: k, Got: p.produces}
	}

	r.mu.Lock()
	if _, exists := r.multi[k]; exists {
		r.mu.Unlock()
		return BindingModeError{Key: k, Multi: true}
	}
	_, replaced := r.bindings[k]
	r.bindings[k] = binding{provider: p, scope: scope}
	var w Warning
	var warn WarnFunc
	if replaced {
		w = Warning{Key: k, Detail: "binding replaced; last registration wins"}
		r.warnings = append(r.warnings, w)
		warn = r.warn
	}
	r.mu.Unlock()

	if replaced {
		r.cache.drop(k)
	}
	if warn != nil {
		warn(w)
	}
	return nil
}

// BindMulti appends p to the ordered multi-binding list for k. Resolution
// of a multi-bound Key yields the aggregate collection in registration
// order. Appending to a Key that already has a single-valued binding is a
// BindingModeError.
func (r *Registry) BindMulti(k Key, p *Provider) error {
	if p == nil {
		return NilProviderError{Key: k}
	}
	if !p.compatible(k) {
		return IncompatibleProviderError{Key: k, Got: p.produces}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.bindings[k]; exists {
		return BindingModeError{Key: k, Multi: false}
	}
	r.multi[k] = append(r.multi[k], p)
	return nil
}

// Install merges other's bindings into r. Later installs override earlier
// single-valued bindings (with the usual replacement Warning) and
// concatenate multi-bindings after the existing entries.
func (r *Registry) Install(other *Registry) error {
	if other == nil || other == r {
		return nil
	}

	other.mu.RLock()
	singles := make(map[Key]binding, len(other.bindings))
	for k, b := range other.bindings {
		singles[k] = b
	}
	multis := make(map[Key][]*Provider, len(other.multi))
	for k, ps := range other.multi {
		cp := make([]*Provider, len(ps))
		copy(cp, ps)
		multis[k] = cp
	}
	other.mu.RUnlock()

	for k, b := range singles {
		if err := r.Bind(k, b.provider, b.scope); err != nil {
			return err
		}
	}
	for k, ps := range multis {
		for _, p := range ps {
			if err := r.BindMulti(k, p); err != nil {
				return err
			}
		}
	}
	return nil
}

// Has reports whether k has any binding, single or multi.
func (r *Registry) Has(k Key) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if _, ok := r.bindings[k]; ok {
		return true
	}
	_, ok := r.multi[k]
	return ok
}

// lookup returns the current binding state for k.
func (r *Registry) lookup(k Key) (binding, []*Provider, bindingMode) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if b, ok := r.bindings[k]; ok {
		return b, nil, bindSingle
	}
	if ps, ok := r.multi[k]; ok {
		out := make([]*Provider, len(ps))
		copy(out, ps)
		return binding{}, out, bindMulti
	}
	return binding{}, nil, bindNone
}
