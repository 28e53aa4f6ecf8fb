package di

// Binder is a fluent configuration façade over a Registry. It is a thin
// layer, not a separate code path: every chain commits through the same
// Bind/BindMulti calls manual configuration uses, so precedence between
// the two styles is plain last-registration-wins.
//
//	binder := di.NewBinder(reg)
//	err := binder.Bind(di.KeyOf[Database]()).
//		To(di.ConstructorOf(newPostgres)).
//		In(di.InjectorSingleton).
//		Done()
type Binder struct {
	reg *Registry
}

// NewBinder returns a Binder over reg.
func NewBinder(reg *Registry) *Binder { return &Binder{reg: reg} }

// Registry returns the underlying Registry.
func (b *Binder) Registry() *Registry { return b.reg }

// Bind starts a fluent chain for the single-valued binding of k.
func (b *Binder) Bind(k Key) *BindingBuilder {
	return &BindingBuilder{reg: b.reg, key: k}
}

// AddMulti appends p to k's ordered multi-binding list.
func (b *Binder) AddMulti(k Key, p *Provider) error {
	return b.reg.BindMulti(k, p)
}

// Install merges another registry's bindings, as Registry.Install does.
func (b *Binder) Install(other *Registry) error {
	return b.reg.Install(other)
}

// BindingBuilder accumulates one binding before committing it with Done.
type BindingBuilder struct {
	reg      *Registry
	key      Key
	provider *Provider
	scope    ScopeKind
}

// To sets the provider.
func (bb *BindingBuilder) To(p *Provider) *BindingBuilder {
	bb.provider = p
	return bb
}

// ToInstance binds a pre-built value.
func (bb *BindingBuilder) ToInstance(v any) *BindingBuilder {
	bb.provider = Instance(v)
	return bb
}

// ToFactory binds a factory function.
func (bb *BindingBuilder) ToFactory(fn FactoryFunc) *BindingBuilder {
	bb.provider = Factory(fn)
	return bb
}

// In sets the scope. The default is Transient.
func (bb *BindingBuilder) In(scope ScopeKind) *BindingBuilder {
	bb.scope = scope
	return bb
}

// Done commits the binding to the Registry.
func (bb *BindingBuilder) Done() error {
	return bb.reg.Bind(bb.key, bb.provider, bb.scope)
}

// Register binds provider p to the unqualified Key of T.
func Register[T any](r *Registry, p *Provider, scope ScopeKind) error {
	return r.Bind(KeyOf[T](), p, scope)
}

// RegisterNamed binds provider p to the Key of T qualified by name.
func RegisterNamed[T any](r *Registry, name string, p *Provider, scope ScopeKind) error {
	return r.Bind(Named[T](name), p, scope)
}

// RegisterInstance binds a pre-built value to the unqualified Key of T.
func RegisterInstance[T any](r *Registry, v T) error {
	return r.Bind(KeyOf[T](), Instance(v), Transient)
}

// Inject resolves the unqualified Key of T and asserts the result.
func Inject[T any](in *Injector) (T, error) {
	return resolveAs[T](in, KeyOf[T]())
}

// InjectNamed resolves the Key of T qualified by name.
func InjectNamed[T any](in *Injector, name string) (T, error) {
	return resolveAs[T](in, Named[T](name))
}

// InjectOptional resolves the unqualified Key of T, reporting absence
// instead of failing when no binding exists.
func InjectOptional[T any](in *Injector) (T, bool, error) {
	var zero T
	v, ok, err := in.ResolveOptional(KeyOf[T]())
	if err != nil || !ok {
		return zero, ok, err
	}
	typed, isT := v.(T)
	if !isT {
		return zero, false, BuildError{Key: KeyOf[T](), Cause: ErrIncompatible}
	}
	return typed, true, nil
}

// InjectAll resolves the multi-binding for T's unqualified Key and
// converts the aggregate collection, preserving registration order.
func InjectAll[T any](in *Injector) ([]T, error) {
	k := KeyOf[T]()
	v, err := in.Resolve(k)
	if err != nil {
		return nil, err
	}
	raw, ok := v.([]any)
	if !ok {
		return nil, BuildError{Key: k, Cause: ErrBindingMode}
	}
	out := make([]T, 0, len(raw))
	for _, item := range raw {
		typed, isT := item.(T)
		if !isT {
			return nil, BuildError{Key: k, Cause: ErrIncompatible}
		}
		out = append(out, typed)
	}
	return out, nil
}

func resolveAs[T any](in *Injector, k Key) (T, error) {
	var zero T
	v, err := in.Resolve(k)
	if err != nil {
		return zero, err
	}
	typed, ok := v.(T)
	if !ok {
		return zero, BuildError{Key: k, Cause: ErrIncompatible}
	}
	return typed, nil
}
