package di

// Member declares one post-construction injection slot on an externally
// created instance: a diagnostic name, the Key to resolve, and an assign
// function that stores the resolved value into the instance.
//
// Slots are plain closures so the engine never inspects the instance:
//
//	svc := &LegacyService{}
//	err := injector.InjectMembers(
//		di.Member{Name: "db", Key: di.KeyOf[Database](), Assign: func(v any) { svc.DB = v.(Database) }},
//		di.Member{Name: "log", Key: di.KeyOf[Logger](), Assign: func(v any) { svc.Log = v.(Logger) }},
//	)
type Member struct {
	Name     string
	Key      Key
	Optional bool
	Assign   func(value any)
}

// InjectMembers resolves each member's Key and assigns the result, in
// order. Each member is its own resolution call.
//
// The first failing member aborts the whole call with a MemberError naming
// that member; members assigned before the failure remain assigned (no
// rollback), so a partially injected instance must be treated as unusable.
// An absent optional member leaves its slot untouched and is not a failure.
func (in *Injector) InjectMembers(members ...Member) error {
	for _, m := range members {
		if m.Assign == nil {
			return MemberError{Name: m.Name, Key: m.Key, Cause: ErrNilAssign}
		}
		v, ok, err := in.resolve(m.Key, newResolutionContext(), m.Optional)
		if err != nil {
			return MemberError{Name: m.Name, Key: m.Key, Cause: err}
		}
		if !ok {
			continue
		}
		m.Assign(v)
	}
	return nil
}
