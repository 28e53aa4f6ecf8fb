package di

import (
	"errors"
	"reflect"
	"strings"
)

var (
	// ErrUnbound is the match target for UnboundError values.
	ErrUnbound = errors.New("di: unbound key")

	// ErrCycle is the match target for CycleError values.
	ErrCycle = errors.New("di: cyclic dependency")

	// ErrBuild is the match target for BuildError values.
	ErrBuild = errors.New("di: provider build failed")

	// ErrNilProvider is returned when a binding is registered with a nil provider.
	// Bind helpers return a more specific typed error with key context
	// (see NilProviderError).
	ErrNilProvider = errors.New("di: nil provider")

	// ErrNilAssign is returned when a members-injection slot has no assign function.
	ErrNilAssign = errors.New("di: nil assign function")

	// ErrBindingMode is the match target for BindingModeError values.
	ErrBindingMode = errors.New("di: single/multi binding mode conflict")

	// ErrIncompatible is the match target for IncompatibleProviderError values.
	ErrIncompatible = errors.New("di: provider incompatible with contract")
)

// UnboundError is returned when resolution reaches a required Key that has
// no binding. Chain is the full request path from the root Key of the
// resolution call down to the missing Key (the last element).
type UnboundError struct {
	Key   Key
	Chain []Key
}

// Error implements the error interface.
func (e UnboundError) Error() string {
	// Example: di: no binding for pkg.Logger (required by pkg.App -> pkg.Service)
	msg := "di: no binding for " + e.Key.String()
	if len(e.Chain) > 1 {
		msg += " (required by " + joinKeys(e.Chain[:len(e.Chain)-1], " -> ") + ")"
	}
	return msg
}

// Is reports a match against ErrUnbound for errors.Is.
func (e UnboundError) Is(target error) bool { return target == ErrUnbound }

// CycleError is returned when a Key depends on itself, directly or
// transitively, within one resolution call. Path is the ordered cycle,
// from the first repeated Key back to itself.
type CycleError struct {
	Path []Key
}

// Error implements the error interface.
func (e CycleError) Error() string {
	// Example: di: dependency cycle pkg.A -> pkg.B -> pkg.A
	return "di: dependency cycle " + joinKeys(e.Path, " -> ")
}

// Is reports a match against ErrCycle for errors.Is.
func (e CycleError) Is(target error) bool { return target == ErrCycle }

// BuildError wraps a failure raised by a provider's build or factory
// function. Cause preserves the original error (or recovered panic).
type BuildError struct {
	Key   Key
	Cause error
}

// Error implements the error interface.
func (e BuildError) Error() string {
	msg := "di: building " + e.Key.String() + " failed"
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Is reports a match against ErrBuild for errors.Is.
func (e BuildError) Is(target error) bool { return target == ErrBuild }

// Unwrap exposes the original cause for errors.Is / errors.As chains.
func (e BuildError) Unwrap() error { return e.Cause }

// MemberError is returned by InjectMembers when one member slot fails.
// Members assigned before the failing slot remain assigned.
type MemberError struct {
	Name  string
	Key   Key
	Cause error
}

// Error implements the error interface.
func (e MemberError) Error() string {
	msg := "di: injecting member " + quote(e.Name) + " (" + e.Key.String() + ") failed"
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap exposes the member's resolution error.
func (e MemberError) Unwrap() error { return e.Cause }

// NilProviderError indicates a nil provider for a specific Key.
type NilProviderError struct{ Key Key }

// Error implements the error interface.
func (e NilProviderError) Error() string {
	return "di: nil provider for " + e.Key.String()
}

// Is reports a match against ErrNilProvider for errors.Is.
func (e NilProviderError) Is(target error) bool { return target == ErrNilProvider }

// BindingModeError indicates a Key registered under one binding mode
// (single or multi) being re-registered under the other.
type BindingModeError struct {
	Key Key

	// Multi is true when the existing registration is a multi-binding.
	Multi bool
}

// Error implements the error interface.
func (e BindingModeError) Error() string {
	if e.Multi {
		return "di: " + e.Key.String() + " already has multi-bindings"
	}
	return "di: " + e.Key.String() + " already has a single binding"
}

// Is reports a match against ErrBindingMode for errors.Is.
func (e BindingModeError) Is(target error) bool { return target == ErrBindingMode }

// IncompatibleProviderError indicates a provider whose product cannot
// satisfy the contract of the Key it is being bound to. The check runs
// once at binding time, never during resolution.
type IncompatibleProviderError struct {
	Key Key

	// Got is the provider's product type.
	Got reflect.Type
}

// Error implements the error interface.
func (e IncompatibleProviderError) Error() string {
	return "di: provider for " + e.Key.String() + " produces " + e.Got.String() +
		" which does not satisfy the contract"
}

// Is reports a match against ErrIncompatible for errors.Is.
func (e IncompatibleProviderError) Is(target error) bool { return target == ErrIncompatible }

// joinKeys renders a Key path for diagnostics.
func joinKeys(keys []Key, sep string) string {
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k.String()
	}
	return strings.Join(parts, sep)
}
