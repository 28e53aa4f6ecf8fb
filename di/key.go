package di

import (
	"reflect"
	"strconv"
)

// Qualifier disambiguates multiple bindings of one contract.
//
// Implementations must be comparable values (Keys are used as map keys).
// The built-in string qualifier is created with NamedQualifier.
type Qualifier interface {
	// Qualify returns the stable textual form used in diagnostics.
	Qualify() string
}

// named is the built-in string-based qualifier.
type named string

// Qualify implements Qualifier.
func (n named) Qualify() string { return "named " + strconv.Quote(string(n)) }

// NamedQualifier returns a string-based qualifier.
//
// Qualifiers are typically fixed at the call site:
//
//	primary := di.Named[Database]("primary")
//	replica := di.Named[Database]("replica")
func NamedQualifier(name string) Qualifier { return named(name) }

// Key identifies a binding: a contract identity plus an optional qualifier.
//
// Keys are immutable, value-equal and usable as map keys. Two Keys are
// equal iff both the contract and the qualifier match; an unqualified Key
// never matches a qualified binding of the same contract, and vice versa.
type Key struct {
	contract  reflect.Type
	qualifier Qualifier
}

// KeyOf returns the unqualified Key for contract T.
func KeyOf[T any]() Key {
	return Key{contract: typeOf[T]()}
}

// KeyFor returns the Key for contract T qualified by q.
// A nil q yields the unqualified Key.
func KeyFor[T any](q Qualifier) Key {
	return Key{contract: typeOf[T](), qualifier: q}
}

// Named returns the Key for contract T with a string qualifier.
func Named[T any](name string) Key {
	return KeyFor[T](NamedQualifier(name))
}

// Contract returns the contract identity.
func (k Key) Contract() reflect.Type { return k.contract }

// Qualifier returns the qualifier, or nil for unqualified Keys.
func (k Key) Qualifier() Qualifier { return k.qualifier }

// IsZero reports whether k is the zero Key (no contract).
func (k Key) IsZero() bool { return k.contract == nil }

// String renders the Key for diagnostics.
func (k Key) String() string {
	if k.contract == nil {
		return "<zero key>"
	}
	if k.qualifier == nil {
		return k.contract.String()
	}
	return k.contract.String() + "[" + k.qualifier.Qualify() + "]"
}

// typeOf resolves the reflect identity of T without requiring a value,
// so interface contracts keep their interface identity.
func typeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

func quote(s string) string { return strconv.Quote(s) }
