// Package discovery feeds candidate bindings into di registries.
//
// It replaces runtime package scanning with structural enumeration:
// packages declare their candidates into a Catalog (usually from init or a
// module setup function), and configuration filters them by a name pattern
// and installs the survivors through ordinary Bind/BindMulti calls. The
// resolution engine never knows how a binding was found.
package discovery

import (
	"errors"
	"path"
	"strconv"
	"sync"

	"github.com/kettleby/wirebox/di"
)

var (
	// ErrNoName is returned when a candidate is declared without a name.
	ErrNoName = errors.New("discovery: candidate has no name")

	// ErrNilCandidateProvider is returned when a candidate is declared
	// without a provider.
	ErrNilCandidateProvider = errors.New("discovery: candidate has nil provider")

	// ErrBadPattern is returned for malformed name patterns.
	ErrBadPattern = errors.New("discovery: malformed name pattern")
)

// DuplicateCandidateError is returned when a candidate name is declared twice.
type DuplicateCandidateError struct{ Name string }

// Error implements the error interface.
func (e DuplicateCandidateError) Error() string {
	return "discovery: duplicate candidate " + strconv.Quote(e.Name)
}

// Candidate pairs a Key with a candidate implementation provider.
type Candidate struct {
	// Name is the discovery identifier, matched against patterns
	// (e.g. "handlers.CreateFact").
	Name string

	Key      di.Key
	Provider *di.Provider
	Scope    di.ScopeKind

	// Multi appends the candidate to the Key's multi-binding list instead
	// of registering a single-valued binding.
	Multi bool
}

// Catalog is an ordered collection of declared candidates.
type Catalog struct {
	mu         sync.RWMutex
	candidates []Candidate
	names      map[string]struct{}
}

// NewCatalog returns an empty Catalog.
func NewCatalog() *Catalog {
	return &Catalog{names: make(map[string]struct{})}
}

// Default is the process-wide catalog packages declare into from init.
var Default = NewCatalog()

// Add declares a candidate. Names must be non-empty and unique within the
// catalog; declaration order is preserved through Discover and Install.
func (c *Catalog) Add(cand Candidate) error {
	if cand.Name == "" {
		return ErrNoName
	}
	if cand.Provider == nil {
		return ErrNilCandidateProvider
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if _, dup := c.names[cand.Name]; dup {
		return DuplicateCandidateError{Name: cand.Name}
	}
	c.names[cand.Name] = struct{}{}
	c.candidates = append(c.candidates, cand)
	return nil
}

// MustAdd is Add for init-time declarations, panicking on invalid candidates.
func (c *Catalog) MustAdd(cand Candidate) {
	if err := c.Add(cand); err != nil {
		panic(err)
	}
}

// Discover returns the candidates whose names match pattern, in
// declaration order. Patterns use path.Match syntax ("handlers.*").
func (c *Catalog) Discover(pattern string) ([]Candidate, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var out []Candidate
	for _, cand := range c.candidates {
		ok, err := path.Match(pattern, cand.Name)
		if err != nil {
			return nil, ErrBadPattern
		}
		if ok {
			out = append(out, cand)
		}
	}
	return out, nil
}

// Install registers every candidate matching pattern into reg, exactly as
// manual Bind/BindMulti calls would.
func (c *Catalog) Install(reg *di.Registry, pattern string) error {
	matched, err := c.Discover(pattern)
	if err != nil {
		return err
	}
	for _, cand := range matched {
		if cand.Multi {
			if err := reg.BindMulti(cand.Key, cand.Provider); err != nil {
				return err
			}
			continue
		}
		if err := reg.Bind(cand.Key, cand.Provider, cand.Scope); err != nil {
			return err
		}
	}
	return nil
}
