package di_test

import (
	"testing"

	"github.com/kettleby/wirebox/di"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestDependencies_CopyAndOrder verifies the declared dependency list is
// returned in order and as a copy.
func TestDependencies_CopyAndOrder(t *testing.T) {
	t.Parallel()

	a := di.Named[Database]("a")
	b := di.Named[Database]("b")
	p := di.Construct(
		func(_ []any) (any, error) { return nil, nil },
		di.Dep(a),
		di.OptionalDep(b),
	)

	deps := p.Dependencies()
	require.Len(t, deps, 2)
	assert.Equal(t, di.Dependency{Key: a}, deps[0])
	assert.Equal(t, di.Dependency{Key: b, Optional: true}, deps[1])

	deps[0] = di.Dependency{}
	assert.Equal(t, di.Dependency{Key: a}, p.Dependencies()[0])
}

// TestDependencies_NoneForLeafProviders verifies factory and instance
// providers declare no constructor dependencies.
func TestDependencies_NoneForLeafProviders(t *testing.T) {
	t.Parallel()

	assert.Nil(t, di.Instance("x").Dependencies())
	assert.Nil(t, di.Factory(func(*di.Injector) (any, error) { return nil, nil }).Dependencies())
}
