package di_test

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/kettleby/wirebox/di"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestScopeKind_String verifies the diagnostic names of every scope.
func TestScopeKind_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "transient", di.Transient.String())
	assert.Equal(t, "injector-singleton", di.InjectorSingleton.String())
	assert.Equal(t, "global-singleton", di.GlobalSingleton.String())
	assert.Equal(t, "scope(9)", di.ScopeKind(9).String())
}

// TestGlobalSingleton_ConcurrentBuildsOnce verifies the single-flight
// guarantee against the process-wide cache: concurrent resolutions through
// distinct registries still build exactly once.
func TestGlobalSingleton_ConcurrentBuildsOnce(t *testing.T) {
	// Not parallel: touches the process-wide cache.
	di.ResetGlobal()
	t.Cleanup(di.ResetGlobal)

	var calls atomic.Int64
	const n = 32
	results := make([]*widget, n)
	var wg sync.WaitGroup
	start := make(chan struct{})
	for i := 0; i < n; i++ {
		reg := di.NewRegistry()
		require.NoError(t, di.Register[*widget](reg, countingProvider(&calls), di.GlobalSingleton))
		in := di.NewInjector(reg)

		wg.Add(1)
		go func(i int, in *di.Injector) {
			defer wg.Done()
			<-start
			got, err := di.Inject[*widget](in)
			assert.NoError(t, err)
			results[i] = got
		}(i, in)
	}
	close(start)
	wg.Wait()

	require.Equal(t, int64(1), calls.Load())
	for i := 1; i < n; i++ {
		assert.Same(t, results[0], results[i])
	}
}

// TestGlobalSingleton_UnboundRegistryCannotObserve verifies a registry
// without a binding for a Key never returns another registry's global
// singleton for it.
func TestGlobalSingleton_UnboundRegistryCannotObserve(t *testing.T) {
	// Not parallel: touches the process-wide cache.
	di.ResetGlobal()
	t.Cleanup(di.ResetGlobal)

	bound := di.NewRegistry()
	require.NoError(t, di.Register[*widget](bound, countingProvider(new(atomic.Int64)), di.GlobalSingleton))
	_, err := di.Inject[*widget](di.NewInjector(bound))
	require.NoError(t, err)

	empty := di.NewRegistry()
	_, err = di.Inject[*widget](di.NewInjector(empty))
	require.ErrorIs(t, err, di.ErrUnbound)
}

// TestInstanceBinding_IgnoresScope verifies a pre-built instance resolves
// to itself under any declared scope.
func TestInstanceBinding_IgnoresScope(t *testing.T) {
	t.Parallel()

	pg := &postgres{dsn: "fixed"}
	for _, scope := range []di.ScopeKind{di.Transient, di.InjectorSingleton} {
		reg := di.NewRegistry()
		require.NoError(t, reg.Bind(di.KeyOf[Database](), di.Instance(pg), scope))

		got, err := di.Inject[Database](di.NewInjector(reg))
		require.NoError(t, err)
		assert.Same(t, pg, got, "scope %s", scope)
	}
}
