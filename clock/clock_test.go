package clock_test

import (
	"testing"
	"time"

	"github.com/kettleby/wirebox/clock"
	"github.com/kettleby/wirebox/di"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSystem_Now verifies the system clock tracks wall time.
func TestSystem_Now(t *testing.T) {
	t.Parallel()

	c := clock.System()
	before := time.Now()
	got := c.Now()
	assert.False(t, got.Before(before))
	assert.GreaterOrEqual(t, c.Since(before), time.Duration(0))
}

// TestFixed_NowAndAdvance verifies the pinned clock only moves when told.
func TestFixed_NowAndAdvance(t *testing.T) {
	t.Parallel()

	base := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	c := clock.Fixed(base)

	assert.Equal(t, base, c.Now())
	assert.Equal(t, base, c.Now())

	c.Advance(90 * time.Second)
	assert.Equal(t, base.Add(90*time.Second), c.Now())
	assert.Equal(t, 90*time.Second, c.Since(base))
}

// TestFixed_SleepAdvancesWithoutBlocking verifies Sleep is a time jump.
func TestFixed_SleepAdvancesWithoutBlocking(t *testing.T) {
	t.Parallel()

	base := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	c := clock.Fixed(base)

	start := time.Now()
	c.Sleep(time.Hour)
	require.Less(t, time.Since(start), time.Second)
	assert.Equal(t, base.Add(time.Hour), c.Now())
}

// TestModule_BindsClockContract verifies the module installs a resolvable
// Clock binding, overridable with a test clock.
func TestModule_BindsClockContract(t *testing.T) {
	// Not parallel: the module uses the process-wide singleton scope.
	di.ResetGlobal()
	t.Cleanup(di.ResetGlobal)

	mod, err := clock.Module()
	require.NoError(t, err)
	reg := di.NewRegistry()
	require.NoError(t, reg.Install(mod))

	c, err := di.Inject[clock.Clock](di.NewInjector(reg))
	require.NoError(t, err)
	require.NotNil(t, c)

	// Test override: last registration wins, with a warning on record.
	pinned := clock.Fixed(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, di.RegisterInstance[clock.Clock](reg, pinned))
	got, err := di.Inject[clock.Clock](di.NewInjector(reg))
	require.NoError(t, err)
	assert.Same(t, pinned, got)
	assert.Len(t, reg.Warnings(), 1)
}
