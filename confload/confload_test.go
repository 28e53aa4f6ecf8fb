package confload_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/kettleby/wirebox/confload"
	"github.com/kettleby/wirebox/di"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeEnvFile(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
	return p
}

// TestLoad_FileValuesAndTypedGetters verifies dotenv parsing plus the
// typed getters with defaults on absent or malformed values.
func TestLoad_FileValuesAndTypedGetters(t *testing.T) {
	t.Parallel()

	f := writeEnvFile(t, "app.env",
		"APP_NAME=wirebox\nPORT=8080\nDEBUG=true\nTIMEOUT=250ms\nBROKEN_INT=nope\n")

	env, err := confload.Load(f)
	require.NoError(t, err)

	assert.Equal(t, "wirebox", env.String("APP_NAME", "fallback"))
	assert.Equal(t, "fallback", env.String("NO_SUCH_KEY", "fallback"))
	assert.Equal(t, 8080, env.Int("PORT", 1))
	assert.Equal(t, 1, env.Int("BROKEN_INT", 1))
	assert.True(t, env.Bool("DEBUG", false))
	assert.False(t, env.Bool("NO_SUCH_KEY", false))
	assert.Equal(t, 250*time.Millisecond, env.Duration("TIMEOUT", time.Second))
	assert.Equal(t, time.Second, env.Duration("NO_SUCH_KEY", time.Second))
}

// TestLoad_LaterFilesOverride verifies later files win for shared keys.
func TestLoad_LaterFilesOverride(t *testing.T) {
	t.Parallel()

	base := writeEnvFile(t, "base.env", "PORT=8080\nAPP_NAME=base\n")
	local := writeEnvFile(t, "local.env", "PORT=9090\n")

	env, err := confload.Load(base, local)
	require.NoError(t, err)
	assert.Equal(t, 9090, env.Int("PORT", 0))
	assert.Equal(t, "base", env.String("APP_NAME", ""))
}

// TestLoad_MissingFile verifies a missing dotenv file is an error.
func TestLoad_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := confload.Load(filepath.Join(t.TempDir(), "absent.env"))
	require.Error(t, err)
}

// TestRequire verifies Require distinguishes present keys from missing ones.
func TestRequire(t *testing.T) {
	t.Parallel()

	f := writeEnvFile(t, "app.env", "APP_NAME=wirebox\n")
	env, err := confload.Load(f)
	require.NoError(t, err)

	got, err := env.Require("APP_NAME")
	require.NoError(t, err)
	assert.Equal(t, "wirebox", got)

	_, err = env.Require("NO_SUCH_KEY")
	var missing confload.MissingKeyError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, "NO_SUCH_KEY", missing.Key)
}

// TestProcessEnvFallback verifies the snapshot falls back to the process
// environment for keys absent from the files.
func TestProcessEnvFallback(t *testing.T) {
	t.Setenv("CONFLOAD_FALLBACK_CHECK", "from-process")

	env, err := confload.Load()
	require.NoError(t, err)
	assert.Equal(t, "from-process", env.String("CONFLOAD_FALLBACK_CHECK", ""))
}

// TestModule_BindsEnvSnapshot verifies the module exposes the snapshot as
// an injectable instance.
func TestModule_BindsEnvSnapshot(t *testing.T) {
	// Not parallel: the module uses the process-wide singleton scope.
	di.ResetGlobal()
	t.Cleanup(di.ResetGlobal)

	f := writeEnvFile(t, "app.env", "APP_NAME=wired\n")
	mod, err := confload.Module(f)
	require.NoError(t, err)

	reg := di.NewRegistry()
	require.NoError(t, reg.Install(mod))

	env, err := di.Inject[*confload.Env](di.NewInjector(reg))
	require.NoError(t, err)
	assert.Equal(t, "wired", env.String("APP_NAME", ""))
}
