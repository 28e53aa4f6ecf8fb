// Package confload is the configuration collaborator: it loads dotenv
// files merged over the process environment and exposes typed getters. The
// loaded environment is bound into containers as an ordinary instance.
package confload

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/kettleby/wirebox/di"
)

// MissingKeyError is returned by Require for absent keys.
type MissingKeyError struct{ Key string }

// Error implements the error interface.
func (e MissingKeyError) Error() string {
	return "confload: missing key " + strconv.Quote(e.Key)
}

// Env is an immutable snapshot of configuration values: dotenv files first,
// process environment as fallback.
type Env struct {
	values map[string]string
}

// Load reads the given dotenv files into a snapshot. Files listed later
// override earlier ones; a missing file is an error. Load with no files
// returns a snapshot backed only by the process environment.
func Load(files ...string) (*Env, error) {
	values := make(map[string]string)
	for _, f := range files {
		m, err := godotenv.Read(f)
		if err != nil {
			return nil, err
		}
		for k, v := range m {
			values[k] = v
		}
	}
	return &Env{values: values}, nil
}

// lookup checks the snapshot first, then the process environment.
func (e *Env) lookup(key string) (string, bool) {
	if v, ok := e.values[key]; ok {
		return v, true
	}
	return os.LookupEnv(key)
}

// String returns the value for key, or def when absent.
func (e *Env) String(key, def string) string {
	if v, ok := e.lookup(key); ok {
		return v
	}
	return def
}

// Require returns the value for key or a MissingKeyError.
func (e *Env) Require(key string) (string, error) {
	if v, ok := e.lookup(key); ok {
		return v, nil
	}
	return "", MissingKeyError{Key: key}
}

// Int returns the integer value for key, or def when absent or malformed.
func (e *Env) Int(key string, def int) int {
	v, ok := e.lookup(key)
	if !ok {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

// Bool returns the boolean value for key, or def when absent or malformed.
// Accepted spellings are those of strconv.ParseBool.
func (e *Env) Bool(key string, def bool) bool {
	v, ok := e.lookup(key)
	if !ok {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

// Duration returns the duration value for key, or def when absent or
// malformed. Values use time.ParseDuration syntax ("250ms", "2h45m").
func (e *Env) Duration(key string, def time.Duration) time.Duration {
	v, ok := e.lookup(key)
	if !ok {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}

// Module loads the given dotenv files and returns a registry binding the
// snapshot as the process-wide *Env.
func Module(files ...string) (*di.Registry, error) {
	env, err := Load(files...)
	if err != nil {
		return nil, err
	}
	reg := di.NewRegistry()
	if err := reg.Bind(di.KeyOf[*Env](), di.Instance(env), di.GlobalSingleton); err != nil {
		return nil, err
	}
	return reg, nil
}
