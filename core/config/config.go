package config

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// ErrNilConfig is returned when Load is called with a nil pointer.
var ErrNilConfig = errors.New("config: nil config pointer")

var (
	cache      sync.Map // reflect.Type -> loaded value
	dotenvOnce sync.Once
)

// Load parses environment variables into cfg. The first successful load of a
// given type is cached; later Load calls for the same type return the cached
// value, so every subsystem sees identical configuration.
func Load[T any](cfg *T) error {
	if cfg == nil {
		return ErrNilConfig
	}

	// Missing .env files are expected outside local development.
	dotenvOnce.Do(func() {
		_ = godotenv.Load()
	})

	typ := reflect.TypeOf(*cfg)
	if cached, ok := cache.Load(typ); ok {
		*cfg = cached.(T)
		return nil
	}

	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("config: failed to parse %s from environment: %w", typ, err)
	}

	// LoadOrStore keeps the winner of a concurrent first load so all callers
	// observe the same value.
	cached, _ := cache.LoadOrStore(typ, *cfg)
	*cfg = cached.(T)
	return nil
}

// MustLoad is like Load but panics on failure. Useful during startup where a
// missing required variable should stop the process.
func MustLoad[T any](cfg *T) {
	if err := Load(cfg); err != nil {
		panic(err)
	}
}
