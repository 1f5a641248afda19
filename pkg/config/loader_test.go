package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notification-service/pkg/config"
)

func TestLoad(t *testing.T) {
	t.Run("parses env tags with defaults", func(t *testing.T) {
		type testConfig struct {
			Port    string        `env:"TEST_LOADER_PORT" envDefault:"8080"`
			Timeout time.Duration `env:"TEST_LOADER_TIMEOUT" envDefault:"5s"`
		}
		t.Cleanup(config.ResetCache)

		var cfg testConfig
		require.NoError(t, config.Load(&cfg))
		assert.Equal(t, "8080", cfg.Port)
		assert.Equal(t, 5*time.Second, cfg.Timeout)
	})

	t.Run("reads environment overrides", func(t *testing.T) {
		type overrideConfig struct {
			Port string `env:"TEST_LOADER_OVERRIDE_PORT" envDefault:"8080"`
		}
		t.Setenv("TEST_LOADER_OVERRIDE_PORT", "9090")
		t.Cleanup(config.ResetCache)

		var cfg overrideConfig
		require.NoError(t, config.Load(&cfg))
		assert.Equal(t, "9090", cfg.Port)
	})

	t.Run("caches per type", func(t *testing.T) {
		type cachedConfig struct {
			Port string `env:"TEST_LOADER_CACHED_PORT" envDefault:"8080"`
		}
		t.Setenv("TEST_LOADER_CACHED_PORT", "9090")
		t.Cleanup(config.ResetCache)

		var first cachedConfig
		require.NoError(t, config.Load(&first))

		// Later loads see the cached value even after the env changes.
		t.Setenv("TEST_LOADER_CACHED_PORT", "7070")
		var second cachedConfig
		require.NoError(t, config.Load(&second))
		assert.Equal(t, "9090", second.Port)
	})

	t.Run("rejects nil destination", func(t *testing.T) {
		type nilConfig struct{}
		var cfg *nilConfig
		assert.ErrorIs(t, config.Load(cfg), config.ErrNilPointer)
	})

	t.Run("reports parse failures", func(t *testing.T) {
		type badConfig struct {
			Count int `env:"TEST_LOADER_BAD_COUNT"`
		}
		t.Setenv("TEST_LOADER_BAD_COUNT", "not-a-number")
		t.Cleanup(config.ResetCache)

		var cfg badConfig
		assert.ErrorIs(t, config.Load(&cfg), config.ErrParsingConfig)
	})
}

func TestMustLoad(t *testing.T) {
	t.Run("panics on failure", func(t *testing.T) {
		type badConfig struct {
			Count int `env:"TEST_MUSTLOAD_BAD_COUNT"`
		}
		t.Setenv("TEST_MUSTLOAD_BAD_COUNT", "not-a-number")
		t.Cleanup(config.ResetCache)

		assert.Panics(t, func() {
			var cfg badConfig
			config.MustLoad(&cfg)
		})
	})
}
