package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("Reads the yaml file and applies defaults", func(t *testing.T) {
		// Given: a config file that sets only some values
		path := filepath.Join(t.TempDir(), "config.yml")
		content := "log-level: debug\nredis:\n  host: redis\ngame:\n  default-grid-size: 6\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

		// When: the config is loaded
		conf, err := Load(path)
		require.NoError(t, err)

		// Then: file values win and the rest falls back to defaults
		assert.Equal(t, "debug", conf.LogLevel)
		assert.Equal(t, "9090", conf.HTTPPort)
		assert.Equal(t, 30*time.Second, conf.ReconnectTimeout)
		assert.Equal(t, "redis:6379", conf.Redis.GetRedisAddr())
		assert.Equal(t, 6, conf.Game.DefaultGridSize)
		assert.Equal(t, 3, conf.Game.MinGridSize)
		assert.Equal(t, 8, conf.Game.MaxGridSize)
		assert.Equal(t, 2, conf.Game.DefaultPlayers)
	})

	t.Run("Missing file", func(t *testing.T) {
		// When: a missing file is loaded
		_, err := Load(filepath.Join(t.TempDir(), "missing.yml"))

		// Then: an error is returned
		require.Error(t, err)
		assert.Panics(t, func() { MustLoad(filepath.Join(t.TempDir(), "missing.yml")) })
	})

	t.Run("Environment only", func(t *testing.T) {
		// Given: configuration passed through the environment
		t.Setenv("SOCKET_PORT", "7000")

		// When: no file is given
		conf, err := Load("")
		require.NoError(t, err)

		// Then: env values and defaults are used
		assert.Equal(t, "7000", conf.SocketPort)
		assert.Equal(t, 4, conf.Game.DefaultGridSize)
	})
}
