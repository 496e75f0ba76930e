package infra

import (
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFlagSet(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs)
	require.NoError(t, fs.Parse(args))
	return fs
}

func TestInitConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, err := InitConfig(newFlagSet(t, "--app_id", "regform"))
		require.NoError(t, err)
		assert.Equal(t, "regform", cfg.AppID)
		assert.Equal(t, 8081, cfg.Port)
		assert.Equal(t, EnvDevelopment, cfg.Env)
		assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
		assert.Equal(t, "info", cfg.Logging.Level)
		assert.Equal(t, 21, cfg.Security.IDLength)
		assert.Equal(t, int64(4096), cfg.Live.ReadLimit)
		assert.False(t, cfg.DevOP.APM)
	})

	t.Run("env overrides flags", func(t *testing.T) {
		t.Setenv("REGFORM_APP_ID", "from-env")
		t.Setenv("REGFORM_LOGGING_LEVEL", "warn")
		cfg, err := InitConfig(newFlagSet(t))
		require.NoError(t, err)
		assert.Equal(t, "from-env", cfg.AppID)
		assert.Equal(t, "warn", cfg.Logging.Level)
	})

	t.Run("missing app id", func(t *testing.T) {
		_, err := InitConfig(newFlagSet(t))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "app_id")
	})

	t.Run("invalid values are all reported", func(t *testing.T) {
		_, err := InitConfig(newFlagSet(t, "--app_id", "x", "--env", "staging", "--logging.level", "trace"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "env")
		assert.Contains(t, err.Error(), "level")
	})
}
