package logging

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewLogger(t *testing.T) {
	t.Run("unknown level", func(t *testing.T) {
		_, err := NewLogger(&Config{Level: "verbose"})
		assert.Error(t, err)
	})

	t.Run("production writes json to file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "app.log")
		logger, err := NewLogger(&Config{Level: "info", Env: "production", FilePath: path, AppID: "regform"})
		require.NoError(t, err)

		logger.Debug("dropped")
		logger.Info("kept", zap.String("registration.field", "email"))
		require.NoError(t, logger.Sync())

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(content), `"message":"kept"`)
		assert.Contains(t, string(content), `"service.id":"regform"`)
		assert.Contains(t, string(content), `"@timestamp"`)
		assert.NotContains(t, string(content), "dropped")
	})
}

func TestLoggerInContext(t *testing.T) {
	assert.NotNil(t, ExtractLoggerFromContext(context.Background()))

	logger := zap.NewExample()
	ctx := SetLoggerInContext(context.Background(), logger)
	assert.Same(t, logger, ExtractLoggerFromContext(ctx))
}
