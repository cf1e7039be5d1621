package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mapsee-lab/placesync/internal/config"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

const validConfig = `
debug: true
database:
  host: localhost
  dbname: placesync
webhook:
  api_key: secret-key
notify:
  gateway_url: http://localhost:9090/push
`

func TestLoad_ValidConfig(t *testing.T) {
	path := writeConfigFile(t, validConfig)

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.True(t, cfg.Debug)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, "placesync", cfg.Database.DBName)
	assert.Equal(t, "secret-key", cfg.Webhook.APIKey)

	// Defaults fill the rest.
	assert.Equal(t, ":8080", cfg.Server.Address)
	assert.Equal(t, "5432", cfg.Database.Port)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, config.DefaultSendTimeout, cfg.Notify.SendTimeout)
	assert.Equal(t, config.DefaultMaxConcurrentSends, cfg.Notify.MaxConcurrent)
	assert.Equal(t, time.Hour, cfg.RefData.TTL)
}

func TestLoad_MissingRequiredFields(t *testing.T) {
	testCases := []struct {
		name    string
		content string
	}{
		{
			name: "missing database host",
			content: `
database:
  dbname: placesync
webhook:
  api_key: k
notify:
  gateway_url: http://localhost:9090/push
`,
		},
		{
			name: "missing webhook api key",
			content: `
database:
  host: localhost
  dbname: placesync
notify:
  gateway_url: http://localhost:9090/push
`,
		},
		{
			name: "missing notify gateway url",
			content: `
database:
  host: localhost
  dbname: placesync
webhook:
  api_key: k
`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeConfigFile(t, tc.content)
			_, err := config.Load(path)
			assert.Error(t, err)
		})
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeConfigFile(t, validConfig)

	t.Setenv("POSTGRES_HOST", "db.internal")
	t.Setenv("CALLBACK_API_KEY", "env-key")
	t.Setenv("PLACESYNC_PORT", "9000")
	t.Setenv("NOTIFY_MAX_CONCURRENT", "16")
	t.Setenv("APP_DEBUG", "no")

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, "env-key", cfg.Webhook.APIKey)
	assert.Equal(t, ":9000", cfg.Server.Address)
	assert.Equal(t, 16, cfg.Notify.MaxConcurrent)
	assert.False(t, cfg.Debug)
}

func TestLoad_FileNotFound(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
