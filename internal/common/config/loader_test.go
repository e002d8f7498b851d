// internal/common/config/loader_test.go
package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadFromFile_Defaults(t *testing.T) {
	path := writeConfig(t, `
app:
  name: intent-workers
camunda:
  broker_address: localhost:26500
workers:
  process-user-input:
    enabled: true
  evaluate-expression:
    enabled: false
    timeout: 2000
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "localhost:26500", cfg.Camunda.BrokerAddress)
	assert.Equal(t, 10, cfg.Camunda.MaxJobsActive)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, ":8080", cfg.Server.Addr())
	assert.Equal(t, 5*time.Minute, cfg.Intent.CacheTTLDuration())
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "disable", cfg.Database.Postgres.SSLMode)

	w := GetWorkerConfig(cfg, "process-user-input")
	assert.True(t, w.Enabled)
	assert.Equal(t, 5, w.MaxJobsActive)
	assert.Equal(t, 30000, w.Timeout)
	assert.Equal(t, 3, w.MaxRetries)

	assert.False(t, IsWorkerEnabled(cfg, "evaluate-expression"))
	assert.Equal(t, 2000, GetWorkerConfig(cfg, "evaluate-expression").Timeout)
	assert.True(t, IsWorkerEnabled(cfg, "not-configured"))
}

func TestLoadFromFile_EnvExpansionAndOverride(t *testing.T) {
	t.Setenv("TEST_ZEEBE_HOST", "zeebe:26500")
	t.Setenv("DB_PASSWORD", "s3cret")
	t.Setenv("SERVER_PORT", "9090")

	path := writeConfig(t, `
camunda:
  broker_address: ${TEST_ZEEBE_HOST}
database:
  postgres:
    host: db
    database: intents
    user: intent
intent:
  audit_enabled: true
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "zeebe:26500", cfg.Camunda.BrokerAddress)
	assert.Equal(t, "s3cret", cfg.Database.Postgres.Password)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Contains(t, cfg.Database.Postgres.GetDSN(), "dbname=intents")
}

func TestLoadFromFile_Validation(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{
			name:    "missing broker",
			body:    "app:\n  name: x\n",
			wantErr: "camunda.broker_address is required",
		},
		{
			name:    "audit without postgres",
			body:    "camunda:\n  broker_address: b:1\nintent:\n  audit_enabled: true\n",
			wantErr: "database.postgres.host is required",
		},
		{
			name:    "cache without redis",
			body:    "camunda:\n  broker_address: b:1\nintent:\n  cache_enabled: true\n",
			wantErr: "database.redis.address is required",
		},
		{
			name:    "negative ttl",
			body:    "camunda:\n  broker_address: b:1\nintent:\n  cache_ttl: -5\n",
			wantErr: "intent.cache_ttl must not be negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFromFile(writeConfig(t, tt.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadFromFile_MissingFile(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestGetDuration(t *testing.T) {
	assert.Equal(t, 1500*time.Millisecond, GetDuration(1500))
}
