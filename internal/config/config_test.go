package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-analytics-go/internal/domain/dashboard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setBaseEnv(t *testing.T) {
	t.Helper()
	t.Setenv("JWT_SECRET_KEY", "test-secret")
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("ALERT_THRESHOLDS_FILE", "")
}

func TestLoad_Defaults(t *testing.T) {
	// Setup
	setBaseEnv(t)

	// Act
	cfg, err := Load()

	// Assert
	require.NoError(t, err)
	assert.Equal(t, StoreDriverMemory, cfg.Store.Driver)
	assert.Equal(t, uint(3), cfg.Store.RetryAttempts)
	assert.Equal(t, 30*time.Second, cfg.Store.BreakerTimeout)
	assert.Equal(t, 10*time.Second, cfg.Aggregation.Timeout)
	assert.Equal(t, 25, cfg.Database.MaxConns)
	assert.Equal(t, 5, cfg.Database.MinConns)
	assert.Equal(t, dashboard.DefaultAlertThresholds(), cfg.Alerts)
}

func TestLoad_Overrides(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("STORE_DRIVER", "Postgres")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DB_HOST", "db")
	t.Setenv("APP_TIMEZONE", "Asia/Jakarta")
	t.Setenv("AGGREGATION_CONCURRENCY", "2")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example,")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, StoreDriverPostgres, cfg.Store.Driver)
	assert.Equal(t, "Asia/Jakarta", cfg.App.Timezone.String())
	assert.Equal(t, 2, cfg.Aggregation.Concurrency)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
	assert.Contains(t, cfg.DatabaseURL(), "@db:")
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{"missing secret", map[string]string{"JWT_SECRET_KEY": ""}, "JWT_SECRET_KEY is required"},
		{"postgres without password", map[string]string{"STORE_DRIVER": "postgres", "DB_PASSWORD": ""}, "DB_PASSWORD is required"},
		{"unknown driver", map[string]string{"STORE_DRIVER": "mongo"}, "unsupported STORE_DRIVER"},
		{"pool floor above ceiling", map[string]string{"STORE_DRIVER": "postgres", "DB_PASSWORD": "secret", "DB_MAX_CONNS": "4", "DB_MIN_CONNS": "8"}, "DB_MIN_CONNS must be between 0 and DB_MAX_CONNS (4)"},
		{"bad integer", map[string]string{"APP_PORT": "eighty"}, "invalid APP_PORT"},
		{"bad duration", map[string]string{"AGGREGATION_TIMEOUT": "soon"}, "invalid AGGREGATION_TIMEOUT"},
		{"non-positive rate", map[string]string{"RATE_LIMIT_RPS": "0"}, "RATE_LIMIT_RPS must be positive"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setBaseEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load()

			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestParseAlertThresholds_MergesOverDefaults(t *testing.T) {
	thresholds := dashboard.DefaultAlertThresholds()
	raw := []byte(`
team_leader:
  absent_ratio: 0.5
admin:
  pending_asset_requests: 0
`)

	err := ParseAlertThresholds(raw, &thresholds)

	require.NoError(t, err)
	assert.Equal(t, 0.5, thresholds.TeamLeader.AbsentRatio)
	assert.Equal(t, 0.20, thresholds.TeamLeader.LateRatio)
	assert.Equal(t, int64(0), thresholds.Admin.PendingAssetRequests)
	assert.Equal(t, int64(10), thresholds.Admin.PendingLeaves)
	assert.Equal(t, dashboard.DefaultAlertThresholds().HRManager, thresholds.HRManager)
}

func TestParseAlertThresholds_Rejects(t *testing.T) {
	thresholds := dashboard.DefaultAlertThresholds()

	assert.ErrorContains(t, ParseAlertThresholds([]byte("hr_manager:\n  late_ratio: -0.1\n"), &thresholds), "must not be negative")
	assert.ErrorContains(t, ParseAlertThresholds([]byte("admin: [1, 2"), &thresholds), "failed to parse alert thresholds")
}

func TestLoadAlertThresholds_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "alerts.yaml")
	require.NoError(t, os.WriteFile(path, []byte("hr_manager:\n  pending_leaves: 25\n"), 0o600))

	thresholds, err := LoadAlertThresholds(path)

	require.NoError(t, err)
	assert.Equal(t, int64(25), thresholds.HRManager.PendingLeaves)

	_, err = LoadAlertThresholds(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "failed to read ALERT_THRESHOLDS_FILE")
}
