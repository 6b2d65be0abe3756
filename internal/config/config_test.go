package config_test

import (
	"testing"

	"github.com/api-sage/account-management/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_DSN", "")
	t.Setenv("HTTP_ADDR", "")
	t.Setenv("DEFAULT_BRANCH_ID", "")
	t.Setenv("ACCOUNT_NUMBER_MAX_ATTEMPTS", "")
	t.Setenv("SEED_SAMPLE_DATA", "")

	cfg, err := config.Load()

	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "BR001", cfg.DefaultBranchID)
	assert.Equal(t, "migrations", cfg.MigrationsDir)
	assert.Equal(t, 5, cfg.NumberMaxAttempts)
	assert.False(t, cfg.SeedSampleData)
	assert.Contains(t, cfg.DatabaseDSN, "dbname=account_management_db")
	assert.Contains(t, cfg.DatabaseDSN, "sslmode=disable")
}

func TestLoadNormalizesSemicolonConnectionString(t *testing.T) {
	t.Setenv("DATABASE_DSN", "Host=db.internal;Port=5433;Database=accounts;Username=svc;Password=secret;Timeout=10;CommandTimeout=20")

	cfg, err := config.Load()

	require.NoError(t, err)
	assert.Contains(t, cfg.DatabaseDSN, "host=db.internal")
	assert.Contains(t, cfg.DatabaseDSN, "port=5433")
	assert.Contains(t, cfg.DatabaseDSN, "dbname=accounts")
	assert.Contains(t, cfg.DatabaseDSN, "user=svc")
	assert.Contains(t, cfg.DatabaseDSN, "password=secret")
	assert.Contains(t, cfg.DatabaseDSN, "connect_timeout=10")
	assert.Contains(t, cfg.DatabaseDSN, "statement_timeout=20s")
	assert.Contains(t, cfg.DatabaseDSN, "sslmode=disable")
}

func TestLoadKeepsExplicitSSLMode(t *testing.T) {
	t.Setenv("DATABASE_DSN", "Host=db.internal;Database=accounts;SslMode=require")

	cfg, err := config.Load()

	require.NoError(t, err)
	assert.Contains(t, cfg.DatabaseDSN, "sslmode=require")
	assert.NotContains(t, cfg.DatabaseDSN, "sslmode=disable")
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("DEFAULT_BRANCH_ID", "BR042")
	t.Setenv("ACCOUNT_NUMBER_MAX_ATTEMPTS", "8")
	t.Setenv("SEED_SAMPLE_DATA", "true")

	cfg, err := config.Load()

	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "BR042", cfg.DefaultBranchID)
	assert.Equal(t, 8, cfg.NumberMaxAttempts)
	assert.True(t, cfg.SeedSampleData)
}

func TestLoadRejectsBadMaxAttempts(t *testing.T) {
	t.Setenv("ACCOUNT_NUMBER_MAX_ATTEMPTS", "0")

	_, err := config.Load()
	require.Error(t, err)

	t.Setenv("ACCOUNT_NUMBER_MAX_ATTEMPTS", "many")

	_, err = config.Load()
	require.Error(t, err)
}
