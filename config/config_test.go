package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	require.Equal(t, "development", cfg.Environment)
	require.True(t, cfg.IsDevelopment())
	require.Equal(t, "0.0.0.0:8080", cfg.Server.Address)
	require.Equal(t, 10*time.Second, cfg.Store.Timeout)
	require.Equal(t, 24*time.Hour, cfg.Worker.SnapshotInterval)
	require.False(t, cfg.Redis.Enabled)
	require.Equal(t, "campaign-events", cfg.Azure.QueueName)
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("CAMPAIGN_SERVER_ADDRESS", "127.0.0.1:9000")
	t.Setenv("CAMPAIGN_STORE_TIMEOUT", "3s")
	t.Setenv("CAMPAIGN_AUTH_JWT_SECRET", "s3cret")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	require.Equal(t, "127.0.0.1:9000", cfg.Server.Address)
	require.Equal(t, 3*time.Second, cfg.Store.Timeout)
	require.Equal(t, "s3cret", cfg.Auth.JWTSecret)
}

func TestFormatIndex(t *testing.T) {
	require.Equal(t, "campaign-advertisers", FormatIndex(ElasticConfig{Prefix: "campaign"}, "advertisers"))
	require.Equal(t, "advertisers", FormatIndex(ElasticConfig{}, "advertisers"))
}
