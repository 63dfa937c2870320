package configuration

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestApplyDefaults verifies the documented default policies are filled in
// when no config file or environment overrides are present.
func TestApplyDefaults(t *testing.T) {
	var cfg Config
	applyDefaults(&cfg)

	require.Equal(t, 10001, cfg.App.Port)
	require.Equal(t, 100, cfg.Cache.Capacity)
	require.Equal(t, 24, cfg.Cache.TTLHours)
	require.Equal(t, 60, cfg.Cache.SweepIntervalMinutes)

	// metadata: higher ceiling, short window; transcript: lower ceiling, long window
	require.Equal(t, 30, cfg.RateLimit.Metadata.MaxRequests)
	require.Equal(t, 60, cfg.RateLimit.Metadata.WindowSeconds)
	require.Equal(t, 10, cfg.RateLimit.Transcript.MaxRequests)
	require.Equal(t, 600, cfg.RateLimit.Transcript.WindowSeconds)
	require.Greater(t, cfg.RateLimit.Metadata.MaxRequests, cfg.RateLimit.Transcript.MaxRequests)
	require.Less(t, cfg.RateLimit.Metadata.WindowSeconds, cfg.RateLimit.Transcript.WindowSeconds)
}

// TestApplyDefaultsPreservesExplicitValues ensures configured values are not
// overwritten by the defaults pass.
func TestApplyDefaultsPreservesExplicitValues(t *testing.T) {
	cfg := Config{}
	cfg.App.Port = 8080
	cfg.Cache.Capacity = 10
	cfg.RateLimit.Metadata.MaxRequests = 5
	applyDefaults(&cfg)

	require.Equal(t, 8080, cfg.App.Port)
	require.Equal(t, 10, cfg.Cache.Capacity)
	require.Equal(t, 5, cfg.RateLimit.Metadata.MaxRequests)
}
