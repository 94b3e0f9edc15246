package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *Config {
	return &Config{
		Enabled:       true,
		DefaultLimit:  100,
		DefaultWindow: time.Minute,
		EndpointConfigs: []EndpointConfig{
			{Path: "/generate", Method: "POST", Limit: 10, Window: time.Hour, Burst: 2},
			{Path: "/jobs/", Method: "GET", Limit: 100, Window: time.Minute, Burst: 5},
		},
	}
}

func TestLimiter_BurstThenDeny(t *testing.T) {
	l := NewLimiter(testConfig())
	defer l.Stop()

	// Burst of 2 allowed, third denied.
	allowed, _ := l.Allow("1.2.3.4", "/generate", "POST")
	assert.True(t, allowed)
	allowed, _ = l.Allow("1.2.3.4", "/generate", "POST")
	assert.True(t, allowed)

	allowed, info := l.Allow("1.2.3.4", "/generate", "POST")
	assert.False(t, allowed)
	assert.Greater(t, info.RetryAfter, time.Duration(0))
}

func TestLimiter_ClientsAreIndependent(t *testing.T) {
	l := NewLimiter(testConfig())
	defer l.Stop()

	for i := 0; i < 2; i++ {
		allowed, _ := l.Allow("1.1.1.1", "/generate", "POST")
		require.True(t, allowed)
	}
	allowed, _ := l.Allow("1.1.1.1", "/generate", "POST")
	assert.False(t, allowed)

	// A different client still has a full bucket.
	allowed, _ = l.Allow("2.2.2.2", "/generate", "POST")
	assert.True(t, allowed)
}

func TestLimiter_HealthIsUnlimited(t *testing.T) {
	cfg := testConfig()
	cfg.DefaultLimit = 1
	l := NewLimiter(cfg)
	defer l.Stop()

	for i := 0; i < 50; i++ {
		allowed, _ := l.Allow("1.2.3.4", "/health", "GET")
		require.True(t, allowed)
	}
}

func TestLimiter_DisabledAllowsEverything(t *testing.T) {
	l := NewLimiter(&Config{Enabled: false})
	defer l.Stop()

	for i := 0; i < 100; i++ {
		allowed, _ := l.Allow("1.2.3.4", "/generate", "POST")
		require.True(t, allowed)
	}
}

func TestMatchEndpoint(t *testing.T) {
	configs := testConfig().EndpointConfigs

	exact := matchEndpoint("/generate", "POST", configs)
	require.NotNil(t, exact)
	assert.Equal(t, 10, exact.Limit)

	prefix := matchEndpoint("/jobs/abc123", "GET", configs)
	require.NotNil(t, prefix)
	assert.Equal(t, 100, prefix.Limit)

	assert.Nil(t, matchEndpoint("/unknown", "GET", configs))

	health := matchEndpoint("/health", "GET", configs)
	require.NotNil(t, health)
	assert.Equal(t, 0, health.Limit)
}
