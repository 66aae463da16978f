package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
environment: test
server:
  port: 9090
series:
  mode: hybrid
  seed: 7
metrics:
  change_policy: yoy
cache:
  ttl: 5m
`

func TestParseAppliesDefaults(t *testing.T) {
	c, err := Parse([]byte(sample))
	require.NoError(t, err)

	assert.Equal(t, "test", c.Environment)
	assert.Equal(t, 9090, c.Server.Port)
	assert.Equal(t, "hybrid", c.Series.Mode)
	assert.Equal(t, uint32(7), c.Series.Seed)
	assert.Equal(t, 2020, c.Series.SimStart)
	assert.Equal(t, "yoy", c.Metrics.ChangePolicy)
	assert.Equal(t, 5*time.Minute, c.Cache.TTL)
	assert.Equal(t, "liquidity_series", c.Export.ClickHouse.Table)
	assert.Equal(t, 3.0, c.Export.RateLimit.Burst)
}

func TestValidateRejects(t *testing.T) {
	cases := map[string]string{
		"empty environment": "environment: ''",
		"unknown mode":      "series: {mode: weekly}",
		"unknown policy":    "metrics: {change_policy: mom}",
		"inverted window":   "series: {mode: hybrid, sim_start: 2025, sim_end: 2020}",
		"redis no host":     "cache: {redis: {enabled: true}}",
		"clickhouse host":   "export: {clickhouse: {enabled: true}}",
		"kafka brokers":     "export: {kafka: {enabled: true}}",
		"bad port":          "server: {port: 70000}",
		"negative limit":    "export: {rate_limit: {burst: -1}}",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(doc))
			assert.Error(t, err)
		})
	}
}

func TestEnvOverrides(t *testing.T) {
	c := Default()
	env := map[string]string{
		"DENOMINATOR_ENV": "production",
		"SERIES_MODE":     "hybrid",
		"CHANGE_POLICY":   "yoy",
		"HTTP_PORT":       "8181",
		"REDIS_ADDR":      "cache.internal:6380",
		"KAFKA_BROKERS":   "k1:9092,k2:9092",
		"CLICKHOUSE_HOST": "ch.internal",
	}
	require.NoError(t, c.applyEnv(func(k string) string { return env[k] }))

	assert.Equal(t, "production", c.Environment)
	assert.Equal(t, "hybrid", c.Series.Mode)
	assert.Equal(t, "yoy", c.Metrics.ChangePolicy)
	assert.Equal(t, 8181, c.Server.Port)
	assert.True(t, c.Cache.Redis.Enabled)
	assert.Equal(t, "cache.internal", c.Cache.Redis.Host)
	assert.Equal(t, 6380, c.Cache.Redis.Port)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, c.Export.Kafka.Brokers)
	assert.Equal(t, "ch.internal", c.Export.ClickHouse.Host)
	require.NoError(t, c.Validate())

	bad := Default()
	assert.Error(t, bad.applyEnv(func(k string) string {
		if k == "HTTP_PORT" {
			return "eighty"
		}
		return ""
	}))
}

func TestLoadWithEnvReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o600))

	t.Setenv("CHANGE_POLICY", "cagr")
	c, err := LoadWithEnv(path)
	require.NoError(t, err)
	assert.Equal(t, "cagr", c.Metrics.ChangePolicy)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestSampleConfigLoads(t *testing.T) {
	c, err := Load(filepath.Join("..", "..", "config", "config.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "annual", c.Series.Mode)
}
