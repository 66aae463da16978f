package clickhouse

import (
	"context"
	"testing"
	"time"

	ch "github.com/ClickHouse/clickhouse-go/v2"
	"github.com/stretchr/testify/assert"
)

func TestOptionsTranslateConfig(t *testing.T) {
	cfg := ClientConfig{Port: 9000, Database: "default", User: "default"}
	for _, opt := range []ClientOption{
		WithHost("ch.internal"),
		WithPort(8123),
		WithDatabase("liquidity"),
		WithCredentials("writer", "secret"),
		WithHTTP(true),
		WithAsyncInsert(true),
		WithMaxExecutionTime(90 * time.Second),
		WithTimeouts(2*time.Second, 0),
	} {
		opt(&cfg)
	}

	o := options(cfg)
	assert.Equal(t, []string{"ch.internal:8123"}, o.Addr)
	assert.Equal(t, ch.HTTP, o.Protocol)
	assert.Equal(t, "liquidity", o.Auth.Database)
	assert.Equal(t, "writer", o.Auth.Username)
	assert.Equal(t, 90, o.Settings["max_execution_time"])
	assert.Equal(t, 1, o.Settings["async_insert"])
	assert.Equal(t, 2*time.Second, o.DialTimeout)
}

func TestNewClientRequiresHost(t *testing.T) {
	_, err := NewClient(context.Background())
	assert.Error(t, err)
}
