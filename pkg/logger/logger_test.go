package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggerWritesTypedFields(t *testing.T) {
	var buf bytes.Buffer
	log := NewWriter(&buf)

	log.Info("series generated",
		String("mode", "hybrid"),
		Int("rows", 179),
		Float64("index", 4312.5),
		Duration("took", 1500*time.Millisecond),
		Bool("cached", false),
		Error(errors.New("boom")),
	)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "series generated", entry["message"])
	assert.Equal(t, "hybrid", entry["mode"])
	assert.Equal(t, float64(179), entry["rows"])
	assert.Equal(t, 4312.5, entry["index"])
	assert.Equal(t, float64(1500), entry["took"])
	assert.Equal(t, false, entry["cached"])
	assert.Equal(t, "boom", entry["error"])
}

func TestWithCarriesFields(t *testing.T) {
	var buf bytes.Buffer
	log := NewWriter(&buf).With(String("component", "reducer"))
	log.Warn("cache unavailable")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "reducer", entry["component"])
	assert.Equal(t, "warn", entry["level"])
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	_, err := New(&Config{Level: "loud", Output: "stdout"})
	assert.Error(t, err)

	l, err := New(&Config{Level: "info", Format: "json", Output: "stderr"})
	require.NoError(t, err)
	assert.NotNil(t, l)
}

func TestNopDiscards(t *testing.T) {
	assert.NotPanics(t, func() { Nop().Error("ignored", String("k", "v")) })
}
