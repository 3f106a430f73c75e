package core

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSettingsValidate(t *testing.T) {
	settings := DefaultSettings()
	assert.NoError(t, settings.validate())
}

func TestSettingsZeroTimeout(t *testing.T) {
	settings := DefaultSettings()
	settings.Timeout = 0
	assert.Error(t, settings.validate())
}

func TestSettingsNegativeResolveTimeout(t *testing.T) {
	settings := DefaultSettings()
	settings.ResolveTimeout = -time.Second
	assert.Error(t, settings.validate())
}

func TestSettingsShortIntervalUnprivileged(t *testing.T) {
	settings := DefaultSettings()
	settings.Interval = 100 * time.Millisecond
	assert.Error(t, settings.validate())
}

func TestSettingsShortIntervalPrivileged(t *testing.T) {
	settings := DefaultSettings()
	settings.Interval = 100 * time.Millisecond
	settings.IsPrivileged = true
	assert.NoError(t, settings.validate())

	settings.Interval = time.Millisecond
	assert.Error(t, settings.validate())
}

func TestSettingsLargeInterval(t *testing.T) {
	settings := DefaultSettings()
	settings.Interval = time.Hour * 24 * 365 * 10
	assert.Error(t, settings.validate())
}

func TestSettingsPayloadSize(t *testing.T) {
	settings := DefaultSettings()
	settings.PayloadSize = 65500
	assert.Error(t, settings.validate())

	settings.PayloadSize = 56
	assert.NoError(t, settings.validate())
	assert.Len(t, settings.Payload(), 56)
	assert.Equal(t, byte(55), settings.Payload()[55])

	settings.PayloadSize = -1
	assert.Error(t, settings.validate())
}

func TestSettingsZeroCacheSize(t *testing.T) {
	settings := DefaultSettings()
	settings.CacheSize = 0
	assert.Error(t, settings.validate())
}

func TestSettingsLoggingLevel(t *testing.T) {
	settings := DefaultSettings()
	settings.LoggingLevel = 7
	assert.Error(t, settings.validate())
}

func TestParseSettings(t *testing.T) {
	settings, err := ParseSettings([]byte(`
count: 5
interval: 500ms
timeout: 2s
payload_size: 16
privileged: true
metrics_address: ":9101"
`))
	require.NoError(t, err)

	want := DefaultSettings()
	want.Count = 5
	want.Interval = 500 * time.Millisecond
	want.Timeout = 2 * time.Second
	want.PayloadSize = 16
	want.IsPrivileged = true
	want.MetricsAddress = ":9101"
	assert.Equal(t, want, settings)
}

func TestParseSettingsInvalid(t *testing.T) {
	_, err := ParseSettings([]byte("interval: 5ms\n"))
	assert.Error(t, err)

	_, err = ParseSettings([]byte("count: [1\n"))
	assert.Error(t, err)
}

func TestLoadSettings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "goicmp.yaml")
	require.NoError(t, os.WriteFile(path, []byte("cache_size: 3\nstart_sequence: 9\n"), 0o600))

	settings, err := LoadSettings(path)
	require.NoError(t, err)
	assert.Equal(t, 3, settings.CacheSize)
	assert.Equal(t, uint16(9), settings.StreamOptions().StartSequence)

	_, err = LoadSettings(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
