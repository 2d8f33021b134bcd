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

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, `
telegram:
  token: "123:abc"
feedback:
  recipient: "team@example.com"
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "locales", cfg.App.LocalesDir)
	assert.Equal(t, 30*time.Second, cfg.Feedback.Every)
	assert.Equal(t, 2, cfg.Feedback.Burst)
	assert.Equal(t, "redis", cfg.Storage.Driver)
	assert.Equal(t, time.Second, cfg.Reading.Debounce)
	assert.Equal(t, 600*time.Millisecond, cfg.Reading.AutoScrollDelay)
	assert.Equal(t, 30*time.Second, cfg.Reading.TimerFlush)
	assert.Equal(t, 15*time.Minute, cfg.Reading.IdleTimeout)
	assert.Equal(t, 20, cfg.Prayer.Method)
	assert.Equal(t, 15*time.Second, cfg.Content.Timeout)
}

func TestLoad_FileOverrides(t *testing.T) {
	path := writeConfig(t, `
app:
  environment: production
telegram:
  enabled: false
http:
  enabled: true
  addr: ":9090"
storage:
  driver: badger
  badger_path: /tmp/prefs
feedback:
  recipient: "team@example.com"
reading:
  debounce: 2s
  ayahs_per_page: 10
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.App.Environment)
	assert.False(t, cfg.Telegram.Enabled)
	assert.Equal(t, ":9090", cfg.HTTP.Addr)
	assert.Equal(t, "badger", cfg.Storage.Driver)
	assert.Equal(t, 2*time.Second, cfg.Reading.Debounce)
	assert.Equal(t, 10, cfg.Reading.AyahsPerPage)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("TELEGRAM_TOKEN", "from-env")
	t.Setenv("FEEDBACK_RECIPIENT", "env@example.com")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Telegram.Token)
	assert.Equal(t, "env@example.com", cfg.Feedback.Recipient)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing token", `feedback: {recipient: x}`},
		{"unknown driver", "telegram: {token: t}\nfeedback: {recipient: x}\nstorage: {driver: sqlite}"},
		{"no surface", "telegram: {enabled: false}\nfeedback: {recipient: x}"},
		{"bad environment", "telegram: {token: t}\nfeedback: {recipient: x}\napp: {environment: staging}"},
		{"zero burst", "telegram: {token: t}\nfeedback: {recipient: x, burst: 0}"},
		{"zero auto scroll delay", "telegram: {token: t}\nfeedback: {recipient: x}\nreading: {auto_scroll_delay: 0s}"},
		{"zero idle timeout", "telegram: {token: t}\nfeedback: {recipient: x}\nreading: {idle_timeout: 0s}"},
		{"zero page size", "telegram: {token: t}\nfeedback: {recipient: x}\nreading: {ayahs_per_page: 0}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
