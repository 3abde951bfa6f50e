package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `
default_provider: whisper_server
providers:
  openai:
    auth:
      api_key: ${A2N_TEST_OPENAI_KEY}
    settings:
      model: whisper-1
  whisper_server:
    settings:
      base_url: http://localhost:9000
      timeout: 30
audio:
  sample_rate: 16000
  channels: 1
  source_format: wav
  temp_dir: /tmp/a2n
store:
  driver: postgres
  dsn: ${A2N_TEST_DSN}
server:
  host: 127.0.0.1
  port: 9090
  max_upload_mb: 10
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "a2n.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	t.Setenv("A2N_TEST_OPENAI_KEY", "sk-test-key")
	t.Setenv("A2N_TEST_DSN", "postgres://u:p@localhost/a2n?sslmode=disable")

	config, err := Load(writeConfig(t, sampleYAML), true)
	require.NoError(t, err)

	assert.Equal(t, "whisper_server", config.DefaultProvider)
	assert.Equal(t, "sk-test-key", config.Providers["openai"].Auth["api_key"])
	assert.Equal(t, "http://localhost:9000", config.Providers["whisper_server"].Settings["base_url"])
	assert.Equal(t, "wav", config.Audio.SourceFormat)
	assert.Equal(t, "ffmpeg", config.Audio.FFmpegPath, "default kept")
	assert.Equal(t, "postgres", config.Store.Driver)
	assert.Equal(t, "postgres://u:p@localhost/a2n?sslmode=disable", config.Store.DSN)
	assert.Equal(t, "127.0.0.1:9090", config.Server.Addr())
	assert.Equal(t, 120, config.Server.WriteTimeoutSec, "default kept")

	settings := config.ProviderSettings("whisper_server")
	assert.Equal(t, 30, settings["settings"].(map[string]interface{})["timeout"])
	assert.Empty(t, settings["auth"])
}

func TestLoadMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.yaml")

	config, err := Load(path, false)
	require.NoError(t, err)
	assert.Equal(t, Default().Server, config.Server)

	_, err = Load(path, true)
	assert.ErrorContains(t, err, "failed to read config file")
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{"bad yaml", "default_provider: [", "failed to parse YAML"},
		{"bad driver", "store:\n  driver: mysql\n  dsn: x\n", "Driver failed on oneof"},
		{"missing dsn", "store:\n  driver: sqlite\n  dsn: \"\"\n", "DSN failed on required_unless"},
		{"bad port", "server:\n  port: 70000\n", "Port failed on max"},
		{"bad channels", "audio:\n  channels: 6\n", "Channels failed on max"},
		{"bad sample rate", "audio:\n  sample_rate: 12345\n", "unsupported sample rate"},
		{"bad timeout", "server:\n  read_timeout_sec: 7200\n", "timeout too large"},
		{"bad whisper url", "providers:\n  whisper_server:\n    settings:\n      base_url: localhost:9000\n", "must start with http"},
		{"no provider", "default_provider: \"\"\n", "DefaultProvider failed on required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.yaml), true)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestStoreDriverNone(t *testing.T) {
	config, err := Load(writeConfig(t, "store:\n  driver: none\n  dsn: \"\"\n"), true)
	require.NoError(t, err)
	assert.Equal(t, "none", config.Store.Driver)
}

func TestResolvePath(t *testing.T) {
	t.Setenv("A2N_CONFIG", "")
	assert.Equal(t, DefaultConfigPath, ResolvePath(""))

	t.Setenv("A2N_CONFIG", "/etc/a2n.yaml")
	assert.Equal(t, "/etc/a2n.yaml", ResolvePath(""))
	assert.Equal(t, "custom.yaml", ResolvePath("custom.yaml"))
}
