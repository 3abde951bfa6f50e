package process

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"audio2num/cmd/a2n/cmd/cliutil"
)

func writeConfig(t *testing.T, dir, tempDir string) string {
	t.Helper()
	path := filepath.Join(dir, "a2n.yaml")
	config := `default_provider: whisper_server
providers:
  whisper_server:
    settings:
      base_url: http://127.0.0.1:1
audio:
  ffmpeg_path: /nonexistent/ffmpeg
  temp_dir: ` + tempDir + `
store:
  driver: none
  dsn: ""
`
	require.NoError(t, os.WriteFile(path, []byte(config), 0o644))
	return path
}

func TestProcessCommandCancelledLeavesNoTempFile(t *testing.T) {
	dir := t.TempDir()
	tempDir := filepath.Join(dir, "tmp")
	require.NoError(t, os.Mkdir(tempDir, 0o755))
	source := filepath.Join(dir, "clip.mav")
	require.NoError(t, os.WriteFile(source, []byte("audio"), 0o644))

	cliutil.ConfigPath = writeConfig(t, dir, tempDir)
	t.Cleanup(func() { cliutil.ConfigPath = "" })

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	Cmd.SetOut(&out)
	Cmd.SetErr(&out)
	Cmd.SetArgs([]string{source})
	err := Cmd.ExecuteContext(ctx)

	assert.ErrorIs(t, err, context.Canceled)
	entries, readErr := os.ReadDir(tempDir)
	require.NoError(t, readErr)
	assert.Empty(t, entries, "temporary wav left behind")
}
