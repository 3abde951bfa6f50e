package files

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsAudioFile(t *testing.T) {
	tests := map[string]bool{
		"clip.mav":   true,
		"clip.WAV":   true,
		"song.mp3":   true,
		"memo.m4a":   true,
		"take.flac":  true,
		"voice.ogg":  true,
		"movie.mp4":  false,
		"notes.txt":  false,
		"no_suffix":  false,
		"wav":        false,
		"archive.wv": false,
	}
	for name, want := range tests {
		assert.Equal(t, want, IsAudioFile(name), name)
	}
}

func TestGetAllAudioFiles(t *testing.T) {
	dir := t.TempDir()
	now := time.Now()
	write := func(name string, age time.Duration) {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
		require.NoError(t, os.Chtimes(path, now.Add(-age), now.Add(-age)))
	}
	write("newest.mav", time.Minute)
	write("oldest.wav", time.Hour)
	write("middle.mp3", 10*time.Minute)
	write("ignored.txt", 2*time.Hour)
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.wav"), 0o755))

	got, err := GetAllAudioFiles(dir)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "oldest.wav", got[0].Name)
	assert.Equal(t, "middle.mp3", got[1].Name)
	assert.Equal(t, "newest.mav", got[2].Name)
	assert.Equal(t, filepath.Join(dir, "newest.mav"), got[2].FullPath)
	assert.Equal(t, int64(1), got[2].Size)
}

func TestGetAllAudioFilesMissingDir(t *testing.T) {
	_, err := GetAllAudioFiles(filepath.Join(t.TempDir(), "missing"))
	assert.ErrorContains(t, err, "failed to read input directory")
}

func TestGetAbsolutePath(t *testing.T) {
	dir := t.TempDir()
	got, err := GetAbsolutePath(dir)
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(got))

	_, err = GetAbsolutePath(filepath.Join(dir, "nope"))
	assert.Error(t, err)
}

func TestEnsureDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")
	require.NoError(t, EnsureDir(dir))
	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	assert.NoError(t, EnsureDir(""))
}
