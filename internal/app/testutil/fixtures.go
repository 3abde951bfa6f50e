package testutil

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"audio2num/internal/app/model"
)

// SampleTranscripts maps transcripts to the number they contain.
var SampleTranscripts = map[string]string{
	"one two three":                   "123",
	"I have 42 apples and one orange": "142",
	"007":                             "7",
	"zero one":                        "1",
}

// SampleResults are stored runs covering every outcome.
var SampleResults = []model.Result{
	{ID: 1, FileName: "a.mav", SourcePath: "/audio/a.mav", Outcome: "transcript", Transcript: "one two three", Number: "123", AudioDuration: 1.2},
	{ID: 2, FileName: "b.mav", SourcePath: "/audio/b.mav", Outcome: "transcript", Transcript: "hello", AudioDuration: 0.8},
	{ID: 3, FileName: "c.mav", SourcePath: "/audio/c.mav", Outcome: "unintelligible", ErrorMessage: "speech could not be understood"},
	{ID: 4, FileName: "d.mav", SourcePath: "/audio/d.mav", Outcome: "service_error", ErrorMessage: "Mock Speech request failed: timeout"},
	{ID: 5, FileName: "e.mav", SourcePath: "/audio/e.mav", Outcome: "decode_error", ErrorMessage: "decode e.mav: exit status 1"},
}

// CreateAudioDir writes empty files named names into a temp dir, each one
// second newer than the previous, and returns the directory.
func CreateAudioDir(t *testing.T, names ...string) string {
	t.Helper()
	dir := t.TempDir()
	base := time.Now().Add(-time.Duration(len(names)) * time.Second)
	for i, name := range names {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte("audio"), 0o644))
		mtime := base.Add(time.Duration(i) * time.Second)
		require.NoError(t, os.Chtimes(path, mtime, mtime))
	}
	return dir
}
