package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	promtestutil "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"audio2num/internal/app/api"
	"audio2num/internal/app/audio"
	"audio2num/internal/app/metrics"
)

type fakeConverter struct {
	err error

	mu    sync.Mutex
	paths []string
}

func (c *fakeConverter) ConvertToWav(ctx context.Context, in, format, out string) error {
	c.mu.Lock()
	c.paths = append(c.paths, out)
	c.mu.Unlock()
	if c.err != nil {
		return c.err
	}
	return os.WriteFile(out, []byte("RIFF"), 0o644)
}

type fakeTranscriber struct {
	text string
	err  error
	seen string
}

func (t *fakeTranscriber) Transcript(ctx context.Context, path string) (string, error) {
	t.seen = path
	if _, err := os.Stat(path); err != nil {
		return "", err
	}
	return t.text, t.err
}

func (t *fakeTranscriber) ServiceName() string { return "Fake Speech" }

type fakeProber struct {
	seconds float64
	err     error
}

func (p fakeProber) GetAudioDuration(ctx context.Context, path string) (float64, error) {
	return p.seconds, p.err
}

type panickingTranscriber struct{}

func (panickingTranscriber) Transcript(ctx context.Context, path string) (string, error) {
	panic("transcriber blew up")
}

func runsWithOutcome(outcome string) float64 {
	return promtestutil.ToFloat64(metrics.PipelineRunsTotal.WithLabelValues(outcome))
}

func assertNoTempFiles(t *testing.T, dir string) {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join(dir, "a2n-*.wav"))
	require.NoError(t, err)
	assert.Empty(t, matches, "temporary wav files left behind")
}

func TestRunOutcomes(t *testing.T) {
	tests := []struct {
		name        string
		text        string
		err         error
		wantOutcome api.Outcome
		wantFound   bool
		wantNumber  string
		wantDisplay string
	}{
		{
			name:        "transcript with number",
			text:        "I have 42 apples and one orange",
			wantOutcome: api.OutcomeTranscript,
			wantFound:   true,
			wantNumber:  "142",
			wantDisplay: "142",
		},
		{
			name:        "transcript without number",
			text:        "hello there",
			wantOutcome: api.OutcomeTranscript,
			wantDisplay: "no number found",
		},
		{
			name:        "unintelligible",
			err:         api.ErrUnintelligible,
			wantOutcome: api.OutcomeUnintelligible,
			wantDisplay: "Fake Speech could not understand the audio.",
		},
		{
			name:        "service error",
			err:         errors.New("connection refused"),
			wantOutcome: api.OutcomeServiceError,
			wantDisplay: "Could not request results from Fake Speech; Fake Speech request failed: connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			transcriber := &fakeTranscriber{text: tt.text, err: tt.err}
			p := New(&fakeConverter{}, transcriber, Config{TempDir: dir}, nil)

			result, err := p.Run(context.Background(), "clip.mav")
			require.NoError(t, err)

			assert.Equal(t, tt.wantOutcome, result.Transcription.Outcome)
			assert.Equal(t, tt.wantFound, result.Found)
			if tt.wantFound {
				assert.Equal(t, tt.wantNumber, result.Number.String())
			}
			assert.Equal(t, tt.wantDisplay, result.Display())
			assert.Equal(t, "clip.mav", result.Source)
			assert.False(t, result.ProcessedAt.IsZero())
			assert.Equal(t, dir, filepath.Dir(transcriber.seen))
			assertNoTempFiles(t, dir)
		})
	}
}

func TestRunDecodeErrorRemovesTempFile(t *testing.T) {
	dir := t.TempDir()
	decodeErr := &audio.DecodeError{Source: "broken.mav", Stderr: "Invalid data found", Err: errors.New("exit status 1")}
	converter := &fakeConverter{err: decodeErr}
	transcriber := &fakeTranscriber{}
	p := New(converter, transcriber, Config{TempDir: dir}, nil)

	before := runsWithOutcome(OutcomeDecodeError)
	result, err := p.Run(context.Background(), "broken.mav")
	assert.Equal(t, before+1, runsWithOutcome(OutcomeDecodeError))

	assert.Nil(t, result)
	var got *audio.DecodeError
	require.ErrorAs(t, err, &got)
	assert.Equal(t, "broken.mav", got.Source)
	assert.Empty(t, transcriber.seen, "transcriber must not run after a decode failure")
	assertNoTempFiles(t, dir)
}

func TestRunCancelledContext(t *testing.T) {
	dir := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	transcriber := &fakeTranscriber{err: context.Canceled}
	p := New(&fakeConverter{}, transcriber, Config{TempDir: dir}, nil)

	before := runsWithOutcome(OutcomeError)
	_, err := p.Run(ctx, "clip.mav")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, before+1, runsWithOutcome(OutcomeError))
	assertNoTempFiles(t, dir)
}

func TestRunConversionFailureIsCounted(t *testing.T) {
	dir := t.TempDir()
	converter := &fakeConverter{err: errors.New(`exec: "ffmpeg": executable file not found in $PATH`)}
	transcriber := &fakeTranscriber{}
	p := New(converter, transcriber, Config{TempDir: dir}, nil)

	errorsBefore := runsWithOutcome(OutcomeError)
	decodeBefore := runsWithOutcome(OutcomeDecodeError)

	result, err := p.Run(context.Background(), "clip.mav")
	assert.Nil(t, result)
	require.ErrorContains(t, err, "executable file not found")
	var decodeErr *audio.DecodeError
	assert.False(t, errors.As(err, &decodeErr))
	assert.Empty(t, transcriber.seen)

	assert.Equal(t, errorsBefore+1, runsWithOutcome(OutcomeError))
	assert.Equal(t, decodeBefore, runsWithOutcome(OutcomeDecodeError))
	assertNoTempFiles(t, dir)
}

func TestRunPanicRemovesTempFile(t *testing.T) {
	dir := t.TempDir()
	converter := &fakeConverter{}
	p := New(converter, panickingTranscriber{}, Config{TempDir: dir}, nil)

	assert.PanicsWithValue(t, "transcriber blew up", func() {
		_, _ = p.Run(context.Background(), "clip.mav")
	})
	require.Len(t, converter.paths, 1)
	assertNoTempFiles(t, dir)
}

func TestRunRecordsDuration(t *testing.T) {
	dir := t.TempDir()
	p := New(&fakeConverter{}, &fakeTranscriber{text: "seven"}, Config{TempDir: dir}, nil,
		WithDurationProber(fakeProber{seconds: 2.5}))

	result, err := p.Run(context.Background(), "clip.mav")
	require.NoError(t, err)
	assert.InDelta(t, 2.5, result.Duration, 0.001)

	p = New(&fakeConverter{}, &fakeTranscriber{text: "seven"}, Config{TempDir: dir}, nil,
		WithDurationProber(fakeProber{err: errors.New("ffprobe missing")}))
	result, err = p.Run(context.Background(), "clip.mav")
	require.NoError(t, err)
	assert.Zero(t, result.Duration)
	assert.Equal(t, "7", result.Number.String())
}

func TestConcurrentRunsUseDistinctFiles(t *testing.T) {
	dir := t.TempDir()
	converter := &fakeConverter{}
	p := New(converter, &fakeTranscriber{text: "one"}, Config{TempDir: dir}, nil)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := p.Run(context.Background(), "clip.mav")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	seen := make(map[string]bool)
	for _, path := range converter.paths {
		assert.False(t, seen[path], "temp path reused: %s", path)
		seen[path] = true
	}
	assert.Len(t, seen, 8)
	assertNoTempFiles(t, dir)
}
