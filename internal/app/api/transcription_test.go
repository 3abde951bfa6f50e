package api_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"audio2num/internal/app/api"
)

type stubTranscriber struct {
	text string
	err  error
	name string
}

func (s stubTranscriber) Transcript(ctx context.Context, inputFilePath string) (string, error) {
	return s.text, s.err
}

func (s stubTranscriber) ServiceName() string {
	return s.name
}

type anonymousTranscriber struct{}

func (anonymousTranscriber) Transcript(ctx context.Context, inputFilePath string) (string, error) {
	return "", api.ErrUnintelligible
}

func TestClassify(t *testing.T) {
	serviceErr := &api.ServiceError{Provider: "openai", Code: "rate_limit_exceeded", StatusCode: 429, Err: errors.New("slow down")}

	tests := []struct {
		name        string
		text        string
		err         error
		wantOutcome api.Outcome
		wantDisplay string
	}{
		{
			name:        "transcript",
			text:        "one two three",
			wantOutcome: api.OutcomeTranscript,
			wantDisplay: "one two three",
		},
		{
			name:        "unintelligible",
			err:         api.ErrUnintelligible,
			wantOutcome: api.OutcomeUnintelligible,
			wantDisplay: "Test API could not understand the audio.",
		},
		{
			name:        "wrapped unintelligible",
			err:         fmt.Errorf("whisper: %w", api.ErrUnintelligible),
			wantOutcome: api.OutcomeUnintelligible,
			wantDisplay: "Test API could not understand the audio.",
		},
		{
			name:        "service error",
			err:         serviceErr,
			wantOutcome: api.OutcomeServiceError,
			wantDisplay: "Could not request results from Test API; openai request failed (status 429): slow down",
		},
		{
			name:        "plain error becomes service error",
			err:         errors.New("connection reset"),
			wantOutcome: api.OutcomeServiceError,
			wantDisplay: "Could not request results from Test API; Test API request failed: connection reset",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := api.Classify("Test API", tt.text, tt.err)
			assert.Equal(t, tt.wantOutcome, got.Outcome)
			assert.Equal(t, tt.wantDisplay, got.Display())
			assert.Equal(t, tt.wantOutcome == api.OutcomeTranscript, got.OK())
		})
	}
}

func TestClassify_KeepsServiceErrorCause(t *testing.T) {
	cause := errors.New("dial tcp: timeout")
	got := api.Classify("Test API", "", &api.ServiceError{Provider: "openai", Err: cause})

	var serviceErr *api.ServiceError
	require.ErrorAs(t, got.Err, &serviceErr)
	assert.ErrorIs(t, got.Err, cause)
	assert.Equal(t, "openai request failed: dial tcp: timeout", got.ErrorMessage())
}

func TestTranscribe(t *testing.T) {
	got, err := api.Transcribe(context.Background(), stubTranscriber{text: "four", name: "Stub"}, "in.wav")
	require.NoError(t, err)
	assert.True(t, got.OK())
	assert.Equal(t, "Stub", got.Service)
	assert.Empty(t, got.ErrorMessage())

	got, err = api.Transcribe(context.Background(), anonymousTranscriber{}, "in.wav")
	require.NoError(t, err)
	assert.Equal(t, api.OutcomeUnintelligible, got.Outcome)
	assert.Equal(t, "speech recognition service could not understand the audio.", got.Display())
	assert.Equal(t, api.ErrUnintelligible.Error(), got.ErrorMessage())
}

func TestTranscribe_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := api.Transcribe(ctx, stubTranscriber{err: context.Canceled}, "in.wav")
	assert.ErrorIs(t, err, context.Canceled)
}
