package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"audio2num/internal/app/api"
	"audio2num/internal/app/api/provider"
)

func newGeminiServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.True(t, strings.HasSuffix(r.URL.Path, "/models/"+defaultModel+":generateContent"), r.URL.Path)

		raw, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		var payload map[string]interface{}
		require.NoError(t, json.Unmarshal(raw, &payload))
		assert.Contains(t, string(raw), "audio/wav")

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func candidates(text string) string {
	return `{"candidates":[{"content":{"role":"model","parts":[{"text":` + mustJSON(text) + `}]}}]}`
}

func mustJSON(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}

func writeAudio(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "clip.wav")
	require.NoError(t, os.WriteFile(path, []byte("RIFF....WAVEfmt "), 0644))
	return path
}

func TestTranscriber_Transcript(t *testing.T) {
	tests := []struct {
		name         string
		status       int
		body         string
		expectedText string
		expectedErr  error
		serviceError *api.ServiceError
	}{
		{
			name:         "transcript",
			status:       http.StatusOK,
			body:         candidates("seven eight nine\n"),
			expectedText: "seven eight nine",
		},
		{
			name:        "blank transcript",
			status:      http.StatusOK,
			body:        candidates("   "),
			expectedErr: api.ErrUnintelligible,
		},
		{
			name:        "no candidates",
			status:      http.StatusOK,
			body:        `{"candidates":[]}`,
			expectedErr: api.ErrUnintelligible,
		},
		{
			name:         "rejected key",
			status:       http.StatusForbidden,
			body:         `{"error":{"code":403,"message":"API key not valid","status":"PERMISSION_DENIED"}}`,
			serviceError: &api.ServiceError{Code: "authentication_failed", StatusCode: 403},
		},
		{
			name:         "rate limited",
			status:       http.StatusTooManyRequests,
			body:         `{"error":{"code":429,"message":"Resource has been exhausted","status":"RESOURCE_EXHAUSTED"}}`,
			serviceError: &api.ServiceError{Code: "rate_limit_exceeded", StatusCode: 429, Retryable: true},
		},
		{
			name:         "bad audio",
			status:       http.StatusBadRequest,
			body:         `{"error":{"code":400,"message":"Unsupported MIME type","status":"INVALID_ARGUMENT"}}`,
			serviceError: &api.ServiceError{Code: "invalid_file", StatusCode: 400},
		},
		{
			name:         "server error",
			status:       http.StatusInternalServerError,
			body:         `{"error":{"code":500,"message":"Internal error","status":"INTERNAL"}}`,
			serviceError: &api.ServiceError{Code: "api_error", StatusCode: 500, Retryable: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := newGeminiServer(t, tt.status, tt.body)

			transcriber, err := NewTranscriber(context.Background(), Config{APIKey: "AIza-test-key", BaseURL: server.URL})
			require.NoError(t, err)

			text, err := transcriber.Transcript(context.Background(), writeAudio(t))
			switch {
			case tt.expectedErr != nil:
				assert.ErrorIs(t, err, tt.expectedErr)
			case tt.serviceError != nil:
				var serviceErr *api.ServiceError
				require.ErrorAs(t, err, &serviceErr)
				assert.Equal(t, "gemini", serviceErr.Provider)
				assert.Equal(t, tt.serviceError.Code, serviceErr.Code)
				assert.Equal(t, tt.serviceError.StatusCode, serviceErr.StatusCode)
				assert.Equal(t, tt.serviceError.Retryable, serviceErr.Retryable)
			default:
				require.NoError(t, err)
				assert.Equal(t, tt.expectedText, text)
			}
		})
	}
}

func TestTranscriber_MissingFile(t *testing.T) {
	transcriber, err := NewTranscriber(context.Background(), Config{APIKey: "AIza-test-key", BaseURL: "http://127.0.0.1:0"})
	require.NoError(t, err)

	_, err = transcriber.Transcript(context.Background(), "/does/not/exist.wav")
	var serviceErr *api.ServiceError
	require.ErrorAs(t, err, &serviceErr)
	assert.Equal(t, "file_not_found", serviceErr.Code)
}

func TestHandleAPIError_Transport(t *testing.T) {
	err := handleAPIError(errors.New("connection refused"))
	var serviceErr *api.ServiceError
	require.ErrorAs(t, err, &serviceErr)
	assert.Equal(t, "request_failed", serviceErr.Code)
	assert.True(t, serviceErr.Retryable)

	err = handleAPIError(fmt.Errorf("do request: %w", context.DeadlineExceeded))
	require.ErrorAs(t, err, &serviceErr)
	assert.False(t, serviceErr.Retryable)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestNewTranscriber_RequiresKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")

	_, err := NewTranscriber(context.Background(), Config{})
	assert.ErrorContains(t, err, "GEMINI_API_KEY")

	_, err = provider.NewTranscriber("gemini", nil)
	assert.ErrorContains(t, err, "GEMINI_API_KEY")
}

func TestMimeType(t *testing.T) {
	assert.Equal(t, "audio/wav", mimeType("a.wav"))
	assert.Equal(t, "audio/wav", mimeType("a"))
	assert.Equal(t, "audio/mp3", mimeType("a.MP3"))
	assert.Equal(t, "audio/flac", mimeType("a.flac"))
}
