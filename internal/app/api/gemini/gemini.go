// Package gemini transcribes audio with Google's Gemini API.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"google.golang.org/genai"

	"audio2num/internal/app/api"
)

const (
	providerName  = "gemini"
	defaultModel  = "gemini-2.0-flash"
	defaultPrompt = "Transcribe the speech in this audio verbatim. Reply with the transcript only. " +
		"If there is no intelligible speech, reply with nothing."
)

// Config represents configuration specific to the Gemini provider
type Config struct {
	APIKey  string
	Model   string
	Prompt  string
	BaseURL string
	Timeout time.Duration
}

// Transcriber sends audio inline to Gemini and asks for a verbatim transcript.
type Transcriber struct {
	client *genai.Client
	config Config
}

// NewTranscriber creates a Gemini transcriber. An empty APIKey falls back to GEMINI_API_KEY.
func NewTranscriber(ctx context.Context, config Config) (*Transcriber, error) {
	if config.APIKey == "" {
		config.APIKey = strings.TrimSpace(os.Getenv("GEMINI_API_KEY"))
	}
	if config.APIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY environment variable not set")
	}
	if config.Model == "" {
		config.Model = defaultModel
	}
	if config.Prompt == "" {
		config.Prompt = defaultPrompt
	}

	clientConfig := &genai.ClientConfig{
		APIKey:  config.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if config.BaseURL != "" {
		clientConfig.HTTPOptions = genai.HTTPOptions{BaseURL: config.BaseURL}
	}

	client, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &Transcriber{client: client, config: config}, nil
}

// ServiceName implements api.Named.
func (t *Transcriber) ServiceName() string {
	return "Google Gemini API"
}

// Transcript implements api.Transcriber.
func (t *Transcriber) Transcript(ctx context.Context, inputFilePath string) (string, error) {
	data, err := os.ReadFile(inputFilePath)
	if err != nil {
		return "", &api.ServiceError{Provider: providerName, Code: "file_not_found", Err: err}
	}

	if t.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.config.Timeout)
		defer cancel()
	}

	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromText(t.config.Prompt),
			genai.NewPartFromBytes(data, mimeType(inputFilePath)),
		}, genai.RoleUser),
	}
	generateConfig := &genai.GenerateContentConfig{
		Temperature: genai.Ptr[float32](0),
	}

	resp, err := t.client.Models.GenerateContent(ctx, t.config.Model, contents, generateConfig)
	if err != nil {
		return "", handleAPIError(err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", api.ErrUnintelligible
	}
	return text, nil
}

// handleAPIError maps genai failures onto api.ServiceError. Only rate limits,
// server errors and transport failures are worth retrying.
func handleAPIError(err error) error {
	if apiErr, ok := asAPIError(err); ok {
		serviceErr := &api.ServiceError{
			Provider:   providerName,
			StatusCode: apiErr.Code,
			Err:        err,
		}
		switch {
		case apiErr.Code == http.StatusUnauthorized || apiErr.Code == http.StatusForbidden:
			serviceErr.Code = "authentication_failed"
		case apiErr.Code == http.StatusTooManyRequests:
			serviceErr.Code = "rate_limit_exceeded"
			serviceErr.Retryable = true
		case apiErr.Code == http.StatusRequestEntityTooLarge:
			serviceErr.Code = "file_too_large"
		case apiErr.Code == http.StatusBadRequest:
			serviceErr.Code = "invalid_file"
		default:
			serviceErr.Code = "api_error"
			serviceErr.Retryable = apiErr.Code >= 500
		}
		return serviceErr
	}

	return &api.ServiceError{
		Provider:  providerName,
		Code:      "request_failed",
		Retryable: !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded),
		Err:       fmt.Errorf("generateContent failed: %w", err),
	}
}

func asAPIError(err error) (genai.APIError, bool) {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return *apiErrPtr, true
	}
	return genai.APIError{}, false
}

func mimeType(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp3":
		return "audio/mp3"
	case ".flac":
		return "audio/flac"
	case ".ogg":
		return "audio/ogg"
	case ".m4a", ".aac":
		return "audio/aac"
	default:
		return "audio/wav"
	}
}
