package whisper

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/sashabaranov/go-openai"

	"audio2num/internal/app/api"
)

const providerName = "openai"

// Options tunes a transcription request. Zero values leave the API defaults.
type Options struct {
	Model       string
	Language    string
	Prompt      string
	Temperature float32
}

// RemoteTranscriber implements remote transcription using the OpenAI API.
type RemoteTranscriber struct {
	client  *openai.Client
	options Options
}

// NewRemoteTranscriber creates a new RemoteTranscriber instance.
func NewRemoteTranscriber(client *openai.Client, options Options) *RemoteTranscriber {
	if options.Model == "" {
		options.Model = openai.Whisper1
	}
	return &RemoteTranscriber{client: client, options: options}
}

// ServiceName implements api.Named.
func (rt *RemoteTranscriber) ServiceName() string {
	return "OpenAI Whisper API"
}

// Transcript uses the OpenAI API for remote transcription.
func (rt *RemoteTranscriber) Transcript(ctx context.Context, inputFilePath string) (string, error) {
	req := openai.AudioRequest{
		Model:       rt.options.Model,
		FilePath:    inputFilePath,
		Prompt:      rt.options.Prompt,
		Temperature: rt.options.Temperature,
		Language:    rt.options.Language,
	}
	resp, err := rt.client.CreateTranscription(ctx, req)
	if err != nil {
		return "", handleAPIError(err)
	}

	text := strings.TrimSpace(resp.Text)
	if text == "" {
		return "", api.ErrUnintelligible
	}
	return text, nil
}

// handleAPIError converts OpenAI client errors to api.ServiceError
func handleAPIError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		serviceErr := &api.ServiceError{
			Provider:   providerName,
			StatusCode: apiErr.HTTPStatusCode,
			Err:        err,
		}
		switch apiErr.HTTPStatusCode {
		case http.StatusUnauthorized:
			serviceErr.Code = "authentication_failed"
		case http.StatusTooManyRequests:
			serviceErr.Code = "rate_limit_exceeded"
			serviceErr.Retryable = true
		case http.StatusRequestEntityTooLarge:
			serviceErr.Code = "file_too_large"
		case http.StatusBadRequest:
			serviceErr.Code = "invalid_file"
		default:
			serviceErr.Code = "api_error"
			serviceErr.Retryable = apiErr.HTTPStatusCode >= 500
		}
		return serviceErr
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return &api.ServiceError{
			Provider:   providerName,
			Code:       "request_failed",
			StatusCode: reqErr.HTTPStatusCode,
			Retryable:  reqErr.HTTPStatusCode >= 500,
			Err:        err,
		}
	}

	return &api.ServiceError{
		Provider:  providerName,
		Code:      "request_failed",
		Retryable: true,
		Err:       fmt.Errorf("createTranscription failed: %w", err),
	}
}
