package api

import (
	"context"
	"errors"
	"fmt"
)

// Transcriber defines a transcription interface for converting audio files to text.
//
// Implementations report a recognised-but-empty result with ErrUnintelligible
// and request failures with *ServiceError.
type Transcriber interface {
	Transcript(ctx context.Context, inputFilePath string) (string, error)
}

// Named is implemented by transcribers that know the human readable name of
// the service behind them. It is used for display text only.
type Named interface {
	ServiceName() string
}

const defaultServiceName = "speech recognition service"

// ErrUnintelligible is returned when the service answered but could not make out any speech.
var ErrUnintelligible = errors.New("speech could not be understood")

// ServiceError describes a failed request to a transcription service.
type ServiceError struct {
	Provider   string
	Code       string
	StatusCode int
	Retryable  bool
	Err        error
}

func (e *ServiceError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s request failed (status %d): %v", e.Provider, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s request failed: %v", e.Provider, e.Err)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

// ServiceName returns the display name of t, or a generic one.
func ServiceName(t Transcriber) string {
	if named, ok := t.(Named); ok && named.ServiceName() != "" {
		return named.ServiceName()
	}
	return defaultServiceName
}
