package api

import (
	"context"
	"errors"
	"fmt"
)

// Outcome tags the variant held by a Transcription.
type Outcome string

const (
	OutcomeTranscript     Outcome = "transcript"
	OutcomeUnintelligible Outcome = "unintelligible"
	OutcomeServiceError   Outcome = "service_error"
)

// Transcription is the result of asking a service to transcribe one file.
// Exactly one of the variants is populated, selected by Outcome:
// Text for OutcomeTranscript, Err for OutcomeServiceError.
type Transcription struct {
	Outcome Outcome
	Text    string
	Service string
	Err     error
}

// Transcribe runs t on inputFilePath and folds the two recognised failure
// modes into the returned Transcription. Only context cancellation is
// returned as an error.
func Transcribe(ctx context.Context, t Transcriber, inputFilePath string) (Transcription, error) {
	text, err := t.Transcript(ctx, inputFilePath)
	if err != nil && ctx.Err() != nil {
		return Transcription{}, ctx.Err()
	}
	return Classify(ServiceName(t), text, err), nil
}

// Classify maps a raw transcriber answer onto a Transcription.
func Classify(service, text string, err error) Transcription {
	switch {
	case err == nil:
		return Transcription{Outcome: OutcomeTranscript, Text: text, Service: service}
	case errors.Is(err, ErrUnintelligible):
		return Transcription{Outcome: OutcomeUnintelligible, Service: service}
	default:
		var serviceErr *ServiceError
		if !errors.As(err, &serviceErr) {
			serviceErr = &ServiceError{Provider: service, Code: "request_failed", Err: err}
		}
		return Transcription{Outcome: OutcomeServiceError, Service: service, Err: serviceErr}
	}
}

// OK reports whether the transcription holds a transcript.
func (t Transcription) OK() bool {
	return t.Outcome == OutcomeTranscript
}

// Display renders the transcription for people: the transcript itself, or a
// sentence describing why there is none.
func (t Transcription) Display() string {
	service := t.Service
	if service == "" {
		service = defaultServiceName
	}

	switch t.Outcome {
	case OutcomeTranscript:
		return t.Text
	case OutcomeUnintelligible:
		return fmt.Sprintf("%s could not understand the audio.", service)
	case OutcomeServiceError:
		return fmt.Sprintf("Could not request results from %s; %v", service, t.Err)
	default:
		return ""
	}
}

// ErrorMessage returns the failure cause, or "" for transcripts.
func (t Transcription) ErrorMessage() string {
	switch t.Outcome {
	case OutcomeUnintelligible:
		return ErrUnintelligible.Error()
	case OutcomeServiceError:
		if t.Err != nil {
			return t.Err.Error()
		}
	}
	return ""
}
