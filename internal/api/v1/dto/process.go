package dto

import (
	"time"

	"audio2num/internal/app/numbers"
	"audio2num/internal/app/pipeline"
)

// ProcessResponse describes one pipeline run on an uploaded file.
type ProcessResponse struct {
	ID          int64           `json:"id,omitempty"`
	FileName    string          `json:"file_name"`
	Outcome     string          `json:"outcome"`
	Transcript  string          `json:"transcript,omitempty"`
	Display     string          `json:"display"`
	Found       bool            `json:"found"`
	Number      *numbers.Number `json:"number,omitempty"`
	Duration    float64         `json:"duration,omitempty"`
	Error       string          `json:"error,omitempty"`
	ProcessedAt time.Time       `json:"processed_at"`
}

// NewProcessResponse renders a pipeline result.
func NewProcessResponse(fileName string, result *pipeline.Result) *ProcessResponse {
	resp := &ProcessResponse{
		FileName:    fileName,
		Outcome:     string(result.Transcription.Outcome),
		Transcript:  result.Transcription.Text,
		Display:     result.Display(),
		Found:       result.Found,
		Duration:    result.Duration,
		Error:       result.Transcription.ErrorMessage(),
		ProcessedAt: result.ProcessedAt,
	}
	if result.Found {
		n := result.Number
		resp.Number = &n
	}
	return resp
}
