package dto

import (
	"time"

	"audio2num/internal/app/model"
	"audio2num/internal/app/numbers"
)

// ResultResponse is a stored run.
type ResultResponse struct {
	ID            int64           `json:"id"`
	FileName      string          `json:"file_name"`
	SourcePath    string          `json:"source_path,omitempty"`
	Outcome       string          `json:"outcome"`
	Transcript    string          `json:"transcript,omitempty"`
	Number        *numbers.Number `json:"number,omitempty"`
	AudioDuration float64         `json:"audio_duration,omitempty"`
	ErrorMessage  string          `json:"error_message,omitempty"`
	ProcessedAt   time.Time       `json:"processed_at"`
}

// ResultsResponse lists stored runs.
type ResultsResponse struct {
	Results []ResultResponse `json:"results"`
	Total   int              `json:"total"`
}

// NewResultsResponse converts stored rows.
func NewResultsResponse(results []model.Result) *ResultsResponse {
	resp := &ResultsResponse{
		Results: make([]ResultResponse, 0, len(results)),
		Total:   len(results),
	}
	for _, r := range results {
		resp.Results = append(resp.Results, ResultResponse{
			ID:            r.ID,
			FileName:      r.FileName,
			SourcePath:    r.SourcePath,
			Outcome:       r.Outcome,
			Transcript:    r.Transcript,
			Number:        storedNumber(r.Number),
			AudioDuration: r.AudioDuration,
			ErrorMessage:  r.ErrorMessage,
			ProcessedAt:   r.ProcessedAt,
		})
	}
	return resp
}

// storedNumber parses the TEXT column; rows without a number have "".
func storedNumber(stored string) *numbers.Number {
	if stored == "" {
		return nil
	}
	n, err := numbers.Parse(stored)
	if err != nil {
		return nil
	}
	return &n
}
