package model

import "time"

// Result is one stored pipeline run.
type Result struct {
	ID         int64
	FileName   string
	SourcePath string
	// Outcome is one of transcript, unintelligible, service_error, decode_error.
	Outcome       string
	Transcript    string
	Number        string // decimal, empty when no number was found
	AudioDuration float64
	ErrorMessage  string
	ProcessedAt   time.Time
}

// Succeeded reports whether the run produced a transcript.
func (r Result) Succeeded() bool {
	return r.Outcome == "transcript"
}
