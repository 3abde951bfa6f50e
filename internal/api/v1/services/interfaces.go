package services

import (
	"context"
	"io"

	"audio2num/internal/api/v1/dto"
)

// NumberService backs the v1 handlers.
type NumberService interface {
	// Extract finds the number in text.
	Extract(ctx context.Context, req *dto.ExtractRequest) (*dto.ExtractResponse, error)

	// Process runs the pipeline on an uploaded file. format may be empty.
	Process(ctx context.Context, fileName, format string, content io.Reader) (*dto.ProcessResponse, error)

	// ListResults returns stored runs.
	ListResults(ctx context.Context) (*dto.ResultsResponse, error)
}
