package services

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"audio2num/internal/api/errors"
	"audio2num/internal/api/v1/dto"
	"audio2num/internal/app/audio"
	"audio2num/internal/app/converter"
	"audio2num/internal/app/numbers"
	"audio2num/internal/app/pipeline"
	"audio2num/internal/app/repository"
)

// PipelineRunner is the part of *pipeline.Pipeline the service needs.
type PipelineRunner interface {
	Run(ctx context.Context, sourcePath string) (*pipeline.Result, error)
	RunWithFormat(ctx context.Context, sourcePath, sourceFormat string) (*pipeline.Result, error)
}

type numberService struct {
	runner  PipelineRunner
	dao     repository.ResultDAO
	tempDir string
	logger  *zap.Logger
}

// NewNumberService creates the service. dao may be nil, in which case runs
// are not stored and ListResults reports the store as unavailable.
func NewNumberService(runner PipelineRunner, dao repository.ResultDAO, tempDir string, logger *zap.Logger) NumberService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &numberService{
		runner:  runner,
		dao:     dao,
		tempDir: tempDir,
		logger:  logger,
	}
}

func (s *numberService) Extract(ctx context.Context, req *dto.ExtractRequest) (*dto.ExtractResponse, error) {
	text := req.Input()
	resp := &dto.ExtractResponse{Tokens: numbers.Tokens(text)}
	if n, ok := numbers.Extract(text); ok {
		resp.Found = true
		resp.Number = &n
	}
	return resp, nil
}

func (s *numberService) Process(ctx context.Context, fileName, format string, content io.Reader) (*dto.ProcessResponse, error) {
	uploadPath, err := s.saveUpload(fileName, content)
	if err != nil {
		return nil, err
	}
	defer os.Remove(uploadPath)

	var result *pipeline.Result
	if format == "" {
		result, err = s.runner.Run(ctx, uploadPath)
	} else {
		result, err = s.runner.RunWithFormat(ctx, uploadPath, format)
	}
	if err != nil {
		var decodeErr *audio.DecodeError
		if stderrors.As(err, &decodeErr) {
			return nil, errors.NewDecodeError(decodeErr.Stderr)
		}
		return nil, fmt.Errorf("process %s: %w", fileName, err)
	}
	result.Source = fileName

	resp := dto.NewProcessResponse(fileName, result)
	if s.dao != nil {
		id, err := s.dao.Record(ctx, converter.ToRecord(fileName, result))
		if err != nil {
			s.logger.Warn("failed to store result", zap.String("file", fileName), zap.Error(err))
		} else {
			resp.ID = id
		}
	}
	return resp, nil
}

func (s *numberService) saveUpload(fileName string, content io.Reader) (string, error) {
	file, err := os.CreateTemp(s.tempDir, "a2n-upload-*"+filepath.Ext(fileName))
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	if _, err := io.Copy(file, content); err != nil {
		file.Close()
		os.Remove(file.Name())
		return "", fmt.Errorf("save upload: %w", err)
	}
	if err := file.Close(); err != nil {
		os.Remove(file.Name())
		return "", fmt.Errorf("save upload: %w", err)
	}
	return file.Name(), nil
}

func (s *numberService) ListResults(ctx context.Context) (*dto.ResultsResponse, error) {
	if s.dao == nil {
		return nil, errors.NewServiceUnavailableError("result store is not configured")
	}
	results, err := s.dao.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list results: %w", err)
	}
	return dto.NewResultsResponse(results), nil
}
