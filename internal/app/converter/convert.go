package converter

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"audio2num/internal/app/audio"
	"audio2num/internal/app/model"
	"audio2num/internal/app/pipeline"
	"audio2num/internal/app/repository"
	"audio2num/internal/app/util/files"
)

// Runner processes one source file.
type Runner interface {
	Run(ctx context.Context, sourcePath string) (*pipeline.Result, error)
}

// Summary counts what a batch did.
type Summary struct {
	// Processed runs ended with a transcript.
	Processed int
	// Skipped files already had a transcript stored.
	Skipped int
	// Failed runs could not be decoded or transcribed.
	Failed int
}

// Converter runs the pipeline over every audio file in a directory and
// stores each outcome.
type Converter struct {
	runner   Runner
	db       repository.ResultDAO
	progress *ProgressManager
	logger   *zap.Logger
}

func NewConverter(runner Runner, resultDAO repository.ResultDAO, progress *ProgressManager, logger *zap.Logger) *Converter {
	if progress == nil {
		progress = NewProgressManager(ProgressConfig{})
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Converter{
		runner:   runner,
		db:       resultDAO,
		progress: progress,
		logger:   logger,
	}
}

func (c *Converter) Close() error {
	c.progress.Shutdown()
	return c.db.Close()
}

// Do processes up to limit unprocessed files from inputDir, oldest first.
// A limit of zero or less means all of them.
func (c *Converter) Do(ctx context.Context, inputDir string, limit int) (Summary, error) {
	var summary Summary

	absDir, err := files.GetAbsolutePath(inputDir)
	if err != nil {
		return summary, fmt.Errorf("input directory: %w", err)
	}

	fileInfos, err := files.GetAllAudioFiles(absDir)
	if err != nil {
		return summary, err
	}

	filesToProcess, skipped, err := c.filterUnProcessedFiles(ctx, fileInfos, limit)
	if err != nil {
		return summary, err
	}
	summary.Skipped = skipped
	c.logger.Info("starting batch",
		zap.String("dir", absDir),
		zap.Int("files", len(filesToProcess)),
		zap.Int("skipped", skipped))
	if len(filesToProcess) == 0 {
		return summary, nil
	}

	bar := c.progress.CreateBar(len(filesToProcess), "Extracting numbers")
	defer c.progress.Wait()

	for _, file := range filesToProcess {
		if err := ctx.Err(); err != nil {
			bar.Abort()
			return summary, err
		}

		ok, err := c.processFile(ctx, file)
		bar.Increment()
		if err != nil {
			bar.Abort()
			return summary, err
		}
		if ok {
			summary.Processed++
		} else {
			summary.Failed++
		}
	}

	c.logger.Info("batch finished",
		zap.Int("processed", summary.Processed),
		zap.Int("skipped", summary.Skipped),
		zap.Int("failed", summary.Failed))
	return summary, nil
}

func (c *Converter) filterUnProcessedFiles(ctx context.Context, fileInfos []model.FileInfo, limit int) ([]model.FileInfo, int, error) {
	filesToProcess := make([]model.FileInfo, 0, len(fileInfos))
	skipped := 0

	for _, fileInfo := range fileInfos {
		if limit > 0 && len(filesToProcess) >= limit {
			break
		}

		id, err := c.db.CheckIfFileProcessed(ctx, fileInfo.FullPath)
		switch {
		case err == nil:
			c.logger.Debug("already processed, skipping", zap.String("file", fileInfo.Name), zap.Int64("id", id))
			skipped++
			continue
		case !errors.Is(err, sql.ErrNoRows):
			return nil, skipped, fmt.Errorf("check %s: %w", fileInfo.Name, err)
		}

		filesToProcess = append(filesToProcess, fileInfo)
	}
	return filesToProcess, skipped, nil
}

// processFile runs and records one file. It reports whether a transcript was
// produced; only failures that should stop the batch are returned.
func (c *Converter) processFile(ctx context.Context, file model.FileInfo) (bool, error) {
	c.logger.Debug("processing file", zap.String("file", file.Name), zap.Int64("bytes", file.Size))
	result, err := c.runner.Run(ctx, file.FullPath)
	if err != nil {
		var decodeErr *audio.DecodeError
		if !errors.As(err, &decodeErr) {
			return false, fmt.Errorf("process %s: %w", file.Name, err)
		}
		c.logger.Warn("cannot decode file", zap.String("file", file.Name), zap.Error(err))
		if _, err := c.db.Record(ctx, DecodeFailure(file, err)); err != nil {
			return false, fmt.Errorf("record %s: %w", file.Name, err)
		}
		return false, nil
	}

	if _, err := c.db.Record(ctx, ToRecord(file.Name, result)); err != nil {
		return false, fmt.Errorf("record %s: %w", file.Name, err)
	}
	c.logger.Info("processed file", zap.String("file", file.Name), zap.String("result", result.Display()))
	return result.Transcription.OK(), nil
}

// ToRecord converts a pipeline result into a stored row.
func ToRecord(fileName string, result *pipeline.Result) model.Result {
	record := model.Result{
		FileName:      fileName,
		SourcePath:    result.Source,
		Outcome:       string(result.Transcription.Outcome),
		Transcript:    result.Transcription.Text,
		AudioDuration: result.Duration,
		ErrorMessage:  result.Transcription.ErrorMessage(),
		ProcessedAt:   result.ProcessedAt,
	}
	if fileName == "" {
		record.FileName = filepath.Base(result.Source)
	}
	if result.Found {
		record.Number = result.Number.String()
	}
	return record
}

// DecodeFailure builds the stored row for a file that could not be decoded.
func DecodeFailure(file model.FileInfo, err error) model.Result {
	return model.Result{
		FileName:     file.Name,
		SourcePath:   file.FullPath,
		Outcome:      pipeline.OutcomeDecodeError,
		ErrorMessage: err.Error(),
	}
}
