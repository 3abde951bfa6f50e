// Package pipeline turns a source recording into a number: convert to WAV,
// transcribe, then extract the digits from the transcript.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"audio2num/internal/app/api"
	"audio2num/internal/app/audio"
	"audio2num/internal/app/metrics"
	"audio2num/internal/app/numbers"
)

// Metric labels for runs that end without a transcription outcome.
const (
	// OutcomeDecodeError labels runs that stopped because the source could not be decoded.
	OutcomeDecodeError = "decode_error"
	// OutcomeError labels runs aborted by anything else: a missing ffmpeg,
	// cancellation, a temp dir that cannot be written.
	OutcomeError = "error"
)

const tempPattern = "a2n-*.wav"

// FormatConverter transcodes a source file into a WAV file.
type FormatConverter interface {
	ConvertToWav(ctx context.Context, inputFilePath, sourceFormat, outputWavPath string) error
}

// DurationProber measures audio length in seconds.
type DurationProber interface {
	GetAudioDuration(ctx context.Context, filePath string) (float64, error)
}

// Config controls where temporary files go and how sources are read.
type Config struct {
	// TempDir holds the per-run converted file; empty means os.TempDir().
	TempDir string
	// SourceFormat is the default ffmpeg demuxer for sources; empty probes.
	SourceFormat string
}

// Result is what one run produced.
type Result struct {
	Source        string
	Transcription api.Transcription
	Number        numbers.Number
	Found         bool
	// Duration of the converted audio in seconds, 0 when it could not be probed.
	Duration    float64
	ProcessedAt time.Time
}

// Display renders the result for people.
func (r *Result) Display() string {
	switch {
	case !r.Transcription.OK():
		return r.Transcription.Display()
	case r.Found:
		return r.Number.String()
	default:
		return "no number found"
	}
}

// Pipeline runs the conversion, transcription and extraction steps in order.
// It is safe for concurrent use; every run gets its own temporary file.
type Pipeline struct {
	converter   FormatConverter
	transcriber api.Transcriber
	prober      DurationProber
	config      Config
	logger      *zap.Logger
}

// Option customises a Pipeline.
type Option func(*Pipeline)

// WithDurationProber makes runs record the converted audio length.
func WithDurationProber(prober DurationProber) Option {
	return func(p *Pipeline) {
		p.prober = prober
	}
}

// New creates a Pipeline.
func New(converter FormatConverter, transcriber api.Transcriber, config Config, logger *zap.Logger, opts ...Option) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	p := &Pipeline{
		converter:   converter,
		transcriber: transcriber,
		config:      config,
		logger:      logger,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run processes sourcePath using the configured source format.
func (p *Pipeline) Run(ctx context.Context, sourcePath string) (*Result, error) {
	return p.RunWithFormat(ctx, sourcePath, p.config.SourceFormat)
}

// RunWithFormat processes sourcePath read as sourceFormat.
//
// A source that cannot be decoded is returned as *audio.DecodeError. A
// transcription that failed is not an error: it is reported through
// Result.Transcription. The converted file is removed before returning on
// every path.
func (p *Pipeline) RunWithFormat(ctx context.Context, sourcePath, sourceFormat string) (*Result, error) {
	start := time.Now()
	logger := p.logger.With(zap.String("source", sourcePath))

	wavPath, err := p.createTempFile()
	if err != nil {
		metrics.ObservePipelineRun(OutcomeError, time.Since(start), false)
		return nil, err
	}
	defer p.removeTempFile(logger, wavPath)

	if err := p.converter.ConvertToWav(ctx, sourcePath, sourceFormat, wavPath); err != nil {
		outcome := OutcomeError
		var decodeErr *audio.DecodeError
		if errors.As(err, &decodeErr) {
			outcome = OutcomeDecodeError
		}
		metrics.ObservePipelineRun(outcome, time.Since(start), false)
		logger.Warn("conversion failed", zap.Error(err))
		return nil, err
	}

	result := &Result{Source: sourcePath}
	if p.prober != nil {
		duration, err := p.prober.GetAudioDuration(ctx, wavPath)
		if err != nil {
			logger.Debug("duration probe failed", zap.Error(err))
		} else {
			result.Duration = duration
		}
	}

	transcription, err := api.Transcribe(ctx, p.transcriber, wavPath)
	if err != nil {
		metrics.ObservePipelineRun(OutcomeError, time.Since(start), false)
		return nil, fmt.Errorf("transcribe %s: %w", sourcePath, err)
	}
	result.Transcription = transcription

	if transcription.OK() {
		result.Number, result.Found = numbers.Extract(transcription.Text)
	} else {
		logger.Warn("transcription failed",
			zap.String("outcome", string(transcription.Outcome)),
			zap.String("reason", transcription.ErrorMessage()))
	}
	result.ProcessedAt = time.Now()

	metrics.ObservePipelineRun(string(transcription.Outcome), time.Since(start), result.Found)
	logger.Info("pipeline run finished",
		zap.String("outcome", string(transcription.Outcome)),
		zap.Bool("found", result.Found),
		zap.Stringer("number", result.Number),
		zap.Duration("elapsed", time.Since(start)))
	return result, nil
}

func (p *Pipeline) createTempFile() (string, error) {
	file, err := os.CreateTemp(p.config.TempDir, tempPattern)
	if err != nil {
		return "", fmt.Errorf("create temporary wav: %w", err)
	}
	name := file.Name()
	if err := file.Close(); err != nil {
		os.Remove(name)
		return "", fmt.Errorf("create temporary wav: %w", err)
	}
	return name, nil
}

func (p *Pipeline) removeTempFile(logger *zap.Logger, path string) {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		logger.Warn("failed to remove temporary wav", zap.String("path", path), zap.Error(err))
	}
}
