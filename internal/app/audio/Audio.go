// Package audio converts source recordings to the WAV layout transcription
// services expect, by shelling out to ffmpeg and ffprobe.
package audio

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"audio2num/internal/app/model"
)

// Config holds the ffmpeg settings used for conversion.
type Config struct {
	FFmpegPath  string
	FFprobePath string
	SampleRate  int
	Channels    int
}

// DefaultConfig converts to 16 kHz mono PCM with binaries from PATH.
func DefaultConfig() Config {
	return Config{
		FFmpegPath:  "ffmpeg",
		FFprobePath: "ffprobe",
		SampleRate:  16000,
		Channels:    1,
	}
}

// DecodeError is returned when ffmpeg cannot read the source in the declared format.
type DecodeError struct {
	Source string
	Format string
	Stderr string
	Err    error
}

func (e *DecodeError) Error() string {
	format := e.Format
	if format == "" {
		format = "auto"
	}
	msg := fmt.Sprintf("decode %s (format %s): %v", e.Source, format, e.Err)
	if e.Stderr != "" {
		msg += ", stderr: " + e.Stderr
	}
	return msg
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Converter runs ffmpeg and ffprobe.
type Converter struct {
	config Config
	logger *zap.Logger
}

// NewConverter fills unset fields of config from DefaultConfig.
func NewConverter(config Config, logger *zap.Logger) *Converter {
	defaults := DefaultConfig()
	if config.FFmpegPath == "" {
		config.FFmpegPath = defaults.FFmpegPath
	}
	if config.FFprobePath == "" {
		config.FFprobePath = defaults.FFprobePath
	}
	if config.SampleRate <= 0 {
		config.SampleRate = defaults.SampleRate
	}
	if config.Channels <= 0 {
		config.Channels = defaults.Channels
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Converter{config: config, logger: logger}
}

// ConvertToWav transcodes inputFilePath into a PCM WAV at outputWavPath,
// overwriting it. sourceFormat is an ffmpeg demuxer name; empty lets ffmpeg probe.
func (c *Converter) ConvertToWav(ctx context.Context, inputFilePath, sourceFormat, outputWavPath string) error {
	if _, err := os.Stat(inputFilePath); err != nil {
		return &DecodeError{Source: inputFilePath, Format: sourceFormat, Err: err}
	}

	c.logger.Debug("converting to wav",
		zap.String("source", inputFilePath),
		zap.String("format", sourceFormat),
		zap.String("output", outputWavPath))

	cmd := exec.CommandContext(ctx, c.config.FFmpegPath, c.convertArgs(inputFilePath, sourceFormat, outputWavPath)...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return &DecodeError{
				Source: inputFilePath,
				Format: sourceFormat,
				Stderr: strings.TrimSpace(stderr.String()),
				Err:    err,
			}
		}
		return fmt.Errorf("FFmpeg error: %w", err)
	}

	c.logger.Debug("wav conversion completed", zap.String("output", outputWavPath))
	return nil
}

func (c *Converter) convertArgs(inputFilePath, sourceFormat, outputWavPath string) []string {
	args := []string{"-y", "-hide_banner", "-loglevel", "error"}
	if sourceFormat != "" {
		args = append(args, "-f", sourceFormat)
	}
	return append(args,
		"-i", inputFilePath,
		"-vn",
		"-acodec", "pcm_s16le",
		"-ar", strconv.Itoa(c.config.SampleRate),
		"-ac", strconv.Itoa(c.config.Channels),
		"-f", "wav",
		outputWavPath,
	)
}

// Probe reads container and stream information with ffprobe.
func (c *Converter) Probe(ctx context.Context, filePath string) (*model.FFProbeOutput, error) {
	cmd := exec.CommandContext(ctx, c.config.FFprobePath,
		"-v", "quiet", "-print_format", "json", "-show_format", "-show_streams", filePath)
	output, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("ffprobe %s: %w", filePath, err)
	}
	return parseProbeOutput(output)
}

// GetAudioDuration returns the duration of filePath in seconds.
func (c *Converter) GetAudioDuration(ctx context.Context, filePath string) (float64, error) {
	probe, err := c.Probe(ctx, filePath)
	if err != nil {
		return 0, err
	}
	return parseDuration(probe.Format.Duration)
}

// IsTargetWav reports whether filePath already matches the configured PCM layout.
func (c *Converter) IsTargetWav(ctx context.Context, filePath string) (bool, error) {
	probe, err := c.Probe(ctx, filePath)
	if err != nil {
		return false, err
	}
	for _, stream := range probe.Streams {
		if stream.CodecType == "audio" && stream.CodecName == "pcm_s16le" &&
			stream.SampleRate == c.config.SampleRate && stream.Channels == c.config.Channels {
			return true, nil
		}
	}
	return false, nil
}

func parseProbeOutput(output []byte) (*model.FFProbeOutput, error) {
	var probeOutput model.FFProbeOutput
	if err := json.Unmarshal(output, &probeOutput); err != nil {
		return nil, fmt.Errorf("parse ffprobe output: %w", err)
	}
	return &probeOutput, nil
}

func parseDuration(raw string) (float64, error) {
	duration, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	if duration < 0 {
		return 0, fmt.Errorf("invalid duration %q", raw)
	}
	return duration, nil
}
