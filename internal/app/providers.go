package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"audio2num/internal/app/api"
	_ "audio2num/internal/app/api/gemini"
	_ "audio2num/internal/app/api/openai/whisper"
	"audio2num/internal/app/api/provider"
	_ "audio2num/internal/app/api/whisper_server"
	"audio2num/internal/app/audio"
	"audio2num/internal/app/config"
	"audio2num/internal/app/pipeline"
	"audio2num/internal/app/repository"
	"audio2num/internal/app/repository/pg"
	"audio2num/internal/app/repository/sqlite"
)

// ProviderName selects a registered transcription provider; empty means the
// configured default.
type ProviderName string

func provideTranscriber(cfg *config.AppConfig, name ProviderName) (api.Transcriber, error) {
	providerName := string(name)
	if providerName == "" {
		providerName = cfg.DefaultProvider
	}
	return provider.NewTranscriber(providerName, cfg.ProviderSettings(providerName))
}

func provideAudioConverter(cfg *config.AppConfig, logger *zap.Logger) *audio.Converter {
	return audio.NewConverter(audio.Config{
		FFmpegPath:  cfg.Audio.FFmpegPath,
		FFprobePath: cfg.Audio.FFprobePath,
		SampleRate:  cfg.Audio.SampleRate,
		Channels:    cfg.Audio.Channels,
	}, logger)
}

func providePipeline(conv *audio.Converter, transcriber api.Transcriber, cfg *config.AppConfig, logger *zap.Logger) *pipeline.Pipeline {
	return pipeline.New(conv, transcriber, pipeline.Config{
		TempDir:      cfg.Audio.TempDir,
		SourceFormat: cfg.Audio.SourceFormat,
	}, logger, pipeline.WithDurationProber(conv))
}

// provideResultDAO opens the configured store and fails when there is none.
func provideResultDAO(ctx context.Context, cfg *config.AppConfig) (repository.ResultDAO, func(), error) {
	dao, cleanup, err := provideOptionalResultDAO(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	if dao == nil {
		return nil, nil, fmt.Errorf("a result store is required: set store.driver to sqlite or postgres")
	}
	return dao, cleanup, nil
}

// provideOptionalResultDAO returns a nil DAO when store.driver is "none".
func provideOptionalResultDAO(ctx context.Context, cfg *config.AppConfig) (repository.ResultDAO, func(), error) {
	var (
		dao repository.ResultDAO
		err error
	)
	switch cfg.Store.Driver {
	case "sqlite":
		dao, err = sqlite.NewSQLiteDB(ctx, cfg.Store.DSN)
	case "postgres":
		dao, err = pg.NewPostgresDB(ctx, cfg.Store.DSN)
	default:
		return nil, func() {}, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("open %s store: %w", cfg.Store.Driver, err)
	}
	return dao, func() { dao.Close() }, nil
}
