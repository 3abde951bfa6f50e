//go:build wireinject
// +build wireinject

package app

import (
	"context"

	"github.com/google/wire"
	"go.uber.org/zap"

	"audio2num/internal/api/server"
	"audio2num/internal/app/config"
	"audio2num/internal/app/converter"
	"audio2num/internal/app/pipeline"
	"audio2num/internal/app/repository"
)

var pipelineSet = wire.NewSet(provideTranscriber, provideAudioConverter, providePipeline)

func InitializePipeline(cfg *config.AppConfig, name ProviderName, logger *zap.Logger) (*pipeline.Pipeline, error) {
	wire.Build(pipelineSet)
	return &pipeline.Pipeline{}, nil
}

func InitializeConverter(ctx context.Context, cfg *config.AppConfig, name ProviderName, progress converter.ProgressConfig, logger *zap.Logger) (*converter.Converter, func(), error) {
	wire.Build(
		pipelineSet,
		provideResultDAO,
		converter.NewProgressManager,
		converter.NewConverter,
		wire.Bind(new(converter.Runner), new(*pipeline.Pipeline)),
	)
	return &converter.Converter{}, nil, nil
}

func InitializeResultDAO(ctx context.Context, cfg *config.AppConfig) (repository.ResultDAO, func(), error) {
	wire.Build(provideResultDAO)
	return nil, nil, nil
}

func InitializeServer(ctx context.Context, cfg *config.AppConfig, name ProviderName, logger *zap.Logger) (*server.Server, func(), error) {
	wire.Build(pipelineSet, provideOptionalResultDAO, server.ConfigFromApp, server.NewServer)
	return &server.Server{}, nil, nil
}
