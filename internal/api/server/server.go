package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"audio2num/internal/api/middleware"
	"audio2num/internal/api/v1/handlers"
	v1routes "audio2num/internal/api/v1/routes"
	"audio2num/internal/api/v1/services"
	appconfig "audio2num/internal/app/config"
	"audio2num/internal/app/pipeline"
	"audio2num/internal/app/repository"
)

// Config represents API server configuration
type Config struct {
	Addr           string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	MaxUploadBytes int64
	TempDir        string
	Release        bool
}

// ConfigFromApp derives the server settings from the application config.
func ConfigFromApp(app *appconfig.AppConfig) Config {
	return Config{
		Addr:           app.Server.Addr(),
		ReadTimeout:    app.Server.ReadTimeout(),
		WriteTimeout:   app.Server.WriteTimeout(),
		IdleTimeout:    60 * time.Second,
		MaxUploadBytes: int64(app.Server.MaxUploadMB) << 20,
		TempDir:        app.Audio.TempDir,
		Release:        true,
	}
}

// Server represents the API server
type Server struct {
	config     Config
	router     *gin.Engine
	httpServer *http.Server
	logger     *zap.Logger
}

// NewServer creates a new API server. dao may be nil.
func NewServer(config Config, runner *pipeline.Pipeline, dao repository.ResultDAO, logger *zap.Logger) *Server {
	return newServer(config, services.NewNumberService(runner, dao, config.TempDir, logger), logger)
}

func newServer(config Config, numberService services.NumberService, logger *zap.Logger) *Server {
	if config.Release {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(middleware.RequestID())
	router.Use(middleware.StructuredLogging(logger))
	router.Use(middleware.ErrorHandler(logger))
	router.Use(middleware.Metrics())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now().Unix(),
		})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")
	{
		v1 := api.Group("/v1")
		v1routes.RegisterRoutes(v1, handlers.NewNumberHandler(numberService, config.MaxUploadBytes))
	}

	httpServer := &http.Server{
		Addr:         config.Addr,
		Handler:      router,
		ReadTimeout:  config.ReadTimeout,
		WriteTimeout: config.WriteTimeout,
		IdleTimeout:  config.IdleTimeout,
	}

	return &Server{
		config:     config,
		router:     router,
		httpServer: httpServer,
		logger:     logger,
	}
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Starting API server", zap.String("address", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.Shutdown(shutdownCtx)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down API server...")

	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.logger.Error("Server forced to shutdown", zap.Error(err))
		return err
	}

	s.logger.Info("API server shutdown complete")
	return nil
}

// Router returns the Gin router (useful for testing)
func (s *Server) Router() *gin.Engine {
	return s.router
}
