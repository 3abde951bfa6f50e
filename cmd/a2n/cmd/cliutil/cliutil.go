// Package cliutil holds state shared by the a2n subcommands.
package cliutil

import (
	"go.uber.org/zap"

	"audio2num/internal/app/common"
	appconfig "audio2num/internal/app/config"
)

var (
	// Verbose switches the logger to development output.
	Verbose bool
	// ConfigPath is the --config flag.
	ConfigPath string

	logger *zap.Logger
)

// LoadConfig reads the application config. A file named with --config must
// exist; the default locations may be absent.
func LoadConfig() (*appconfig.AppConfig, error) {
	return appconfig.Load(appconfig.ResolvePath(ConfigPath), ConfigPath != "")
}

// Logger returns the process logger, building it on first use.
func Logger() *zap.Logger {
	if logger == nil {
		l, err := common.NewLogger(Verbose)
		if err != nil {
			l = zap.NewNop()
		}
		logger = l
	}
	return logger
}

// Sync flushes buffered log entries.
func Sync() {
	if logger != nil {
		_ = logger.Sync()
	}
}
