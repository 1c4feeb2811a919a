package logger

import (
	"go.uber.org/zap"

	"github.com/aliskhannn/vocabulary-tester/internal/config"
)

// New builds the application logger. Production uses JSON output, everything
// else the human-readable development encoder. When cfg.LogFile is set the logs
// go to that file so an interactive terminal stays clean.
func New(cfg *config.Config) (*zap.Logger, error) {
	var zc zap.Config
	if cfg.Env == "production" {
		zc = zap.NewProductionConfig()
	} else {
		zc = zap.NewDevelopmentConfig()
	}

	if cfg.LogFile != "" {
		zc.OutputPaths = []string{cfg.LogFile}
		zc.ErrorOutputPaths = []string{cfg.LogFile}
	}

	l, err := zc.Build()
	if err != nil {
		return nil, err
	}

	return l.Named("vocabulary-tester"), nil
}
