// Package logger builds the zap logger used across the tool.
package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/mkawano/eyewear-stock/config"
)

// New builds a zap logger from config. Development gets console encoding
// and debug level unless overridden; anything else gets production JSON.
func New(cfg config.LoggerConfig, env string) (*zap.Logger, error) {
	var zc zap.Config
	if env == "dev" || env == "development" {
		zc = zap.NewDevelopmentConfig()
	} else {
		zc = zap.NewProductionConfig()
	}
	if cfg.Encoding != "" {
		zc.Encoding = cfg.Encoding
	}
	if cfg.Level != "" {
		lvl, err := zapcore.ParseLevel(cfg.Level)
		if err != nil {
			return nil, err
		}
		zc.Level = zap.NewAtomicLevelAt(lvl)
	}
	zc.DisableCaller = cfg.DisableCaller
	zc.DisableStacktrace = cfg.DisableStacktrace
	return zc.Build()
}
