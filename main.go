package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/sme-marketplace/server/internal/core"
	errx "github.com/sme-marketplace/server/internal/core/error"
	"github.com/sme-marketplace/server/internal/marketplace/model"
	logx "github.com/sme-marketplace/server/pkg/logger"
	pkgredis "github.com/sme-marketplace/server/pkg/redis"
)

// AppConfig defines all configurable parameters of the marketplace tool,
// sourced from environment variables (loaded from .env for local runs).
type AppConfig struct {
	Environment core.Environment `envconfig:"MARKETPLACE_ENV" default:"development"`
	LogLevel    string           `envconfig:"LOG_LEVEL"`

	// Infrastructure
	Redis pkgredis.Config

	// Item mapping
	Mapper model.MapperConfig
}

// loadConfig reads .env when present and then the process environment.
func loadConfig(envFile string) (AppConfig, error) {
	if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
		logx.Warn().Err(err).Str("file", envFile).Msg("could not load env file")
	}

	var cfg AppConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return AppConfig{}, err
	}
	return cfg, nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		logx.Error().Err(err).Int("status", errx.StatusOf(err)).Msg("command failed")
		os.Exit(1)
	}
}
