package modules

import (
	"fmt"
	"log/slog"

	"github.com/memohai/agentcore/internal/agentfs"
	"github.com/memohai/agentcore/internal/config"
	"github.com/memohai/agentcore/internal/logger"
	"go.uber.org/fx"
)

// ConfigPath is the TOML file to load; empty means CONFIG_PATH or the default.
type ConfigPath string

var InfraModule = fx.Module(
	"Infra",
	fx.Provide(
		provideConfig,
		provideLogger,
		provideLayout,
	),
)

// ---------------------------------------------------------------------------
// infrastructure providers
// ---------------------------------------------------------------------------

func provideConfig(path ConfigPath) (config.Config, error) {
	var (
		cfg config.Config
		err error
	)
	if path == "" {
		cfg, err = config.LoadFromEnv()
	} else {
		cfg, err = config.Load(string(path))
	}
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

func provideLogger(cfg config.Config) *slog.Logger {
	logger.Init(cfg.Log.Level, cfg.Log.Format)
	if cfg.Monitoring.Enabled {
		logger.Info("agent monitoring enabled", slog.String("home", cfg.Paths.HomeDir))
	}
	return logger.L
}

func provideLayout(cfg config.Config) agentfs.Layout {
	return agentfs.NewLayout(cfg.Paths.HomeDir)
}
