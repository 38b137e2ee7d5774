package bootstrap

import (
	"pluralink/internal/pkg/config"

	"go.uber.org/fx"
)

var ConfigModule = fx.Module("config",
	fx.Provide(
		config.LoadConfig,
		func(cfg config.Config) config.SchedulingConfig { return cfg.Scheduling },
		func(cfg config.Config) config.SweepConfig { return cfg.Sweep },
	),
)
