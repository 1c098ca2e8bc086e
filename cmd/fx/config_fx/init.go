package config_fx

import (
	"go.uber.org/fx"
	"routesync/internal/config"
)

var Module = fx.Provide(config.Load)
