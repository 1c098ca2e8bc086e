package logger_fx

import (
	"go.uber.org/fx"
	"routesync/internal/infra"
)

var Module = fx.Provide(infra.NewLogger)
