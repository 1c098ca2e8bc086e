package controllers_fx

import (
	"go.uber.org/fx"
	"routesync/internal/api"
	"routesync/internal/api/controllers"
	"routesync/internal/config"
	"routesync/internal/services"
	"routesync/pkg/utils"
)

var Module = fx.Options(
	fx.Provide(provideSavedRouteController),
	fx.Provide(provideTokenVerifier),
	fx.Provide(api.NewRouter))

func provideSavedRouteController(savedRouteService services.SavedRouteServiceInterface, cfg *config.Config) *controllers.SavedRouteController {
	return controllers.NewSavedRouteController(savedRouteService, cfg.MaxBodyBytes)
}

func provideTokenVerifier(cfg *config.Config) *utils.TokenVerifier {
	return utils.NewTokenVerifier(cfg.IDPJWTSecret, cfg.IDPIssuer)
}
