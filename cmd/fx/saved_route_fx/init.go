package saved_route_fx

import (
	"github.com/sirupsen/logrus"
	"go.uber.org/fx"
	"routesync/internal/repositories"
	"routesync/internal/services"
)

var Module = fx.Provide(provideSavedRouteService)

func provideSavedRouteService(savedRouteRepo repositories.SavedRouteRepository, log *logrus.Logger) services.SavedRouteServiceInterface {

	return services.NewSavedRouteService(savedRouteRepo, log)
}
