package db_fx

import (
	"context"

	"github.com/sirupsen/logrus"
	"go.uber.org/fx"

	"routesync/internal/config"
	"routesync/internal/infra"
	dbm "routesync/internal/models/db_models"
	"routesync/internal/repositories"
	mem "routesync/pkg/memcache"
)

var Module = fx.Provide(provideSavedRouteRepo)

// provideSavedRouteRepo picks the store named by STORE_DRIVER. The memory
// store, and the sample-data seeding on top of it, exist for tests and
// local demos only.
func provideSavedRouteRepo(lc fx.Lifecycle, cfg *config.Config, log *logrus.Logger) (repositories.SavedRouteRepository, error) {
	if cfg.StoreDriver == config.StoreDriverMemory {
		log.Warn("using in-memory route store; data is lost on restart")
		repo := repositories.NewMemorySavedRouteRepository(mem.NewOwnedStore[dbm.SavedRoute]())
		if cfg.SeedMockRoutes {
			log.Warn("seeding sample routes for every owner")
			repo = repositories.NewSeedingSavedRouteRepository(repo)
		}
		return repo, nil
	}

	db, err := infra.InitPostgresql(cfg, log)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			infra.ClosePostgresql(db, log)
			return nil
		},
	})
	return repositories.NewSavedRouteRepository(db), nil
}
