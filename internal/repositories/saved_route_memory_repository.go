package repositories

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	dbm "routesync/internal/models/db_models"
	mem "routesync/pkg/memcache"
)

// memorySavedRouteRepository keeps routes in process. It backs
// STORE_DRIVER=memory and is meant for tests and demos only.
type memorySavedRouteRepository struct {
	store *mem.OwnedStore[dbm.SavedRoute]
}

func NewMemorySavedRouteRepository(store *mem.OwnedStore[dbm.SavedRoute]) SavedRouteRepository {
	return &memorySavedRouteRepository{store: store}
}

func (r *memorySavedRouteRepository) Create(ctx context.Context, route *dbm.SavedRoute) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := route.BeforeCreate(nil); err != nil {
		return err
	}
	if !r.store.Put(route.OwnerID, route.ID.String(), route.CreatedAt, cloneRoute(*route)) {
		return fmt.Errorf("repositories: duplicate id %s", route.ID)
	}
	return nil
}

func (r *memorySavedRouteRepository) ListByOwner(ctx context.Context, ownerID string) ([]dbm.SavedRoute, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	stored := r.store.List(ownerID)
	routes := make([]dbm.SavedRoute, len(stored))
	for i, route := range stored {
		routes[i] = cloneRoute(route)
	}
	return routes, nil
}

func (r *memorySavedRouteRepository) GetByIdAndOwner(ctx context.Context, id uuid.UUID, ownerID string) (*dbm.SavedRoute, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	route, ok := r.store.Get(ownerID, id.String())
	if !ok {
		return nil, nil
	}
	out := cloneRoute(route)
	return &out, nil
}

func (r *memorySavedRouteRepository) DeleteByIdAndOwner(ctx context.Context, id uuid.UUID, ownerID string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	return r.store.Delete(ownerID, id.String()), nil
}

// cloneRoute copies the slices so callers cannot mutate stored state.
func cloneRoute(route dbm.SavedRoute) dbm.SavedRoute {
	route.RouteData = append([]byte(nil), route.RouteData...)
	if route.Description != nil {
		d := *route.Description
		route.Description = &d
	}
	return route
}
