package repositories

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	dbm "routesync/internal/models/db_models"
)

// seedingSavedRouteRepository gives every owner the sample routes the
// first time the owner touches the store. Only wired when
// SEED_MOCK_ROUTES is on, which config restricts to the memory driver.
type seedingSavedRouteRepository struct {
	SavedRouteRepository
	now    func() time.Time
	mu     sync.Mutex
	seeded map[string]bool
}

func NewSeedingSavedRouteRepository(inner SavedRouteRepository) SavedRouteRepository {
	return &seedingSavedRouteRepository{
		SavedRouteRepository: inner,
		now:                  time.Now,
		seeded:               make(map[string]bool),
	}
}

func (r *seedingSavedRouteRepository) ensureSeeded(ctx context.Context, ownerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if ownerID == "" || r.seeded[ownerID] {
		return nil
	}
	for _, route := range SampleRoutes(ownerID, r.now().UTC()) {
		route := route
		if err := r.SavedRouteRepository.Create(ctx, &route); err != nil {
			return err
		}
	}
	r.seeded[ownerID] = true
	return nil
}

func (r *seedingSavedRouteRepository) ListByOwner(ctx context.Context, ownerID string) ([]dbm.SavedRoute, error) {
	if err := r.ensureSeeded(ctx, ownerID); err != nil {
		return nil, err
	}
	return r.SavedRouteRepository.ListByOwner(ctx, ownerID)
}

func (r *seedingSavedRouteRepository) GetByIdAndOwner(ctx context.Context, id uuid.UUID, ownerID string) (*dbm.SavedRoute, error) {
	if err := r.ensureSeeded(ctx, ownerID); err != nil {
		return nil, err
	}
	return r.SavedRouteRepository.GetByIdAndOwner(ctx, id, ownerID)
}

func (r *seedingSavedRouteRepository) DeleteByIdAndOwner(ctx context.Context, id uuid.UUID, ownerID string) (bool, error) {
	if err := r.ensureSeeded(ctx, ownerID); err != nil {
		return false, err
	}
	return r.SavedRouteRepository.DeleteByIdAndOwner(ctx, id, ownerID)
}

// SampleRoutes returns two demo routes for ownerID: a cross-country land
// route saved at now and a sea route saved a day earlier.
func SampleRoutes(ownerID string, now time.Time) []dbm.SavedRoute {
	nycDesc := "Cross-country shipping route"
	seaDesc := "International sea route"
	return []dbm.SavedRoute{
		{
			BaseModel:   dbm.BaseModel{CreatedAt: now},
			OwnerID:     ownerID,
			Name:        "NYC to LA Route",
			Description: &nycDesc,
			Start:       "New York",
			Goal:        "Los Angeles",
			RouteData: datatypes.JSON(`{"avoided_countries":["CUBA","VENEZUELA"],"penalty_countries":[],"paths":[{` +
				`"path":["New York","Chicago","Denver","Los Angeles"],` +
				`"coordinates":[{"node":"New York","latitude":40.7128,"longitude":-74.006},` +
				`{"node":"Chicago","latitude":41.8781,"longitude":-87.6298},` +
				`{"node":"Denver","latitude":39.7392,"longitude":-104.9903},` +
				`{"node":"Los Angeles","latitude":34.0522,"longitude":-118.2437}],` +
				`"edges":[{"from":"New York","to":"Chicago","mode":"land","time":24,"price":1200,"distance":1300},` +
				`{"from":"Chicago","to":"Denver","mode":"land","time":20,"price":900,"distance":1000},` +
				`{"from":"Denver","to":"Los Angeles","mode":"land","time":18,"price":1000,"distance":1100}],` +
				`"time_sum":62,"price_sum":3100,"distance_sum":3400,"CO2_sum":340}]}`),
		},
		{
			BaseModel:   dbm.BaseModel{CreatedAt: now.Add(-24 * time.Hour)},
			OwnerID:     ownerID,
			Name:        "Shanghai to Rotterdam",
			Description: &seaDesc,
			Start:       "Shanghai",
			Goal:        "Rotterdam",
			RouteData: datatypes.JSON(`{"avoided_countries":[],"penalty_countries":[],"paths":[{` +
				`"path":["Shanghai","Singapore","Suez","Rotterdam"],` +
				`"coordinates":[{"node":"Shanghai","latitude":31.2304,"longitude":121.4737},` +
				`{"node":"Singapore","latitude":1.3521,"longitude":103.8198},` +
				`{"node":"Suez","latitude":29.9668,"longitude":32.5498},` +
				`{"node":"Rotterdam","latitude":51.9244,"longitude":4.4777}],` +
				`"edges":[{"from":"Shanghai","to":"Singapore","mode":"sea","time":168,"price":5000,"distance":4900},` +
				`{"from":"Singapore","to":"Suez","mode":"sea","time":240,"price":7000,"distance":8700},` +
				`{"from":"Suez","to":"Rotterdam","mode":"sea","time":192,"price":6000,"distance":6500}],` +
				`"time_sum":600,"price_sum":18000,"distance_sum":20100,"CO2_sum":201}]}`),
		},
	}
}
