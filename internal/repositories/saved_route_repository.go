package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	dbm "routesync/internal/models/db_models"
)

// SavedRouteRepository persists saved routes. Every read and delete is
// scoped to an owner; a record stored under another owner behaves exactly
// like a missing one.
type SavedRouteRepository interface {
	// Create inserts route, filling in ID, CreatedAt and UpdatedAt.
	Create(ctx context.Context, route *dbm.SavedRoute) error

	// ListByOwner returns the owner's routes, newest first.
	ListByOwner(ctx context.Context, ownerID string) ([]dbm.SavedRoute, error)

	// GetByIdAndOwner returns (nil, nil) when no such route belongs to ownerID.
	GetByIdAndOwner(ctx context.Context, id uuid.UUID, ownerID string) (*dbm.SavedRoute, error)

	// DeleteByIdAndOwner reports false when no such route belongs to ownerID.
	DeleteByIdAndOwner(ctx context.Context, id uuid.UUID, ownerID string) (bool, error)
}

type savedRouteRepository struct {
	db *gorm.DB
}

func NewSavedRouteRepository(db *gorm.DB) SavedRouteRepository {
	return &savedRouteRepository{db: db}
}

func (r *savedRouteRepository) Create(ctx context.Context, route *dbm.SavedRoute) error {
	return r.db.WithContext(ctx).Create(route).Error
}

func (r *savedRouteRepository) ListByOwner(ctx context.Context, ownerID string) ([]dbm.SavedRoute, error) {

	routes := make([]dbm.SavedRoute, 0)
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&routes).Error

	if err != nil {
		return nil, err
	}

	return routes, nil
}

func (r *savedRouteRepository) GetByIdAndOwner(ctx context.Context, id uuid.UUID, ownerID string) (*dbm.SavedRoute, error) {

	var route dbm.SavedRoute
	err := r.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", id, ownerID).
		First(&route).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &route, nil
}

// DeleteByIdAndOwner issues a single conditional DELETE, so the ownership
// check and the removal cannot interleave with another request.
func (r *savedRouteRepository) DeleteByIdAndOwner(ctx context.Context, id uuid.UUID, ownerID string) (bool, error) {

	result := r.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", id, ownerID).
		Delete(&dbm.SavedRoute{})

	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected > 0, nil
}
