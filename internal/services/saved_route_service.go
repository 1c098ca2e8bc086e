package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/twpayne/go-geom/encoding/geojson"
	"gorm.io/datatypes"

	"routesync/internal/models/db_models"
	"routesync/internal/models/request_models"
	"routesync/internal/models/response_models"
	"routesync/internal/repositories"
	"routesync/pkg/routedata"
	"routesync/pkg/utils"
)

// SavedRouteServiceInterface is the owner-scoped CRUD contract for saved
// routes. ownerID is always passed explicitly; an empty one fails with
// utils.ErrUnauthenticated before the store is touched.
type SavedRouteServiceInterface interface {
	ListSavedRoutes(ctx context.Context, ownerID string) ([]response_models.SavedRouteResponse, error)
	CreateSavedRoute(ctx context.Context, ownerID string, req request_models.CreateSavedRouteRequest) (*response_models.SavedRouteResponse, error)
	GetSavedRoute(ctx context.Context, ownerID string, routeID string) (*response_models.SavedRouteResponse, error)
	DeleteSavedRoute(ctx context.Context, ownerID string, routeID string) error
	GetSavedRouteFeature(ctx context.Context, ownerID string, routeID string) (*geojson.Feature, error)
}

type SavedRouteService struct {
	savedRouteRepo repositories.SavedRouteRepository
	log            *logrus.Logger
}

func NewSavedRouteService(savedRouteRepo repositories.SavedRouteRepository, log *logrus.Logger) SavedRouteServiceInterface {
	return &SavedRouteService{
		savedRouteRepo: savedRouteRepo,
		log:            log,
	}
}

func (s *SavedRouteService) ListSavedRoutes(ctx context.Context, ownerID string) ([]response_models.SavedRouteResponse, error) {
	if ownerID == "" {
		return nil, utils.ErrUnauthenticated
	}

	routes, err := s.savedRouteRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		s.log.WithError(err).WithField("owner_id", ownerID).Error("list saved routes failed")
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}

	result := make([]response_models.SavedRouteResponse, 0, len(routes))
	for i := range routes {
		result = append(result, toSavedRouteResponse(&routes[i]))
	}

	return result, nil
}

func (s *SavedRouteService) CreateSavedRoute(ctx context.Context, ownerID string, req request_models.CreateSavedRouteRequest) (*response_models.SavedRouteResponse, error) {
	if ownerID == "" {
		return nil, utils.ErrUnauthenticated
	}

	name := strings.TrimSpace(req.Name)
	start := strings.TrimSpace(req.Start)
	goal := strings.TrimSpace(req.Goal)
	if name == "" || start == "" || goal == "" || isAbsentDocument(req.RouteData) {
		return nil, fmt.Errorf("%w: %s", utils.ErrValidation, utils.MsgMissingFields)
	}

	stored, _, err := routedata.Canonical(req.RouteData)
	if err != nil {
		detail := strings.TrimPrefix(err.Error(), routedata.ErrMalformed.Error()+": ")
		return nil, fmt.Errorf("%w: %s: %s", utils.ErrValidation, utils.MsgInvalidRoute, detail)
	}

	var description *string
	if req.Description != nil {
		if d := strings.TrimSpace(*req.Description); d != "" {
			description = &d
		}
	}

	route := db_models.SavedRoute{
		OwnerID:     ownerID,
		Name:        name,
		Description: description,
		Start:       start,
		Goal:        goal,
		RouteData:   datatypes.JSON(stored),
	}
	if err := s.savedRouteRepo.Create(ctx, &route); err != nil {
		s.log.WithError(err).WithField("owner_id", ownerID).Error("create saved route failed")
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}

	s.log.WithFields(logrus.Fields{"owner_id": ownerID, "route_id": route.ID}).Info("saved route created")
	resp := toSavedRouteResponse(&route)
	return &resp, nil
}

func (s *SavedRouteService) GetSavedRoute(ctx context.Context, ownerID string, routeID string) (*response_models.SavedRouteResponse, error) {
	route, err := s.findOwned(ctx, ownerID, routeID)
	if err != nil {
		return nil, err
	}
	resp := toSavedRouteResponse(route)
	return &resp, nil
}

// DeleteSavedRoute fails with utils.ErrRouteNotFound both for unknown ids
// and for ids owned by someone else.
func (s *SavedRouteService) DeleteSavedRoute(ctx context.Context, ownerID string, routeID string) error {
	if ownerID == "" {
		return utils.ErrUnauthenticated
	}

	id, err := uuid.Parse(routeID)
	if err != nil {
		return utils.ErrRouteNotFound
	}

	deleted, err := s.savedRouteRepo.DeleteByIdAndOwner(ctx, id, ownerID)
	if err != nil {
		s.log.WithError(err).WithField("route_id", routeID).Error("delete saved route failed")
		return fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	if !deleted {
		return utils.ErrRouteNotFound
	}

	s.log.WithFields(logrus.Fields{"owner_id": ownerID, "route_id": routeID}).Info("saved route deleted")
	return nil
}

func (s *SavedRouteService) GetSavedRouteFeature(ctx context.Context, ownerID string, routeID string) (*geojson.Feature, error) {
	route, err := s.findOwned(ctx, ownerID, routeID)
	if err != nil {
		return nil, err
	}

	data, err := routedata.Parse(route.RouteData)
	if err != nil {
		// Stored documents were validated on write, so this is corruption.
		s.log.WithError(err).WithField("route_id", routeID).Error("stored route data no longer parses")
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}

	feature, err := data.PrimaryFeature(route.ID.String(), map[string]interface{}{
		"name":  route.Name,
		"start": route.Start,
		"goal":  route.Goal,
	})
	if errors.Is(err, routedata.ErrNoGeometry) {
		return nil, utils.ErrNoGeometry
	}
	if err != nil {
		return nil, err
	}
	return feature, nil
}

func (s *SavedRouteService) findOwned(ctx context.Context, ownerID string, routeID string) (*db_models.SavedRoute, error) {
	if ownerID == "" {
		return nil, utils.ErrUnauthenticated
	}

	id, err := uuid.Parse(routeID)
	if err != nil {
		return nil, utils.ErrRouteNotFound
	}

	route, err := s.savedRouteRepo.GetByIdAndOwner(ctx, id, ownerID)
	if err != nil {
		s.log.WithError(err).WithField("route_id", routeID).Error("get saved route failed")
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	if route == nil {
		return nil, utils.ErrRouteNotFound
	}
	return route, nil
}

// isAbsentDocument treats null and "" like a missing field.
func isAbsentDocument(raw []byte) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) || bytes.Equal(trimmed, []byte(`""`))
}

func toSavedRouteResponse(route *db_models.SavedRoute) response_models.SavedRouteResponse {
	return response_models.SavedRouteResponse{
		ID:          route.ID.String(),
		OwnerID:     route.OwnerID,
		Name:        route.Name,
		Description: route.Description,
		Start:       route.Start,
		Goal:        route.Goal,
		RouteData:   []byte(route.RouteData),
		CreatedAt:   route.CreatedAt,
		UpdatedAt:   route.UpdatedAt,
	}
}
