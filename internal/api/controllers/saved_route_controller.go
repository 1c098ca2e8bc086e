package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"routesync/internal/models/request_models"
	"routesync/internal/models/response_models"
	"routesync/internal/services"
	"routesync/pkg/middleware"
	"routesync/pkg/utils"
)

type SavedRouteController struct {
	savedRouteService services.SavedRouteServiceInterface
	maxBodyBytes      int64
}

func NewSavedRouteController(savedRouteService services.SavedRouteServiceInterface, maxBodyBytes int64) *SavedRouteController {
	return &SavedRouteController{
		savedRouteService: savedRouteService,
		maxBodyBytes:      maxBodyBytes,
	}
}

// ListSavedRoutes godoc
// @Summary List saved routes
// @Description Fetch the caller's saved routes, newest first
// @Tags Routes
// @Produce json
// @Success 200 {array} response_models.SavedRouteResponse
// @Failure 401 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Security BearerAuth
// @Router /routes [get]
func (s *SavedRouteController) ListSavedRoutes(c *gin.Context) {
	routes, err := s.savedRouteService.ListSavedRoutes(c.Request.Context(), middleware.OwnerID(c))
	if err != nil {
		utils.HandleServiceError(c, err, "Failed to fetch saved routes")
		return
	}

	utils.RespondJSON(c, http.StatusOK, routes)
}

// CreateSavedRoute godoc
// @Summary Save a route
// @Description Persist a computed route for the caller
// @Tags Routes
// @Accept json
// @Produce json
// @Param request body request_models.CreateSavedRouteRequest true "Name, start, goal and routeData"
// @Success 201 {object} response_models.SavedRouteResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Security BearerAuth
// @Router /routes [post]
func (s *SavedRouteController) CreateSavedRoute(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.maxBodyBytes)

	var req request_models.CreateSavedRouteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, bindErrorMessage(err))
		return
	}

	route, err := s.savedRouteService.CreateSavedRoute(c.Request.Context(), middleware.OwnerID(c), req)
	if err != nil {
		utils.HandleServiceError(c, err, "Failed to save route")
		return
	}

	utils.RespondJSON(c, http.StatusCreated, route)
}

// GetSavedRoute godoc
// @Summary Get a saved route
// @Tags Routes
// @Produce json
// @Param id path string true "Route ID"
// @Success 200 {object} response_models.SavedRouteResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security BearerAuth
// @Router /routes/{id} [get]
func (s *SavedRouteController) GetSavedRoute(c *gin.Context) {
	route, err := s.savedRouteService.GetSavedRoute(c.Request.Context(), middleware.OwnerID(c), c.Param("id"))
	if err != nil {
		utils.HandleServiceError(c, err, "Failed to fetch saved route")
		return
	}

	utils.RespondJSON(c, http.StatusOK, route)
}

// DeleteSavedRoute godoc
// @Summary Delete a saved route
// @Description Unknown ids and ids owned by someone else both answer 404
// @Tags Routes
// @Produce json
// @Param id path string true "Route ID"
// @Success 200 {object} response_models.MessageResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security BearerAuth
// @Router /routes/{id} [delete]
func (s *SavedRouteController) DeleteSavedRoute(c *gin.Context) {
	if err := s.savedRouteService.DeleteSavedRoute(c.Request.Context(), middleware.OwnerID(c), c.Param("id")); err != nil {
		utils.HandleServiceError(c, err, "Failed to delete route")
		return
	}

	utils.RespondJSON(c, http.StatusOK, response_models.MessageResponse{Message: utils.MsgRouteDeleted})
}

// GetSavedRouteGeoJSON godoc
// @Summary Primary path as GeoJSON
// @Description LineString Feature of the route's primary path
// @Tags Routes
// @Produce json
// @Param id path string true "Route ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} utils.ErrorResponse
// @Failure 422 {object} utils.ErrorResponse
// @Security BearerAuth
// @Router /routes/{id}/geojson [get]
func (s *SavedRouteController) GetSavedRouteGeoJSON(c *gin.Context) {
	feature, err := s.savedRouteService.GetSavedRouteFeature(c.Request.Context(), middleware.OwnerID(c), c.Param("id"))
	if err != nil {
		utils.HandleServiceError(c, err, "Failed to export route")
		return
	}

	body, err := json.Marshal(feature)
	if err != nil {
		utils.HandleServiceError(c, err, "Failed to export route")
		return
	}
	c.Data(http.StatusOK, "application/geo+json", body)
}

func bindErrorMessage(err error) string {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		return utils.MsgMissingFields
	}
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return "Request body too large"
	}
	return utils.MsgInvalidBody
}
