package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"routesync/internal/api/controllers"
	"routesync/internal/config"
	"routesync/pkg/middleware"
	"routesync/pkg/utils"
)

// NewRouter builds the engine. /health is public; everything under
// /routes requires a verified identity-provider token.
func NewRouter(
	cfg *config.Config,
	log *logrus.Logger,
	verifier *utils.TokenVerifier,
	savedRouteController *controllers.SavedRouteController) (*gin.Engine, error) {

	if err := controllers.RegisterValidators(); err != nil {
		return nil, err
	}

	r := gin.New()
	r.Use(middleware.TraceIDMiddleware())
	r.Use(middleware.RequestLogger(log))
	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))
	r.Use(middleware.Timeout(cfg.RequestTimeout))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routesGroup := r.Group("/routes")
	routesGroup.Use(middleware.JWTAuthMiddleware(verifier))
	routesGroup.GET("", savedRouteController.ListSavedRoutes)
	routesGroup.POST("", savedRouteController.CreateSavedRoute)
	routesGroup.GET("/:id", savedRouteController.GetSavedRoute)
	routesGroup.DELETE("/:id", savedRouteController.DeleteSavedRoute)
	routesGroup.GET("/:id/geojson", savedRouteController.GetSavedRouteGeoJSON)

	return r, nil
}
