package request_models

import "encoding/json"

// CreateSavedRouteRequest is the body of POST /routes. RouteData stays raw
// here; it is validated and kept byte-for-byte by the service.
type CreateSavedRouteRequest struct {
	Name        string          `json:"name" binding:"required,notblank"`
	Description *string         `json:"description"`
	Start       string          `json:"start" binding:"required,notblank"`
	Goal        string          `json:"goal" binding:"required,notblank"`
	RouteData   json.RawMessage `json:"routeData" binding:"required"`
}
