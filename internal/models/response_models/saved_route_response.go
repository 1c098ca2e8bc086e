package response_models

import (
	"encoding/json"
	"time"
)

type SavedRouteResponse struct {
	ID          string          `json:"id"`
	OwnerID     string          `json:"ownerId"`
	Name        string          `json:"name"`
	Description *string         `json:"description,omitempty"`
	Start       string          `json:"start"`
	Goal        string          `json:"goal"`
	RouteData   json.RawMessage `json:"routeData"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
