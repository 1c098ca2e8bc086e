package utils

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// Messages the presenter and other clients match on; keep them stable.
const (
	MsgAuthRequired  = "Authentication required"
	MsgMissingFields = "Missing required fields"
	MsgInvalidBody   = "Invalid request body"
	MsgInvalidRoute  = "Invalid routeData"
	MsgRouteNotFound = "Route not found"
	MsgNoGeometry    = "Route has no drawable geometry"
	MsgRouteDeleted  = "Route deleted successfully"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	TraceID string `json:"trace_id,omitempty"`
}

func traceID(c *gin.Context) string {
	return c.GetString("trace_id")
}

// RespondJSON writes data as the whole body; list and record endpoints
// are not wrapped in an envelope.
func RespondJSON(c *gin.Context, code int, data interface{}) {
	c.JSON(code, data)
}

func RespondError(c *gin.Context, code int, message string) {
	c.JSON(code, ErrorResponse{
		Error:   message,
		TraceID: traceID(c),
	})
}

func AbortWithError(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, ErrorResponse{
		Error:   message,
		TraceID: traceID(c),
	})
}

// HandleServiceError maps service errors to status codes. failure prefixes
// the cause text of unexpected errors, e.g. "Failed to save route".
func HandleServiceError(c *gin.Context, err error, failure string) {
	switch {
	case errors.Is(err, ErrUnauthenticated):
		RespondError(c, http.StatusUnauthorized, MsgAuthRequired)
	case errors.Is(err, ErrValidation):
		RespondError(c, http.StatusBadRequest, validationMessage(err))
	case errors.Is(err, ErrRouteNotFound):
		RespondError(c, http.StatusNotFound, MsgRouteNotFound)
	case errors.Is(err, ErrNoGeometry):
		RespondError(c, http.StatusUnprocessableEntity, MsgNoGeometry)
	default:
		RespondError(c, http.StatusInternalServerError, failure+": "+causeText(err))
	}
}

// validationMessage strips the sentinel prefix so clients see
// "Missing required fields" rather than "validation failed: Missing required fields".
func validationMessage(err error) string {
	msg := strings.TrimPrefix(err.Error(), ErrValidation.Error()+": ")
	if msg == "" || msg == ErrValidation.Error() {
		return MsgMissingFields
	}
	return msg
}

func causeText(err error) string {
	if err == nil {
		return "Unknown error"
	}
	return err.Error()
}
