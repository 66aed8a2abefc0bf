package helpers

import (
	"errors"
	"fmt"
	"net/http"

	"live-auction/internal/biddingerrors"
	"live-auction/utils"

	"github.com/gin-gonic/gin"
)

// HandleBindError sends a standardized JSON error for binding failures
func HandleBindError(c *gin.Context, handlerName string, err error) {
	wrappedErr := fmt.Errorf("invalid request parameters: %w", err)
	utils.JSONError(c, http.StatusBadRequest, wrappedErr, "invalid request parameters")
	utils.Warn(handlerName+": binding error", map[string]any{"error": err.Error()})
}

// MapErrorToHTTP maps domain/service errors to HTTP status code and message
func MapErrorToHTTP(err error) (int, string) {
	switch {
	case errors.Is(err, biddingerrors.ErrNoBids):
		return http.StatusNotFound, "no bids accepted yet"
	case errors.Is(err, biddingerrors.ErrAuctionClosed):
		return http.StatusConflict, "auction closed"
	case biddingerrors.IsRejection(err):
		return http.StatusBadRequest, "invalid bid details"
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

// LogSuccess is a small helper to standardize logging of successful operations
func LogSuccess(handlerName, message string, ctx map[string]any) {
	utils.Info(handlerName+": "+message, ctx)
}
