package handlers

import (
	"net/http"

	"radarboard/internal/dto"
	apperrors "radarboard/internal/errors"
	"radarboard/internal/middleware"
	"radarboard/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ===========================================================================
// Shared handler helpers
// ===========================================================================

// viewerFrom builds the service-layer caller identity from the session
// claims set by the auth middleware.
func viewerFrom(c *gin.Context) (services.Viewer, bool) {
	claims, ok := middleware.GetClaims(c)
	if !ok {
		return services.Viewer{}, false
	}
	return services.Viewer{
		UserID:     claims.UserID.String(),
		Username:   claims.Username,
		Role:       claims.Role,
		Department: claims.Department,
	}, true
}

// parseID parses the :id path param. On failure it writes the 400 response
// and returns false.
func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.Error("INVALID_REQUEST", "invalid record id"))
		return uuid.Nil, false
	}
	return id, true
}

// respondError maps a service error to its HTTP response.
func respondError(c *gin.Context, err error) {
	c.JSON(apperrors.StatusCode(err), dto.Error(apperrors.ErrorCode(err), err.Error()))
}

// unauthorized writes the missing-session response.
func unauthorized(c *gin.Context) {
	c.JSON(http.StatusUnauthorized, dto.Error("UNAUTHORIZED", "authentication required"))
}
