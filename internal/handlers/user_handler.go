package handlers

import (
	"net/http"

	"radarboard/internal/dto"
	"radarboard/internal/middleware"
	"radarboard/internal/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ===========================================================================
// User Handler
// Profile listing for the contact picker and supervisor views.
// ===========================================================================

// UserHandler handles the user endpoints
type UserHandler struct {
	userService services.UserService
	logger      *zap.Logger
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService services.UserService, logger *zap.Logger) *UserHandler {
	return &UserHandler{
		userService: userService,
		logger:      logger,
	}
}

// List returns all user profiles (supervisor only)
// GET /api/v1/users
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.userService.List(c.Request.Context())
	if err != nil {
		h.logger.Error("list users failed", zap.Error(err))
		respondError(c, err)
		return
	}

	resp := make([]*UserResponse, 0, len(users))
	for i := range users {
		resp = append(resp, toUserResponse(&users[i]))
	}

	c.JSON(http.StatusOK, dto.Success(gin.H{
		"users": resp,
		"total": len(resp),
	}))
}

// Get returns a single profile
// GET /api/v1/users/:id
func (h *UserHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	user, err := h.userService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.Success(toUserResponse(user)))
}

// RegisterRoutes registers the user routes
func (h *UserHandler) RegisterRoutes(rg *gin.RouterGroup, authMiddleware gin.HandlerFunc) {
	users := rg.Group("/users", authMiddleware)
	{
		users.GET("", middleware.RequireSupervisor(), h.List)
		users.GET("/:id", h.Get)
	}
}
