package handlers

import (
	"io"
	"net/http"

	"radarboard/internal/dto"
	apperrors "radarboard/internal/errors"
	"radarboard/internal/models"
	"radarboard/internal/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ===========================================================================
// Storage Handler
// The storage-cell singleton (GET/PUT) and its append-only audit log.
// ===========================================================================

// StorageHandler handles the storage-cell endpoints
type StorageHandler struct {
	storageService services.StorageService
	logger         *zap.Logger
}

// NewStorageHandler creates a new storage handler
func NewStorageHandler(storageService services.StorageService, logger *zap.Logger) *StorageHandler {
	return &StorageHandler{
		storageService: storageService,
		logger:         logger,
	}
}

// Get returns the current selection. Before the first save the selection is
// empty, not missing: clients get a zeroed six-cell row.
// GET /api/v1/storage
func (h *StorageHandler) Get(c *gin.Context) {
	selection, err := h.storageService.Get(c.Request.Context())
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusOK, dto.Success(&models.StorageSelection{ID: models.StorageSelectionID}))
			return
		}
		h.logger.Error("get storage selection failed", zap.Error(err))
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.Success(selection))
}

// Save overwrites all six cells and appends one audit entry
// PUT /api/v1/storage
func (h *StorageHandler) Save(c *gin.Context) {
	viewer, ok := viewerFrom(c)
	if !ok {
		unauthorized(c)
		return
	}

	var req dto.SaveStorageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Error("INVALID_REQUEST", err.Error()))
		return
	}

	selection, err := h.storageService.Save(c.Request.Context(), viewer, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.Success(selection))
}

// Logs returns one page of the audit trail, oldest first
// GET /api/v1/storage/logs?page=1&limit=20
func (h *StorageHandler) Logs(c *gin.Context) {
	var page dto.PaginationRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		c.JSON(http.StatusBadRequest, dto.Error("INVALID_REQUEST", err.Error()))
		return
	}
	page.SetDefaults()

	logs, total, err := h.storageService.Logs(c.Request.Context(), page)
	if err != nil {
		h.logger.Error("list storage logs failed", zap.Error(err))
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.SuccessWithMeta(gin.H{
		"logs": logs,
	}, dto.NewMeta(page.Page, page.Limit, total)))
}

// Stream pushes the current selection over SSE on every save
// GET /api/v1/storage/stream
func (h *StorageHandler) Stream(c *gin.Context) {
	ch, cancel := h.storageService.Subscribe()
	defer cancel()

	selection, err := h.storageService.Get(c.Request.Context())
	if err != nil && !apperrors.Is(err, apperrors.ErrNotFound) {
		respondError(c, err)
		return
	}
	if selection != nil {
		c.SSEvent("snapshot", selection)
		c.Writer.Flush()
	}

	c.Stream(func(w io.Writer) bool {
		select {
		case <-c.Request.Context().Done():
			return false
		case snapshot, open := <-ch:
			if !open {
				return false
			}
			if len(snapshot) > 0 {
				c.SSEvent("snapshot", snapshot[0])
			}
			return true
		}
	})
}

// RegisterRoutes registers the storage routes
func (h *StorageHandler) RegisterRoutes(rg *gin.RouterGroup, authMiddleware gin.HandlerFunc) {
	storage := rg.Group("/storage", authMiddleware)
	{
		storage.GET("", h.Get)
		storage.PUT("", h.Save)
		storage.GET("/logs", h.Logs)
		storage.GET("/stream", h.Stream)
	}
}
