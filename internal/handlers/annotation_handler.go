package handlers

import (
	"io"
	"net/http"

	"radarboard/internal/dto"
	"radarboard/internal/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ===========================================================================
// Annotation Handler
// ===========================================================================

// AnnotationHandler handles the annotation endpoints
type AnnotationHandler struct {
	annotationService services.AnnotationService
	logger            *zap.Logger
}

// NewAnnotationHandler creates a new annotation handler
func NewAnnotationHandler(annotationService services.AnnotationService, logger *zap.Logger) *AnnotationHandler {
	return &AnnotationHandler{
		annotationService: annotationService,
		logger:            logger,
	}
}

// List returns the live annotations
// GET /api/v1/annotations
func (h *AnnotationHandler) List(c *gin.Context) {
	annotations, err := h.annotationService.List(c.Request.Context())
	if err != nil {
		h.logger.Error("list annotations failed", zap.Error(err))
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.Success(gin.H{
		"annotations": annotations,
		"total":       len(annotations),
	}))
}

// Get returns a single annotation
// GET /api/v1/annotations/:id
func (h *AnnotationHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	annotation, err := h.annotationService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.Success(annotation))
}

// Create stores a new annotation
// POST /api/v1/annotations
func (h *AnnotationHandler) Create(c *gin.Context) {
	viewer, ok := viewerFrom(c)
	if !ok {
		unauthorized(c)
		return
	}

	var req dto.CreateAnnotationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Error("INVALID_REQUEST", err.Error()))
		return
	}

	annotation, err := h.annotationService.Create(c.Request.Context(), viewer, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.Success(annotation))
}

// Update partially merges fields into an annotation
// PATCH /api/v1/annotations/:id
func (h *AnnotationHandler) Update(c *gin.Context) {
	viewer, ok := viewerFrom(c)
	if !ok {
		unauthorized(c)
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req dto.UpdateAnnotationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Error("INVALID_REQUEST", err.Error()))
		return
	}

	annotation, err := h.annotationService.Update(c.Request.Context(), viewer, id, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.Success(annotation))
}

// Delete soft-deletes an annotation
// DELETE /api/v1/annotations/:id
func (h *AnnotationHandler) Delete(c *gin.Context) {
	viewer, ok := viewerFrom(c)
	if !ok {
		unauthorized(c)
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.annotationService.Delete(c.Request.Context(), viewer, id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.Success(gin.H{"deleted": true}))
}

// Stream pushes the live annotation snapshot over SSE on every write
// GET /api/v1/annotations/stream
func (h *AnnotationHandler) Stream(c *gin.Context) {
	ch, cancel := h.annotationService.Subscribe()
	defer cancel()

	annotations, err := h.annotationService.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.SSEvent("snapshot", annotations)
	c.Writer.Flush()

	c.Stream(func(w io.Writer) bool {
		select {
		case <-c.Request.Context().Done():
			return false
		case snapshot, open := <-ch:
			if !open {
				return false
			}
			c.SSEvent("snapshot", snapshot)
			return true
		}
	})
}

// RegisterRoutes registers the annotation routes
func (h *AnnotationHandler) RegisterRoutes(rg *gin.RouterGroup, authMiddleware gin.HandlerFunc) {
	annotations := rg.Group("/annotations", authMiddleware)
	{
		annotations.GET("", h.List)
		annotations.GET("/stream", h.Stream)
		annotations.GET("/:id", h.Get)
		annotations.POST("", h.Create)
		annotations.PATCH("/:id", h.Update)
		annotations.DELETE("/:id", h.Delete)
	}
}
