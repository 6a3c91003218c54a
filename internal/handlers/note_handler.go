package handlers

import (
	"io"
	"net/http"

	"radarboard/internal/dto"
	"radarboard/internal/models"
	"radarboard/internal/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ===========================================================================
// Note Handler
// CRUD plus a server-sent-events stream of the caller's filtered view.
// ===========================================================================

// NoteHandler handles the note endpoints
type NoteHandler struct {
	noteService services.NoteService
	logger      *zap.Logger
}

// NewNoteHandler creates a new note handler
func NewNoteHandler(noteService services.NoteService, logger *zap.Logger) *NoteHandler {
	return &NoteHandler{
		noteService: noteService,
		logger:      logger,
	}
}

// List returns the notes visible to the caller
// GET /api/v1/notes
func (h *NoteHandler) List(c *gin.Context) {
	viewer, ok := viewerFrom(c)
	if !ok {
		unauthorized(c)
		return
	}

	notes, err := h.noteService.List(c.Request.Context(), viewer)
	if err != nil {
		h.logger.Error("list notes failed", zap.Error(err))
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.Success(gin.H{
		"notes": notes,
		"total": len(notes),
	}))
}

// Radar returns the shared RADAR board
// GET /api/v1/notes/radar
func (h *NoteHandler) Radar(c *gin.Context) {
	viewer, ok := viewerFrom(c)
	if !ok {
		unauthorized(c)
		return
	}

	notes, err := h.noteService.ListCategory(c.Request.Context(), viewer, models.CategoryRadar)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.Success(gin.H{
		"notes": notes,
		"total": len(notes),
	}))
}

// Get returns a single note
// GET /api/v1/notes/:id
func (h *NoteHandler) Get(c *gin.Context) {
	viewer, ok := viewerFrom(c)
	if !ok {
		unauthorized(c)
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	note, err := h.noteService.Get(c.Request.Context(), viewer, id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.Success(note))
}

// Create stores a new note
// POST /api/v1/notes
func (h *NoteHandler) Create(c *gin.Context) {
	viewer, ok := viewerFrom(c)
	if !ok {
		unauthorized(c)
		return
	}

	var req dto.CreateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Error("INVALID_REQUEST", err.Error()))
		return
	}

	note, err := h.noteService.Create(c.Request.Context(), viewer, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.Success(note))
}

// Update partially merges fields into a note
// PATCH /api/v1/notes/:id
func (h *NoteHandler) Update(c *gin.Context) {
	viewer, ok := viewerFrom(c)
	if !ok {
		unauthorized(c)
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req dto.UpdateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Error("INVALID_REQUEST", err.Error()))
		return
	}

	note, err := h.noteService.Update(c.Request.Context(), viewer, id, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.Success(note))
}

// ToggleCompleted flips the done flag
// PATCH /api/v1/notes/:id/completed
func (h *NoteHandler) ToggleCompleted(c *gin.Context) {
	viewer, ok := viewerFrom(c)
	if !ok {
		unauthorized(c)
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req dto.ToggleCompletedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Error("INVALID_REQUEST", err.Error()))
		return
	}

	note, err := h.noteService.ToggleCompleted(c.Request.Context(), viewer, id, *req.Completed)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.Success(note))
}

// Delete soft-deletes a note
// DELETE /api/v1/notes/:id
func (h *NoteHandler) Delete(c *gin.Context) {
	viewer, ok := viewerFrom(c)
	if !ok {
		unauthorized(c)
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.noteService.Delete(c.Request.Context(), viewer, id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.Success(gin.H{"deleted": true}))
}

// Stream pushes the caller's filtered snapshot over SSE on every write
// GET /api/v1/notes/stream
func (h *NoteHandler) Stream(c *gin.Context) {
	viewer, ok := viewerFrom(c)
	if !ok {
		unauthorized(c)
		return
	}

	ch, cancel := h.noteService.Subscribe(viewer)
	defer cancel()

	// Initial snapshot so the client renders without waiting for a write.
	notes, err := h.noteService.List(c.Request.Context(), viewer)
	if err != nil {
		respondError(c, err)
		return
	}
	c.SSEvent("snapshot", notes)
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

// RegisterRoutes registers the note routes
func (h *NoteHandler) RegisterRoutes(rg *gin.RouterGroup, authMiddleware gin.HandlerFunc) {
	notes := rg.Group("/notes", authMiddleware)
	{
		notes.GET("", h.List)
		notes.GET("/stream", h.Stream)
		notes.GET("/radar", h.Radar)
		notes.GET("/:id", h.Get)
		notes.POST("", h.Create)
		notes.PATCH("/:id", h.Update)
		notes.PATCH("/:id/completed", h.ToggleCompleted)
		notes.DELETE("/:id", h.Delete)
	}
}
