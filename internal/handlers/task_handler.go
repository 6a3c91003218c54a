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
// Task Handler
// Supervisor task management plus the assignee status workflow.
// ===========================================================================

// TaskHandler handles the task endpoints
type TaskHandler struct {
	taskService services.TaskService
	logger      *zap.Logger
}

// NewTaskHandler creates a new task handler
func NewTaskHandler(taskService services.TaskService, logger *zap.Logger) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
		logger:      logger,
	}
}

// List returns the tasks visible to the caller
// GET /api/v1/tasks
func (h *TaskHandler) List(c *gin.Context) {
	viewer, ok := viewerFrom(c)
	if !ok {
		unauthorized(c)
		return
	}

	tasks, err := h.taskService.List(c.Request.Context(), viewer)
	if err != nil {
		h.logger.Error("list tasks failed", zap.Error(err))
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.Success(gin.H{
		"tasks": tasks,
		"total": len(tasks),
	}))
}

// Mine returns only the tasks assigned to the caller
// GET /api/v1/tasks/mine
func (h *TaskHandler) Mine(c *gin.Context) {
	viewer, ok := viewerFrom(c)
	if !ok {
		unauthorized(c)
		return
	}

	tasks, err := h.taskService.ListMine(c.Request.Context(), viewer)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.Success(gin.H{
		"tasks": tasks,
		"total": len(tasks),
	}))
}

// Get returns a single task
// GET /api/v1/tasks/:id
func (h *TaskHandler) Get(c *gin.Context) {
	viewer, ok := viewerFrom(c)
	if !ok {
		unauthorized(c)
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	task, err := h.taskService.Get(c.Request.Context(), viewer, id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.Success(task))
}

// Create stores a new task (supervisor only)
// POST /api/v1/tasks
func (h *TaskHandler) Create(c *gin.Context) {
	viewer, ok := viewerFrom(c)
	if !ok {
		unauthorized(c)
		return
	}

	var req dto.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Error("INVALID_REQUEST", err.Error()))
		return
	}

	task, err := h.taskService.Create(c.Request.Context(), viewer, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.Success(task))
}

// Update partially merges fields into a task (supervisor only)
// PATCH /api/v1/tasks/:id
func (h *TaskHandler) Update(c *gin.Context) {
	viewer, ok := viewerFrom(c)
	if !ok {
		unauthorized(c)
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req dto.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Error("INVALID_REQUEST", err.Error()))
		return
	}

	task, err := h.taskService.Update(c.Request.Context(), viewer, id, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.Success(task))
}

// UpdateStatus moves the workflow status
// PATCH /api/v1/tasks/:id/status
func (h *TaskHandler) UpdateStatus(c *gin.Context) {
	viewer, ok := viewerFrom(c)
	if !ok {
		unauthorized(c)
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req dto.UpdateTaskStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Error("INVALID_REQUEST", err.Error()))
		return
	}

	task, err := h.taskService.UpdateStatus(c.Request.Context(), viewer, id, models.TaskStatus(req.Status))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.Success(task))
}

// Delete soft-deletes a task (supervisor only)
// DELETE /api/v1/tasks/:id
func (h *TaskHandler) Delete(c *gin.Context) {
	viewer, ok := viewerFrom(c)
	if !ok {
		unauthorized(c)
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.taskService.Delete(c.Request.Context(), viewer, id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.Success(gin.H{"deleted": true}))
}

// Stream pushes the caller's filtered snapshot over SSE on every write
// GET /api/v1/tasks/stream
func (h *TaskHandler) Stream(c *gin.Context) {
	viewer, ok := viewerFrom(c)
	if !ok {
		unauthorized(c)
		return
	}

	ch, cancel := h.taskService.Subscribe(viewer)
	defer cancel()

	tasks, err := h.taskService.List(c.Request.Context(), viewer)
	if err != nil {
		respondError(c, err)
		return
	}
	c.SSEvent("snapshot", tasks)
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

// RegisterRoutes registers the task routes
func (h *TaskHandler) RegisterRoutes(rg *gin.RouterGroup, authMiddleware gin.HandlerFunc) {
	tasks := rg.Group("/tasks", authMiddleware)
	{
		tasks.GET("", h.List)
		tasks.GET("/stream", h.Stream)
		tasks.GET("/mine", h.Mine)
		tasks.GET("/:id", h.Get)
		tasks.POST("", h.Create)
		tasks.PATCH("/:id", h.Update)
		tasks.PATCH("/:id/status", h.UpdateStatus)
		tasks.DELETE("/:id", h.Delete)
	}
}
