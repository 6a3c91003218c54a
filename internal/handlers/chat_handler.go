package handlers

import (
	"net/http"

	"radarboard/internal/dto"
	"radarboard/internal/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ===========================================================================
// Chat Handler
// Private messages and the per-user contact allow-list. Live delivery goes
// through the per-user Centrifugo channel; these endpoints cover send,
// history and read receipts.
// ===========================================================================

// ChatHandler handles the private messaging endpoints
type ChatHandler struct {
	chatService services.ChatService
	logger      *zap.Logger
}

// NewChatHandler creates a new chat handler
func NewChatHandler(chatService services.ChatService, logger *zap.Logger) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
		logger:      logger,
	}
}

// Messages returns the caller's message history, newest first
// GET /api/v1/chat/messages
func (h *ChatHandler) Messages(c *gin.Context) {
	viewer, ok := viewerFrom(c)
	if !ok {
		unauthorized(c)
		return
	}

	messages, err := h.chatService.Messages(c.Request.Context(), viewer)
	if err != nil {
		h.logger.Error("list messages failed", zap.Error(err))
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.Success(gin.H{
		"messages": messages,
		"total":    len(messages),
	}))
}

// Send stores a new message
// POST /api/v1/chat/messages
func (h *ChatHandler) Send(c *gin.Context) {
	viewer, ok := viewerFrom(c)
	if !ok {
		unauthorized(c)
		return
	}

	var req dto.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Error("INVALID_REQUEST", err.Error()))
		return
	}

	msg, err := h.chatService.Send(c.Request.Context(), viewer, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.Success(msg))
}

// MarkRead flags a message as read
// PATCH /api/v1/chat/messages/:id/read
func (h *ChatHandler) MarkRead(c *gin.Context) {
	viewer, ok := viewerFrom(c)
	if !ok {
		unauthorized(c)
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.chatService.MarkRead(c.Request.Context(), viewer, id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.Success(gin.H{"read": true}))
}

// Contacts returns the caller's allow-list
// GET /api/v1/chat/contacts
func (h *ChatHandler) Contacts(c *gin.Context) {
	viewer, ok := viewerFrom(c)
	if !ok {
		unauthorized(c)
		return
	}

	contacts, err := h.chatService.Contacts(c.Request.Context(), viewer)
	if err != nil {
		h.logger.Error("list contacts failed", zap.Error(err))
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.Success(gin.H{
		"contacts": contacts,
		"total":    len(contacts),
	}))
}

// AddContact grants a sender a place on an allow-list (the caller's own,
// or any user's when called by a supervisor)
// POST /api/v1/chat/contacts
func (h *ChatHandler) AddContact(c *gin.Context) {
	viewer, ok := viewerFrom(c)
	if !ok {
		unauthorized(c)
		return
	}

	var req dto.AddContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Error("INVALID_REQUEST", err.Error()))
		return
	}

	if err := h.chatService.AddContact(c.Request.Context(), viewer, req); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.Success(gin.H{"added": true}))
}

// RemoveContact removes a counterpart from the caller's list
// DELETE /api/v1/chat/contacts/:userId
func (h *ChatHandler) RemoveContact(c *gin.Context) {
	viewer, ok := viewerFrom(c)
	if !ok {
		unauthorized(c)
		return
	}

	contactUserID := c.Param("userId")
	if contactUserID == "" {
		c.JSON(http.StatusBadRequest, dto.Error("INVALID_REQUEST", "userId is required"))
		return
	}

	if err := h.chatService.RemoveContact(c.Request.Context(), viewer, contactUserID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.Success(gin.H{"removed": true}))
}

// RegisterRoutes registers the chat routes
func (h *ChatHandler) RegisterRoutes(rg *gin.RouterGroup, authMiddleware gin.HandlerFunc) {
	chat := rg.Group("/chat", authMiddleware)
	{
		chat.GET("/messages", h.Messages)
		chat.POST("/messages", h.Send)
		chat.PATCH("/messages/:id/read", h.MarkRead)

		chat.GET("/contacts", h.Contacts)
		chat.POST("/contacts", h.AddContact)
		chat.DELETE("/contacts/:userId", h.RemoveContact)
	}
}
