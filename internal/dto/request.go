package dto

import "time"

// ===========================================================================
// Request DTOs
// Validated request bodies for the record endpoints. Update requests use
// pointers: nil means "field not supplied", so only supplied fields enter
// the partial merge.
// ===========================================================================

// PaginationRequest standard paging query params.
type PaginationRequest struct {
	// Page current page (1-based)
	Page int `form:"page" binding:"min=0"`

	// Limit records per page (max 100)
	Limit int `form:"limit" binding:"min=0,max=100"`
}

// SetDefaults applies default paging values.
func (p *PaginationRequest) SetDefaults() {
	if p.Page <= 0 {
		p.Page = 1
	}
	if p.Limit <= 0 {
		p.Limit = 20
	}
}

// Offset computes the database query offset.
func (p *PaginationRequest) Offset() int {
	return (p.Page - 1) * p.Limit
}

// ===========================================================================
// Note requests
// ===========================================================================

// CreateNoteRequest body for creating a note.
type CreateNoteRequest struct {
	Title    string `json:"title" binding:"required,max=255"`
	Content  string `json:"content" binding:"required"`
	Category string `json:"category" binding:"required"`
}

// UpdateNoteRequest body for partially updating a note.
type UpdateNoteRequest struct {
	Title    *string `json:"title" binding:"omitempty,max=255"`
	Content  *string `json:"content"`
	Category *string `json:"category"`
}

// ToggleCompletedRequest body for toggling a note's completed flag.
type ToggleCompletedRequest struct {
	Completed *bool `json:"completed" binding:"required"`
}

// ===========================================================================
// Task requests
// ===========================================================================

// CreateTaskRequest body for creating a task.
type CreateTaskRequest struct {
	Title       string     `json:"title" binding:"required,max=255"`
	Description string     `json:"description" binding:"required"`
	Priority    string     `json:"priority" binding:"omitempty,oneof=baixa media alta urgente"`
	Shift       string     `json:"shift" binding:"omitempty,oneof=A B C D E todos"`
	AssignedTo  []string   `json:"assignedTo" binding:"required,min=1"`
	DueDate     *time.Time `json:"dueDate"`
}

// UpdateTaskRequest body for partially updating a task.
type UpdateTaskRequest struct {
	Title       *string    `json:"title" binding:"omitempty,max=255"`
	Description *string    `json:"description"`
	Priority    *string    `json:"priority" binding:"omitempty,oneof=baixa media alta urgente"`
	Shift       *string    `json:"shift" binding:"omitempty,oneof=A B C D E todos"`
	AssignedTo  []string   `json:"assignedTo"`
	DueDate     *time.Time `json:"dueDate"`
}

// UpdateTaskStatusRequest body for a task status transition.
type UpdateTaskStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pendente em_andamento concluida cancelada"`
}

// ===========================================================================
// Annotation requests
// ===========================================================================

// CreateAnnotationRequest body for creating an annotation.
type CreateAnnotationRequest struct {
	Title   string  `json:"title" binding:"required,max=255"`
	Content string  `json:"content" binding:"required"`
	Type    string  `json:"type" binding:"omitempty,oneof=parada link observacao geral"`
	URL     *string `json:"url" binding:"omitempty,url"`
}

// UpdateAnnotationRequest body for partially updating an annotation.
type UpdateAnnotationRequest struct {
	Title   *string `json:"title" binding:"omitempty,max=255"`
	Content *string `json:"content"`
	Type    *string `json:"type" binding:"omitempty,oneof=parada link observacao geral"`
	URL     *string `json:"url" binding:"omitempty,url"`
}

// ===========================================================================
// Storage requests
// ===========================================================================

// SaveStorageRequest body for overwriting the storage selection singleton.
// All six cells are always submitted; empty string clears a cell.
type SaveStorageRequest struct {
	TegRoad           string `json:"tegRoad" binding:"max=64"`
	TegRoadTombador   string `json:"tegRoadTombador" binding:"max=64"`
	TegRailwayMoega01 string `json:"tegRailwayMoega01" binding:"max=64"`
	TegRailwayMoega02 string `json:"tegRailwayMoega02" binding:"max=64"`
	TeagRoad          string `json:"teagRoad" binding:"max=64"`
	TeagRailway       string `json:"teagRailway" binding:"max=64"`
}

// ===========================================================================
// Private message requests
// ===========================================================================

// SendMessageRequest body for sending a private message.
type SendMessageRequest struct {
	RecipientID   string `json:"recipientId" binding:"required"`
	RecipientName string `json:"recipientName" binding:"required,max=255"`
	Content       string `json:"content" binding:"required"`
}

// AddContactRequest body for allowing a chat contact. OwnerID names the
// list the grant goes onto; empty means the caller's own list, anything
// else requires the supervisor role.
type AddContactRequest struct {
	OwnerID       string `json:"ownerId"`
	ContactUserID string `json:"userId" binding:"required"`
	Username      string `json:"username" binding:"required,max=255"`
	Department    string `json:"department" binding:"required,oneof=cco balanca supervisor"`
}
