package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// ===========================================================================
// Task (supervisor-assigned work item)
// Created by a supervisor and assigned to one or more shift operators.
// Structurally a Note with workflow fields on top: priority, status, shift
// and assignee list.
// ===========================================================================

// TaskPriority urgency of a task.
type TaskPriority string

const (
	PriorityLow    TaskPriority = "baixa"
	PriorityMedium TaskPriority = "media"
	PriorityHigh   TaskPriority = "alta"
	PriorityUrgent TaskPriority = "urgente"
)

// Valid reports whether p is a known priority.
func (p TaskPriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// TaskStatus workflow state of a task.
type TaskStatus string

const (
	StatusPending    TaskStatus = "pendente"
	StatusInProgress TaskStatus = "em_andamento"
	StatusDone       TaskStatus = "concluida"
	StatusCancelled  TaskStatus = "cancelada"
)

// Valid reports whether s is a known status.
func (s TaskStatus) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusDone, StatusCancelled:
		return true
	}
	return false
}

// Shift identifies the rotating shift a task targets.
type Shift string

const (
	ShiftA   Shift = "A"
	ShiftB   Shift = "B"
	ShiftC   Shift = "C"
	ShiftD   Shift = "D"
	ShiftE   Shift = "E"
	ShiftAll Shift = "todos"
)

// Valid reports whether s is a known shift.
func (s Shift) Valid() bool {
	switch s {
	case ShiftA, ShiftB, ShiftC, ShiftD, ShiftE, ShiftAll:
		return true
	}
	return false
}

// StringList is a JSON-encoded list of usernames.
type StringList []string

// Value implements driver.Valuer for JSONB columns.
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return json.Marshal([]string{})
	}
	return json.Marshal(l)
}

// Scan implements sql.Scanner for JSONB columns.
func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = []string{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	}
	return errors.New("unsupported column type for StringList")
}

// Contains reports whether name is in the list.
func (l StringList) Contains(name string) bool {
	for _, s := range l {
		if s == name {
			return true
		}
	}
	return false
}

// Task is a supervisor-assigned work item.
type Task struct {
	RecordBase

	// Title short heading
	Title string `gorm:"size:255;not null" json:"title"`

	// Description detailed instructions
	Description string `gorm:"type:text;not null" json:"description"`

	// Priority urgency level
	Priority TaskPriority `gorm:"size:20;not null;default:'media'" json:"priority"`

	// Status workflow state
	Status TaskStatus `gorm:"size:20;not null;default:'pendente';index" json:"status"`

	// Shift target shift, or "todos" for all shifts
	Shift Shift `gorm:"size:10;not null;default:'todos'" json:"shift"`

	// AssignedTo usernames the task is assigned to
	AssignedTo StringList `gorm:"type:jsonb;default:'[]'" json:"assignedTo"`

	// AssignedBy username of the supervisor who assigned the task
	AssignedBy string `gorm:"size:255;not null" json:"assignedBy"`

	// AssignedByDepartment department of the assigning supervisor
	AssignedByDepartment Department `gorm:"size:20;not null" json:"assignedByDepartment"`

	// DueDate optional deadline
	DueDate *time.Time `json:"dueDate,omitempty"`

	// CompletedAt set when the task reaches "concluida"
	CompletedAt *time.Time `json:"completedAt,omitempty"`

	// CompletedBy username of whoever completed the task
	CompletedBy *string `gorm:"size:255" json:"completedBy,omitempty"`
}

// TableName keeps the original collection name.
func (Task) TableName() string {
	return "tarefas"
}

// IsAssignedTo reports whether the task is assigned to the given username.
func (t *Task) IsAssignedTo(username string) bool {
	return t.AssignedTo.Contains(username)
}

// IsOpen reports whether the task still needs work.
func (t *Task) IsOpen() bool {
	return t.Status == StatusPending || t.Status == StatusInProgress
}
