package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ===========================================================================
// RecordBase
// Shared shape for every auditable record (Note, Task, Annotation).
// Carries store-assigned id, authorship metadata and the soft-delete flag.
// ===========================================================================

// Department identifies the operational team an actor belongs to.
// Stored server-side on the user profile; never taken from the client.
type Department string

const (
	// DepartmentCCO operational control center operators
	DepartmentCCO Department = "cco"

	// DepartmentBalanca weighbridge operators
	DepartmentBalanca Department = "balanca"

	// DepartmentSupervisor shift supervisors
	DepartmentSupervisor Department = "supervisor"
)

// Valid reports whether d is one of the known departments.
func (d Department) Valid() bool {
	switch d {
	case DepartmentCCO, DepartmentBalanca, DepartmentSupervisor:
		return true
	}
	return false
}

// RecordBase holds the fields common to all auditable records.
type RecordBase struct {
	// ID primary key, UUID assigned by the store on creation (never client-chosen)
	ID uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`

	// CreatedBy username of the originating actor; immutable after creation
	CreatedBy string `gorm:"size:255;not null" json:"createdBy"`

	// CreatedByDepartment department of the originating actor; immutable
	CreatedByDepartment Department `gorm:"size:20;not null" json:"createdByDepartment"`

	// UpdatedBy username of the most recent mutator; nil until first edit
	UpdatedBy *string `gorm:"size:255" json:"updatedBy,omitempty"`

	// UpdatedByDepartment department of the most recent mutator; nil until first edit
	UpdatedByDepartment *Department `gorm:"size:20" json:"updatedByDepartment,omitempty"`

	// CreatedAt creation time, server clock
	CreatedAt time.Time `gorm:"not null" json:"createdAt"`

	// UpdatedAt last-write time, server clock
	UpdatedAt time.Time `gorm:"not null" json:"updatedAt"`

	// Deleted soft-delete flag. Deleted rows stay in the store and are
	// filtered out of listings; they are never physically removed by the
	// delete operation itself (retention sweeper aside).
	Deleted bool `gorm:"not null;default:false;index" json:"deleted"`
}

// BeforeCreate assigns the store-side UUID and server timestamps. Times are
// truncated to millisecond so they round-trip losslessly through the JSON
// wire format.
func (b *RecordBase) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	now := time.Now().UTC().Truncate(time.Millisecond)
	if b.CreatedAt.IsZero() {
		b.CreatedAt = now
	}
	if b.UpdatedAt.IsZero() {
		b.UpdatedAt = now
	}
	return nil
}

// GetID returns the record id.
func (b *RecordBase) GetID() uuid.UUID {
	return b.ID
}

// IsDeleted reports whether the record was soft-deleted.
func (b *RecordBase) IsDeleted() bool {
	return b.Deleted
}

// Actor identifies who performs a mutation. Filled from the authenticated
// session, with the department resolved from the stored user profile.
type Actor struct {
	Username   string
	Department Department
}
