package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ===========================================================================
// Storage cell assignment
// StorageSelection is a singleton row holding the CURRENT assignment of the
// six discharge positions (TEG road/rail, TEAG road/rail). It is overwritten
// in place; history lives exclusively in the append-only StorageLog, which
// snapshots all six cells on every write (full state, not a diff).
// ===========================================================================

// StorageSelectionID is the fixed id of the singleton selection row.
const StorageSelectionID = "current"

// StorageCells holds the six named cell-assignment fields.
type StorageCells struct {
	// TegRoad TEG road discharge, positions 01-06
	TegRoad string `gorm:"size:64;not null;default:''" json:"tegRoad"`

	// TegRoadTombador TEG road discharge, tipper position 07
	TegRoadTombador string `gorm:"size:64;not null;default:''" json:"tegRoadTombador"`

	// TegRailwayMoega01 TEG rail discharge, hopper 01
	TegRailwayMoega01 string `gorm:"size:64;not null;default:''" json:"tegRailwayMoega01"`

	// TegRailwayMoega02 TEG rail discharge, hopper 02
	TegRailwayMoega02 string `gorm:"size:64;not null;default:''" json:"tegRailwayMoega02"`

	// TeagRoad TEAG road discharge
	TeagRoad string `gorm:"size:64;not null;default:''" json:"teagRoad"`

	// TeagRailway TEAG rail discharge
	TeagRailway string `gorm:"size:64;not null;default:''" json:"teagRailway"`
}

// StorageSelection is the singleton current-state row.
type StorageSelection struct {
	// ID fixed primary key, always StorageSelectionID
	ID string `gorm:"size:32;primary_key" json:"id"`

	StorageCells `gorm:"embedded"`

	// UpdatedBy username of the last writer
	UpdatedBy string `gorm:"size:255;not null" json:"updatedBy"`

	// UpdatedByDepartment department of the last writer
	UpdatedByDepartment Department `gorm:"size:20;not null" json:"updatedByDepartment"`

	// UpdatedAt last-write time, server clock
	UpdatedAt time.Time `gorm:"not null" json:"updatedAt"`
}

// TableName keeps the original collection name.
func (StorageSelection) TableName() string {
	return "estocagem"
}

// LogChanges is the full six-cell snapshot embedded in a log entry,
// serialized as a JSONB column.
type LogChanges StorageCells

// Value implements driver.Valuer for JSONB columns.
func (c LogChanges) Value() (driver.Value, error) {
	return json.Marshal(c)
}

// Scan implements sql.Scanner for JSONB columns.
func (c *LogChanges) Scan(value interface{}) error {
	if value == nil {
		*c = LogChanges{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, c)
	case string:
		return json.Unmarshal([]byte(v), c)
	}
	return errors.New("unsupported column type for LogChanges")
}

// StorageLog is one append-only audit entry. Log rows are never updated or
// deleted; every successful selection write appends exactly one.
type StorageLog struct {
	// ID primary key, assigned by the store
	ID uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`

	// ChangedBy username of the writer
	ChangedBy string `gorm:"size:255;not null" json:"changedBy"`

	// Department department of the writer
	Department Department `gorm:"size:20;not null" json:"department"`

	// Timestamp write time, server clock
	Timestamp time.Time `gorm:"not null;index" json:"timestamp"`

	// Changes snapshot of ALL six cells as written (not a diff)
	Changes LogChanges `gorm:"type:jsonb;not null" json:"changes"`
}

// TableName keeps the original collection name.
func (StorageLog) TableName() string {
	return "estocagem_logs"
}

// BeforeCreate assigns the store-side UUID when missing.
func (l *StorageLog) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}
