package models

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// ===========================================================================
// User (system user profile)
// Shift operators and supervisors. The department is a server-side profile
// attribute: it is written here by an administrator/seed and read back into
// the session at login, never asserted by the client.
// ===========================================================================

// UserRole access level of a user.
type UserRole string

const (
	// RoleAssistente shift operator, sees own records plus shared boards
	RoleAssistente UserRole = "assistente"

	// RoleSupervisor supervisor, sees every record and assigns tasks
	RoleSupervisor UserRole = "supervisor"
)

// Valid reports whether r is a known role.
func (r UserRole) Valid() bool {
	return r == RoleAssistente || r == RoleSupervisor
}

// User is a system user profile.
type User struct {
	// ID primary key
	ID uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`

	// Username login and display name (unique)
	Username string `gorm:"size:255;not null;uniqueIndex" json:"username"`

	// Email optional contact address
	Email string `gorm:"size:255" json:"email,omitempty"`

	// PasswordHash bcrypt hash, never serialized
	PasswordHash string `gorm:"size:255;not null" json:"-"`

	// RefreshTokenHash hash of the current refresh token, never serialized.
	// Used to validate and revoke refresh tokens.
	RefreshTokenHash *string `gorm:"size:255" json:"-"`

	// Role access level
	Role UserRole `gorm:"size:20;not null;default:'assistente'" json:"role"`

	// Department operational team, server-verified claim source
	Department Department `gorm:"size:20;not null" json:"department"`

	// LastLogin most recent successful login
	LastLogin *time.Time `json:"lastLogin,omitempty"`

	// CreatedAt profile creation time
	CreatedAt time.Time `gorm:"not null" json:"createdAt"`

	// UpdatedAt profile last-write time
	UpdatedAt time.Time `gorm:"not null" json:"updatedAt"`
}

// TableName keeps the original collection name.
func (User) TableName() string {
	return "usuarios"
}

// BeforeCreate assigns the store-side UUID when missing.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// SetPassword hashes and sets the password with bcrypt default cost.
func (u *User) SetPassword(password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return nil
}

// CheckPassword reports whether the password matches the stored hash.
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
	return err == nil
}

// IsSupervisor reports whether the user has the supervisor role.
func (u *User) IsSupervisor() bool {
	return u.Role == RoleSupervisor
}

// UpdateLastLogin stamps the most recent login time.
func (u *User) UpdateLastLogin() {
	now := time.Now().UTC()
	u.LastLogin = &now
}

// Actor builds the audit identity for mutations performed by this user.
// The department comes from the stored profile, not from the request.
func (u *User) Actor() Actor {
	return Actor{Username: u.Username, Department: u.Department}
}
