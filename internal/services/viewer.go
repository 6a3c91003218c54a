package services

import "radarboard/internal/models"

// ===========================================================================
// Viewer
// Identity of the authenticated caller, extracted from the session token by
// the HTTP layer. Role and department come from the stored profile via the
// token claims; request bodies never carry them.
// ===========================================================================

// Viewer identifies the authenticated caller of a service operation.
type Viewer struct {
	// UserID caller's user id (uuid string)
	UserID string

	// Username caller's login and display name
	Username string

	// Role caller's access level
	Role models.UserRole

	// Department caller's operational team
	Department models.Department
}

// Supervisor reports whether the caller has the supervisor role.
func (v Viewer) Supervisor() bool {
	return v.Role == models.RoleSupervisor
}

// Actor builds the audit identity for mutations performed by this caller.
func (v Viewer) Actor() models.Actor {
	return models.Actor{Username: v.Username, Department: v.Department}
}
