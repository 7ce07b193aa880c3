package models

import "time"

// Well-known role names seeded by migration.
const (
	RoleAdministrator = "Administrator"
	RoleTeacher       = "Teacher"
	RoleStudent       = "Student"
)

// Role is a named permission grouping assigned to users. Roles are static
// reference data created by migration, never by the API.
type Role struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"-"`
}

// TableName returns the name of the database table
// associated with the Role model.
func (r Role) TableName() string {
	return "roles"
}
