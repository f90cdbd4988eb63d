// Package models defines the core data structures for users,
// subdivisions, projects, and employee assignments.
package models

import "time"

// User represents an application user. Username is the primary key and
// the JWT subject.
type User struct {
	// Username is the unique login name and token subject.
	Username string `json:"username"`
	// Email is the unique contact address.
	Email string `json:"email,omitempty"`
	// Password is the bcrypt hash of the user's password. Never
	// serialized.
	Password []byte `json:"-"`
	// Name is the display name.
	Name string `json:"name,omitempty"`
	// PhoneNumber is the contact phone number.
	PhoneNumber string `json:"phone_number,omitempty"`
	// Avatar is the stored avatar file name, unique per user.
	Avatar string `json:"avatar,omitempty"`
	// About is a free-form description.
	About string `json:"about,omitempty"`
	// IsStaff grants access to admin-only routes.
	IsStaff bool `json:"is_staff"`
	// IsActive gates every authenticated request; disabled users are
	// rejected even with a valid token.
	IsActive bool `json:"is_active"`
	// IsSuperuser marks the root account.
	IsSuperuser bool `json:"is_superuser"`
}

// UserStatus is the per-request authorization view of a user, fetched
// on every authenticated request so that disabling a user takes effect
// before their token expires.
type UserStatus struct {
	Username string
	IsActive bool
	IsStaff  bool
}

// UserFilter narrows user listings. Nil boolean fields mean "any".
type UserFilter struct {
	Usernames   []string
	Names       []string
	Emails      []string
	IsStaff     *bool
	IsActive    *bool
	IsSuperuser *bool
	Limit       int
	Offset      int
}

// Department enumerates the subdivisions' departments.
type Department string

const (
	DepartmentAdministrative Department = "administrative"
	DepartmentDevelopment    Department = "development"
	DepartmentMarketing      Department = "marketing"
	DepartmentSales          Department = "sales"
	DepartmentSupport        Department = "support"
)

// Departments lists all valid departments in a stable order.
func Departments() []Department {
	return []Department{
		DepartmentAdministrative,
		DepartmentDevelopment,
		DepartmentMarketing,
		DepartmentSales,
		DepartmentSupport,
	}
}

// Valid reports whether d is one of the known departments.
func (d Department) Valid() bool {
	for _, known := range Departments() {
		if d == known {
			return true
		}
	}
	return false
}

// Subdivision groups employees and projects under a department.
type Subdivision struct {
	SubdivisionID int64      `json:"subdivision_id"`
	Name          string     `json:"name"`
	Description   string     `json:"description,omitempty"`
	CreationTime  time.Time  `json:"creation_time"`
	Department    Department `json:"department"`
}

// Project belongs to exactly one subdivision.
type Project struct {
	ProjectID     int64      `json:"project_id"`
	Name          string     `json:"name"`
	Completed     bool       `json:"completed"`
	StartTime     time.Time  `json:"start_time"`
	CompleteTime  *time.Time `json:"complete_time,omitempty"`
	Description   string     `json:"description,omitempty"`
	SubdivisionID int64      `json:"subdivision_id"`
}

// Employee links a user to a subdivision.
type Employee struct {
	Username      string `json:"username"`
	SubdivisionID int64  `json:"subdivision_id"`
}
