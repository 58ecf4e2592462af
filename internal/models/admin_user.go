package models

import "time"

type AdminRole string
type AdminStatus string

const (
	RoleSuperAdmin AdminRole = "super_admin"
	RoleAdmin      AdminRole = "admin"
	RoleStaff      AdminRole = "staff"
)

const (
	StatusActive   AdminStatus = "active"
	StatusInactive AdminStatus = "inactive"
)

// ValidRole reports whether r is a known admin role.
func ValidRole(r AdminRole) bool {
	switch r {
	case RoleSuperAdmin, RoleAdmin, RoleStaff:
		return true
	}
	return false
}

// ValidStatus reports whether s is a known admin status.
func ValidStatus(s AdminStatus) bool {
	return s == StatusActive || s == StatusInactive
}

// AdminUser is the business-facing administrative account record. Each
// AdminUser owns exactly one Principal; the pair is created and destroyed
// together. CreatedBy records the provisioning caller once and is never
// mutated afterward.
type AdminUser struct {
	ID          int         `db:"id" json:"id"`
	PrincipalID int         `db:"principal_id" json:"-"`
	Role        AdminRole   `db:"role" json:"role"`
	Status      AdminStatus `db:"status" json:"status"`
	Notes       string      `db:"notes" json:"notes"`
	CreatedBy   *int        `db:"created_by" json:"created_by,omitempty"`
	CreatedAt   time.Time   `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time   `db:"updated_at" json:"updated_at"`

	// Identity fields joined from the linked principal.
	Username    string `db:"username" json:"username"`
	Email       string `db:"email" json:"email"`
	FirstName   string `db:"first_name" json:"first_name"`
	LastName    string `db:"last_name" json:"last_name"`
	IsStaff     bool   `db:"is_staff" json:"is_staff"`
	IsSuperuser bool   `db:"is_superuser" json:"is_superuser"`

	// Creator username joined from the provisioning principal; nil when
	// system-provisioned.
	CreatorUsername *string `db:"creator_username" json:"-"`

	// Derived fields, computed on read and never persisted.
	FullName      string `db:"-" json:"full_name"`
	IsActive      bool   `db:"-" json:"is_active"`
	CreatedByName string `db:"-" json:"created_by_name"`
}

// Derive computes the read-only fields from persisted state. Repositories
// call it after scanning a row; derived values are never written back.
func (a *AdminUser) Derive() {
	a.FullName = (&Principal{Username: a.Username, FirstName: a.FirstName, LastName: a.LastName}).FullName()
	a.IsActive = a.Status == StatusActive
	if a.CreatorUsername != nil && *a.CreatorUsername != "" {
		a.CreatedByName = *a.CreatorUsername
	} else {
		a.CreatedByName = "System"
	}
}
