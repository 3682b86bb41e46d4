package domain

import "time"

// Role gates route groups: admins manage everything, managers run day-to-day
// operations, employees are limited to order entry plus whatever their
// permission set grants.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleManager  Role = "manager"
	RoleEmployee Role = "employee"
)

// IsValid reports whether r is a known role.
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleEmployee:
		return true
	}
	return false
}

// Permission names a feature area an employee may access.
type Permission string

const (
	PermItem      Permission = "item"
	PermCustomer  Permission = "customer"
	PermSales     Permission = "sales"
	PermDashboard Permission = "dashboard"
)

// User represents an application user with credentials and access control data.
type User struct {
	UserID       string       `json:"userID"`
	Name         string       `json:"name"`
	Email        string       `json:"email"`
	PasswordHash string       `json:"-"`
	Role         Role         `json:"role"`
	Permissions  []Permission `json:"permissions,omitempty"`
	IsActive     bool         `json:"isActive"`
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"`

	// Refresh token state, stored hashed.
	RefreshTokenHash       string     `json:"-"`
	RefreshTokenExpiryTime *time.Time `json:"-"`
}

// HasPermission reports whether the user may access the given feature area.
// Admins and managers implicitly hold every permission.
func (u User) HasPermission(p Permission) bool {
	if u.Role == RoleAdmin || u.Role == RoleManager {
		return true
	}
	for _, held := range u.Permissions {
		if held == p {
			return true
		}
	}
	return false
}

// GoogleUserInfo is the subset of the Google userinfo endpoint payload the
// OAuth sign-in flow consumes.
type GoogleUserInfo struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}
