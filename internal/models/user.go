package models

import (
	"database/sql"
	"time"
)

// User is the users table row. Permissions are stored as a text array.
type User struct {
	UserID       string   `db:"user_id"`
	Name         string   `db:"name"`
	Email        string   `db:"email"`
	PasswordHash string   `db:"password_hash"`
	Role         string   `db:"role"`
	Permissions  []string `db:"permissions"`
	IsActive     bool     `db:"is_active"`
	AuditFields
	DeletedAt *time.Time `db:"deleted_at"`

	RefreshTokenHash       sql.NullString `db:"refresh_token_hash"`
	RefreshTokenExpiryTime sql.NullTime   `db:"refresh_token_expiry_time"`
}
