package dto

import (
	"time"

	"github.com/stocknest/stocknest_backend/internal/core/domain"
)

// RegisterRequest defines the data needed for self-service registration.
// Self-registered users always start as employees with no extra permissions.
type RegisterRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=72"`
}

// CreateEmployeeRequest defines the data an admin or manager submits to
// provision a user with an explicit role and permission set.
type CreateEmployeeRequest struct {
	Name        string   `json:"name" binding:"required,min=2,max=100"`
	Email       string   `json:"email" binding:"required,email"`
	Password    string   `json:"password" binding:"required,min=8,max=72"`
	Role        string   `json:"role" binding:"required,oneof=admin manager employee"`
	Permissions []string `json:"permissions" binding:"omitempty,dive,oneof=item customer sales dashboard"`
}

// UpdateUserRequest defines the data allowed for updating a user.
// Pointers differentiate omitted fields from zero-value fields.
type UpdateUserRequest struct {
	Name        *string  `json:"name" binding:"omitempty,min=2,max=100"`
	Email       *string  `json:"email" binding:"omitempty,email"`
	Role        *string  `json:"role" binding:"omitempty,oneof=admin manager employee"`
	Permissions []string `json:"permissions" binding:"omitempty,dive,oneof=item customer sales dashboard"`
	IsActive    *bool    `json:"isActive"`
}

// UpdateProfileRequest defines the fields a user may change on their own
// account. Role and permission changes go through the admin user endpoints.
type UpdateProfileRequest struct {
	Name  *string `json:"name" binding:"omitempty,min=2,max=100"`
	Email *string `json:"email" binding:"omitempty,email"`
}

// UserResponse defines the data returned for a user. The password hash and
// refresh token details never leave the service layer.
type UserResponse struct {
	UserID        string    `json:"userID"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Role          string    `json:"role"`
	Permissions   []string  `json:"permissions"`
	IsActive      bool      `json:"isActive"`
	CreatedAt     time.Time `json:"createdAt"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
}

// ListUsersParams defines query parameters for listing users.
type ListUsersParams struct {
	Limit  int `form:"limit,default=20" binding:"omitempty,min=1,max=100"`
	Offset int `form:"offset,default=0" binding:"omitempty,min=0"`
}

// ListUsersResponse wraps the list of users.
type ListUsersResponse struct {
	Users []UserResponse `json:"users"`
}

// ToUserResponse converts a domain.User to UserResponse DTO.
func ToUserResponse(u *domain.User) UserResponse {
	perms := make([]string, len(u.Permissions))
	for i, p := range u.Permissions {
		perms[i] = string(p)
	}
	return UserResponse{
		UserID:        u.UserID,
		Name:          u.Name,
		Email:         u.Email,
		Role:          string(u.Role),
		Permissions:   perms,
		IsActive:      u.IsActive,
		CreatedAt:     u.CreatedAt,
		LastUpdatedAt: u.LastUpdatedAt,
	}
}

// ToListUsersResponse converts a slice of domain.User to ListUsersResponse DTO.
func ToListUsersResponse(users []domain.User) ListUsersResponse {
	res := make([]UserResponse, len(users))
	for i, u := range users {
		res[i] = ToUserResponse(&u)
	}
	return ListUsersResponse{Users: res}
}
