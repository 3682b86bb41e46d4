package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/stocknest/stocknest_backend/internal/core/domain"
)

// CreateCustomerRequest defines the data needed to create a new customer.
// Business customers must carry an email and address, enforced via required_if.
type CreateCustomerRequest struct {
	CustomerName  string              `json:"customerName" binding:"required,min=2,max=100"`
	ContactNumber string              `json:"contactNumber"`
	Email         string              `json:"email" binding:"required_if=CustomerType Business,omitempty,email"`
	Address       string              `json:"address" binding:"required_if=CustomerType Business"`
	CustomerType  domain.CustomerType `json:"customerType" binding:"required,oneof=Business Individual"`
}

// UpdateCustomerRequest defines the data allowed for updating a customer.
// Pointers distinguish omitted fields from zero-value updates.
type UpdateCustomerRequest struct {
	CustomerName  *string              `json:"customerName" binding:"omitempty,min=2,max=100"`
	ContactNumber *string              `json:"contactNumber"`
	Email         *string              `json:"email" binding:"omitempty,email"`
	Address       *string              `json:"address"`
	CustomerType  *domain.CustomerType `json:"customerType" binding:"omitempty,oneof=Business Individual"`
}

// CustomerResponse defines the data returned for a customer.
type CustomerResponse struct {
	CustomerID    string              `json:"customerID"`
	CustomerName  string              `json:"customerName"`
	ContactNumber string              `json:"contactNumber"`
	Email         string              `json:"email"`
	Address       string              `json:"address"`
	CustomerType  domain.CustomerType `json:"customerType"`
	Due           decimal.Decimal     `json:"due"`
	IsActive      bool                `json:"isActive"`
	CreatedAt     time.Time           `json:"createdAt"`
	CreatedBy     string              `json:"createdBy"`
	LastUpdatedAt time.Time           `json:"lastUpdatedAt"`
	LastUpdatedBy string              `json:"lastUpdatedBy"`
}

// ListCustomersParams defines query parameters for listing customers.
type ListCustomersParams struct {
	SearchTerm   string `form:"searchTerm"`
	CustomerType string `form:"customerType" binding:"omitempty,oneof=Business Individual"`
	Limit        int    `form:"limit,default=20" binding:"omitempty,min=1,max=100"`
	Offset       int    `form:"offset,default=0" binding:"omitempty,min=0"`
}

// ListCustomersResponse wraps the list of customers with paging metadata.
type ListCustomersResponse struct {
	Customers []CustomerResponse `json:"customers"`
	Total     int64              `json:"total"`
	Limit     int                `json:"limit"`
	Offset    int                `json:"offset"`
}

// ToCustomerResponse converts a domain.Customer to CustomerResponse DTO.
func ToCustomerResponse(c *domain.Customer) CustomerResponse {
	return CustomerResponse{
		CustomerID:    c.CustomerID,
		CustomerName:  c.CustomerName,
		ContactNumber: c.ContactNumber,
		Email:         c.Email,
		Address:       c.Address,
		CustomerType:  c.CustomerType,
		Due:           c.Due,
		IsActive:      c.IsActive,
		CreatedAt:     c.CreatedAt,
		CreatedBy:     c.CreatedBy,
		LastUpdatedAt: c.LastUpdatedAt,
		LastUpdatedBy: c.LastUpdatedBy,
	}
}

// ToListCustomersResponse converts a slice of domain.Customer plus paging info to the list DTO.
func ToListCustomersResponse(customers []domain.Customer, total int64, limit, offset int) ListCustomersResponse {
	res := make([]CustomerResponse, len(customers))
	for i, c := range customers {
		res[i] = ToCustomerResponse(&c)
	}
	return ListCustomersResponse{
		Customers: res,
		Total:     total,
		Limit:     limit,
		Offset:    offset,
	}
}
