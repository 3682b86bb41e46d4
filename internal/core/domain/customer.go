package domain

import "github.com/shopspring/decimal"

// CustomerType distinguishes business accounts from individual buyers.
// Business customers must carry an email and a billing address.
type CustomerType string

const (
	Business   CustomerType = "Business"
	Individual CustomerType = "Individual"
)

// Customer represents a buyer with a running outstanding balance.
// Due is mutated only by sales-order lifecycle events and always equals the
// sum of outstanding amounts across the customer's non-cancelled orders.
type Customer struct {
	CustomerID    string          `json:"customerID"`
	CustomerName  string          `json:"customerName"`
	ContactNumber string          `json:"contactNumber"`
	Email         string          `json:"email,omitempty"`
	Address       string          `json:"address,omitempty"`
	CustomerType  CustomerType    `json:"customerType"`
	Due           decimal.Decimal `json:"due"`
	IsActive      bool            `json:"isActive"`
	AuditFields
}

// RequiresContactDetails reports whether email and address are mandatory for
// this customer's type.
func (c Customer) RequiresContactDetails() bool {
	return c.CustomerType == Business
}
