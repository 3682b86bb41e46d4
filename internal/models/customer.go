package models

import "github.com/shopspring/decimal"

// Customer is the customers table row.
type Customer struct {
	CustomerID    string          `db:"customer_id"`
	CustomerName  string          `db:"customer_name"`
	ContactNumber string          `db:"contact_number"`
	Email         string          `db:"email"`
	Address       string          `db:"address"`
	CustomerType  string          `db:"customer_type"`
	Due           decimal.Decimal `db:"due"`
	IsActive      bool            `db:"is_active"`
	AuditFields
}
