package mapping

import (
	"github.com/stocknest/stocknest_backend/internal/core/domain"
	"github.com/stocknest/stocknest_backend/internal/models"
)

// ToModelCustomer converts a domain Customer to its table row.
func ToModelCustomer(d domain.Customer) models.Customer {
	return models.Customer{
		CustomerID:    d.CustomerID,
		CustomerName:  d.CustomerName,
		ContactNumber: d.ContactNumber,
		Email:         d.Email,
		Address:       d.Address,
		CustomerType:  string(d.CustomerType),
		Due:           d.Due,
		IsActive:      d.IsActive,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainCustomer converts a customers row to the domain type.
func ToDomainCustomer(m models.Customer) domain.Customer {
	return domain.Customer{
		CustomerID:    m.CustomerID,
		CustomerName:  m.CustomerName,
		ContactNumber: m.ContactNumber,
		Email:         m.Email,
		Address:       m.Address,
		CustomerType:  domain.CustomerType(m.CustomerType),
		Due:           m.Due,
		IsActive:      m.IsActive,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}
