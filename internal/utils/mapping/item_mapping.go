package mapping

import (
	"github.com/stocknest/stocknest_backend/internal/core/domain"
	"github.com/stocknest/stocknest_backend/internal/models"
)

// ToModelItem converts a domain Item to its table row.
func ToModelItem(d domain.Item) models.Item {
	return models.Item{
		ItemID:       d.ItemID,
		Name:         d.Name,
		SKU:          d.SKU,
		Unit:         d.Unit,
		Description:  d.Description,
		SellingPrice: d.SellingPrice,
		CostPrice:    d.CostPrice,
		Quantity:     d.Quantity,
		ReorderPoint: d.ReorderPoint,
		IsActive:     d.IsActive,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainItem converts an items row to the domain type.
func ToDomainItem(m models.Item) domain.Item {
	return domain.Item{
		ItemID:       m.ItemID,
		Name:         m.Name,
		SKU:          m.SKU,
		Unit:         m.Unit,
		Description:  m.Description,
		SellingPrice: m.SellingPrice,
		CostPrice:    m.CostPrice,
		Quantity:     m.Quantity,
		ReorderPoint: m.ReorderPoint,
		IsActive:     m.IsActive,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainItemSlice converts a slice of item rows.
func ToDomainItemSlice(ms []models.Item) []domain.Item {
	out := make([]domain.Item, len(ms))
	for i, m := range ms {
		out[i] = ToDomainItem(m)
	}
	return out
}
