package mapping

import (
	"github.com/stocknest/stocknest_backend/internal/core/domain"
	"github.com/stocknest/stocknest_backend/internal/models"
)

// ToModelSalesOrder converts a domain SalesOrder header to its table row.
// Lines are mapped separately.
func ToModelSalesOrder(d domain.SalesOrder) models.SalesOrder {
	return models.SalesOrder{
		SalesOrderID:         d.SalesOrderID,
		OrderNumber:          d.OrderNumber,
		CustomerID:           d.CustomerID,
		CustomerName:         d.CustomerName,
		Reference:            d.Reference,
		OrderDate:            d.OrderDate,
		ExpectedShipmentDate: d.ExpectedShipmentDate,
		PaymentTerms:         d.PaymentTerms,
		DeliveryMethod:       d.DeliveryMethod,
		SalesPerson:          d.SalesPerson,
		SubTotal:             d.SubTotal,
		DiscountType:         string(d.DiscountType),
		DiscountValue:        d.DiscountValue,
		ShippingCharges:      d.ShippingCharges,
		Adjustment:           d.Adjustment,
		Total:                d.Total,
		Payment:              d.Payment,
		PreviousDue:          d.PreviousDue,
		Due:                  d.Due,
		CustomerNotes:        d.CustomerNotes,
		Status:               string(d.Status),
		AuditFields:          ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainSalesOrder converts a sales_orders row to the domain type.
func ToDomainSalesOrder(m models.SalesOrder) domain.SalesOrder {
	return domain.SalesOrder{
		SalesOrderID:         m.SalesOrderID,
		OrderNumber:          m.OrderNumber,
		CustomerID:           m.CustomerID,
		CustomerName:         m.CustomerName,
		Reference:            m.Reference,
		OrderDate:            m.OrderDate,
		ExpectedShipmentDate: m.ExpectedShipmentDate,
		PaymentTerms:         m.PaymentTerms,
		DeliveryMethod:       m.DeliveryMethod,
		SalesPerson:          m.SalesPerson,
		SubTotal:             m.SubTotal,
		DiscountType:         domain.DiscountType(m.DiscountType),
		DiscountValue:        m.DiscountValue,
		ShippingCharges:      m.ShippingCharges,
		Adjustment:           m.Adjustment,
		Total:                m.Total,
		Payment:              m.Payment,
		PreviousDue:          m.PreviousDue,
		Due:                  m.Due,
		CustomerNotes:        m.CustomerNotes,
		Status:               domain.OrderStatus(m.Status),
		AuditFields:          ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelOrderLine converts one order line to its table row.
func ToModelOrderLine(orderID string, d domain.OrderLine) models.SalesOrderLine {
	return models.SalesOrderLine{
		SalesOrderID: orderID,
		LineNo:       d.LineNo,
		ItemID:       d.ItemID,
		ItemName:     d.ItemName,
		Quantity:     d.Quantity,
		Rate:         d.Rate,
		Discount:     d.Discount,
		Amount:       d.Amount,
	}
}

// ToDomainOrderLine converts a sales_order_items row to the domain type.
func ToDomainOrderLine(m models.SalesOrderLine) domain.OrderLine {
	return domain.OrderLine{
		ItemID:   m.ItemID,
		ItemName: m.ItemName,
		Quantity: m.Quantity,
		Rate:     m.Rate,
		Discount: m.Discount,
		Amount:   m.Amount,
		LineNo:   m.LineNo,
	}
}

// ToDomainOrderLineSlice converts a slice of line rows.
func ToDomainOrderLineSlice(ms []models.SalesOrderLine) []domain.OrderLine {
	out := make([]domain.OrderLine, len(ms))
	for i, m := range ms {
		out[i] = ToDomainOrderLine(m)
	}
	return out
}
