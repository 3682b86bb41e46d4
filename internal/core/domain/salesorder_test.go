package domain_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/stocknest/stocknest_backend/internal/core/domain"
)

func TestOrderStatusCanTransitionTo(t *testing.T) {
	testCases := []struct {
		name    string
		from    domain.OrderStatus
		to      domain.OrderStatus
		allowed bool
	}{
		{"draft to confirmed", domain.Draft, domain.Confirmed, true},
		{"confirmed to shipped", domain.Confirmed, domain.Shipped, true},
		{"shipped to delivered", domain.Shipped, domain.Delivered, true},
		{"draft to cancelled", domain.Draft, domain.Cancelled, true},
		{"confirmed to cancelled", domain.Confirmed, domain.Cancelled, true},
		{"shipped to cancelled", domain.Shipped, domain.Cancelled, true},
		{"no skipping draft to shipped", domain.Draft, domain.Shipped, false},
		{"no skipping confirmed to delivered", domain.Confirmed, domain.Delivered, false},
		{"no going back", domain.Shipped, domain.Confirmed, false},
		{"delivered is terminal", domain.Delivered, domain.Cancelled, false},
		{"cancelled is terminal", domain.Cancelled, domain.Draft, false},
		{"no re-cancel", domain.Cancelled, domain.Cancelled, false},
		{"unknown target", domain.Draft, domain.OrderStatus("Archived"), false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.allowed, tc.from.CanTransitionTo(tc.to))
		})
	}
}

func TestOrderStatusIsTerminal(t *testing.T) {
	assert.True(t, domain.Cancelled.IsTerminal())
	assert.True(t, domain.Delivered.IsTerminal())
	assert.False(t, domain.Draft.IsTerminal())
	assert.False(t, domain.Confirmed.IsTerminal())
	assert.False(t, domain.Shipped.IsTerminal())
}

func TestOrderNumberPrefix(t *testing.T) {
	august := time.Date(2025, time.August, 14, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "SO2508", domain.OrderNumberPrefix(august))

	january := time.Date(2030, time.January, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "SO3001", domain.OrderNumberPrefix(january))
}

func TestNextOrderNumber(t *testing.T) {
	august := time.Date(2025, time.August, 14, 0, 0, 0, 0, time.UTC)

	testCases := []struct {
		name       string
		lastNumber string
		want       string
	}{
		{"first of the month", "", "SO25080001"},
		{"increments sequence", "SO25080041", "SO25080042"},
		{"ignores other months", "SO25070099", "SO25080001"},
		{"grows past four digits", "SO25089999", "SO250810000"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, domain.NextOrderNumber(tc.lastNumber, august))
		})
	}
}

func TestSalesOrderOutstanding(t *testing.T) {
	order := domain.SalesOrder{
		Total:       decimal.NewFromInt(150),
		Payment:     decimal.NewFromInt(40),
		PreviousDue: decimal.NewFromInt(999), // not part of outstanding
	}
	assert.True(t, order.Outstanding().Equal(decimal.NewFromInt(110)))
}
