package ordermath_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stocknest/stocknest_backend/internal/core/domain"
	"github.com/stocknest/stocknest_backend/internal/utils/ordermath"
)

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func TestLineAmount(t *testing.T) {
	amount, err := ordermath.LineAmount(3, dec("10.50"), dec("1.50"))
	require.NoError(t, err)
	assert.True(t, amount.Equal(dec("30.00")), "got %s", amount)

	_, err = ordermath.LineAmount(1, dec("-1"), decimal.Zero)
	assert.ErrorIs(t, err, ordermath.ErrNegativeRate)

	_, err = ordermath.LineAmount(1, dec("5"), dec("-1"))
	assert.ErrorIs(t, err, ordermath.ErrNegativeDiscount)

	_, err = ordermath.LineAmount(1, dec("5"), dec("6"))
	assert.ErrorIs(t, err, ordermath.ErrDiscountExceedsLine)
}

func TestOrderDiscount(t *testing.T) {
	subTotal := dec("200")

	discount, err := ordermath.OrderDiscount(subTotal, domain.DiscountPercentage, dec("12.5"))
	require.NoError(t, err)
	assert.True(t, discount.Equal(dec("25")), "got %s", discount)

	discount, err = ordermath.OrderDiscount(subTotal, domain.DiscountAmount, dec("30"))
	require.NoError(t, err)
	assert.True(t, discount.Equal(dec("30")))

	discount, err = ordermath.OrderDiscount(subTotal, "", dec("30"))
	require.NoError(t, err)
	assert.True(t, discount.IsZero())

	_, err = ordermath.OrderDiscount(subTotal, domain.DiscountPercentage, dec("101"))
	assert.ErrorIs(t, err, ordermath.ErrPercentOutOfRange)

	_, err = ordermath.OrderDiscount(subTotal, domain.DiscountAmount, dec("-5"))
	assert.ErrorIs(t, err, ordermath.ErrNegativeDiscount)

	_, err = ordermath.OrderDiscount(subTotal, domain.DiscountType("coupon"), dec("5"))
	assert.ErrorIs(t, err, ordermath.ErrUnknownDiscountType)
}

func TestOrderDiscountRoundsToMonetaryScale(t *testing.T) {
	// 33.33% of 100 would otherwise be a repeating decimal.
	discount, err := ordermath.OrderDiscount(dec("100"), domain.DiscountPercentage, dec("33.33"))
	require.NoError(t, err)
	assert.True(t, discount.Equal(dec("33.33")), "got %s", discount)
}

func TestOrderTotal(t *testing.T) {
	lines := []domain.OrderLine{
		{Amount: dec("60")},
		{Amount: dec("40")},
	}
	subTotal := ordermath.SubTotal(lines)
	assert.True(t, subTotal.Equal(dec("100")))

	total, err := ordermath.OrderTotal(subTotal, domain.DiscountPercentage, dec("10"), dec("15"), dec("-5"))
	require.NoError(t, err)
	// 100 - 10 + 15 - 5
	assert.True(t, total.Equal(dec("100")), "got %s", total)

	_, err = ordermath.OrderTotal(dec("10"), domain.DiscountAmount, dec("50"), decimal.Zero, decimal.Zero)
	assert.ErrorIs(t, err, ordermath.ErrNegativeTotal)
}

func TestValidatePayment(t *testing.T) {
	assert.NoError(t, ordermath.ValidatePayment(dec("0"), dec("100")))
	assert.NoError(t, ordermath.ValidatePayment(dec("100"), dec("100")))
	assert.ErrorIs(t, ordermath.ValidatePayment(dec("-1"), dec("100")), ordermath.ErrPaymentOutOfRange)
	assert.ErrorIs(t, ordermath.ValidatePayment(dec("101"), dec("100")), ordermath.ErrPaymentOutOfRange)
}
