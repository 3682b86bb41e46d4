// Package ordermath holds the pure financial rollup rules for sales orders:
// line amounts, order totals and payment bounds. Services and tests share it
// so the arithmetic is defined in exactly one place.
package ordermath

import (
	"errors"

	"github.com/shopspring/decimal"

	"github.com/stocknest/stocknest_backend/internal/core/domain"
	"github.com/stocknest/stocknest_backend/internal/utils"
)

var (
	ErrNegativeRate        = errors.New("line rate must not be negative")
	ErrNegativeDiscount    = errors.New("discount must not be negative")
	ErrDiscountExceedsLine = errors.New("line discount exceeds the line value")
	ErrPercentOutOfRange   = errors.New("percentage discount must be between 0 and 100")
	ErrUnknownDiscountType = errors.New("unknown discount type")
	ErrNegativeTotal       = errors.New("order total must not be negative")
	ErrPaymentOutOfRange   = errors.New("payment must be between zero and the order total")
)

var hundred = decimal.NewFromInt(100)

// LineAmount computes quantity*rate - discount for one order line.
func LineAmount(quantity int64, rate, discount decimal.Decimal) (decimal.Decimal, error) {
	if rate.IsNegative() {
		return decimal.Zero, ErrNegativeRate
	}
	if discount.IsNegative() {
		return decimal.Zero, ErrNegativeDiscount
	}
	amount := rate.Mul(decimal.NewFromInt(quantity)).Sub(discount)
	if amount.IsNegative() {
		return decimal.Zero, ErrDiscountExceedsLine
	}
	return utils.RoundMoney(amount), nil
}

// SubTotal sums the line amounts.
func SubTotal(lines []domain.OrderLine) decimal.Decimal {
	subTotal := decimal.Zero
	for _, l := range lines {
		subTotal = subTotal.Add(l.Amount)
	}
	return subTotal
}

// OrderDiscount resolves the order-level discount to an absolute amount.
// An empty discount type means no order-level discount.
func OrderDiscount(subTotal decimal.Decimal, discountType domain.DiscountType, discountValue decimal.Decimal) (decimal.Decimal, error) {
	if discountValue.IsNegative() {
		return decimal.Zero, ErrNegativeDiscount
	}
	switch discountType {
	case domain.DiscountPercentage:
		if discountValue.GreaterThan(hundred) {
			return decimal.Zero, ErrPercentOutOfRange
		}
		return utils.RoundMoney(subTotal.Mul(discountValue).Div(hundred)), nil
	case domain.DiscountAmount:
		return discountValue, nil
	case "":
		return decimal.Zero, nil
	default:
		return decimal.Zero, ErrUnknownDiscountType
	}
}

// OrderTotal computes subTotal - discount + shipping + adjustment.
func OrderTotal(subTotal decimal.Decimal, discountType domain.DiscountType, discountValue, shipping, adjustment decimal.Decimal) (decimal.Decimal, error) {
	discount, err := OrderDiscount(subTotal, discountType, discountValue)
	if err != nil {
		return decimal.Zero, err
	}
	total := subTotal.Sub(discount).Add(shipping).Add(adjustment)
	if total.IsNegative() {
		return decimal.Zero, ErrNegativeTotal
	}
	return total, nil
}

// ValidatePayment checks 0 <= payment <= total.
func ValidatePayment(payment, total decimal.Decimal) error {
	if payment.IsNegative() || payment.GreaterThan(total) {
		return ErrPaymentOutOfRange
	}
	return nil
}
