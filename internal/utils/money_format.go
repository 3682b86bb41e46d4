package utils

import "github.com/shopspring/decimal"

// MoneyPrecision is the scale every monetary value is stored with.
const MoneyPrecision = 2

// RoundMoney rounds an amount to the stored monetary scale. Derived values
// such as percentage discounts can carry more precision than the columns hold.
func RoundMoney(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(MoneyPrecision)
}

// FormatMoney formats an amount with the stored monetary scale.
// Example: 12.3456 returns "12.35", 12 returns "12.00".
func FormatMoney(amount decimal.Decimal) string {
	return amount.StringFixed(MoneyPrecision)
}
