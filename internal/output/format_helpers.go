package output

import (
	"github.com/shopspring/decimal"

	pkgdecimal "github.com/cadentwebb/financial-simulator/pkg/decimal"
)

// FormatCurrency formats an amount as USD with whole-dollar precision.
// Kept here so it can be reused by multiple formatters and unit tested in
// isolation.
func FormatCurrency(amount float64) string {
	return "$" + pkgdecimal.NewMoney(amount).StringFixed(0)
}

// FormatPercent formats a fraction (0.153 -> "15.3%") with one decimal.
func FormatPercent(fraction float64) string {
	return decimal.NewFromFloat(fraction * 100).StringFixed(1) + "%"
}

// FormatRate formats an annualized rate fraction with two decimals
// (0.0712 -> "7.12%").
func FormatRate(fraction float64) string {
	return decimal.NewFromFloat(fraction * 100).StringFixed(2) + "%"
}
