package controller

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// TradePair derives the venue pair name for a ticker quoted in the base
// currency. Examples:
//
//	TradePair("BTC", "xvg") -> BTC-XVG
//	TradePair("BTC", "XRP") -> BTC-XRP
func TradePair(base, ticker string) string {
	return fmt.Sprintf("%s-%s",
		strings.ToUpper(strings.TrimSpace(base)),
		strings.ToUpper(strings.TrimSpace(ticker)),
	)
}

// FormatPrice renders a price with the venue's 8-decimal convention.
func FormatPrice(price decimal.Decimal) string {
	return price.StringFixed(8)
}

// markupMultiplier converts a percent markup into a price multiplier,
// e.g. 2 -> 1.02. Negative markups are clamped to zero.
func markupMultiplier(percent float64) decimal.Decimal {
	if percent < 0 {
		percent = 0
	}
	return decimal.NewFromInt(1).Add(
		decimal.NewFromFloat(percent).Div(decimal.NewFromInt(100)),
	)
}
