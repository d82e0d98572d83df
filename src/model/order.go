package model

import (
	"fmt"

	"github.com/shopspring/decimal"
)

type Side string

const (
	SideBuy  Side = "buy"
	SideSell Side = "sell"
)

// Order is what the local process holds after a successful placement: the
// parameters it sent plus the venue-assigned UUID. The venue owns every
// later state transition; we only keep the UUID as a reference.
type Order struct {
	Pair     string          `json:"pair"`
	Quantity decimal.Decimal `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
	UUID     string          `json:"uuid"`
	Side     Side            `json:"side"`
}

// OrderStatus is a venue-side view of an order, observed via query.
type OrderStatus struct {
	UUID      string          `json:"uuid"`
	Pair      string          `json:"pair"`
	Type      string          `json:"type"`
	Quantity  decimal.Decimal `json:"quantity"`
	Remaining decimal.Decimal `json:"remaining"`
	Price     decimal.Decimal `json:"price"`
	Reserved  decimal.Decimal `json:"reserved"`
	Open      bool            `json:"open"`
}

// Format renders the status for the operator channel.
func (o OrderStatus) Format() string {
	return fmt.Sprintf(
		"Order %s\n\n%s\nType: %s\nQuantity: %s\nPrice: %s\nBTC total: %s\n\nOpen: %t",
		o.UUID,
		o.Pair,
		o.Type,
		o.Quantity.String(),
		o.Price.StringFixed(8),
		o.Reserved.StringFixed(8),
		o.Open,
	)
}
