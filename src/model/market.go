package model

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// MarketSummary is a read-only snapshot of one market, fetched on demand.
// Nothing here is persisted; every request recomputes the snapshot.
type MarketSummary struct {
	Pair      string          `json:"pair"`
	Bid       decimal.Decimal `json:"bid"`
	Ask       decimal.Decimal `json:"ask"`
	Last      decimal.Decimal `json:"last"`
	Volume    decimal.Decimal `json:"volume"`
	PrevDay   decimal.Decimal `json:"prev_day"`
	ChangePct decimal.Decimal `json:"change_pct"`
}

// NewMarketSummary builds a snapshot and derives the day-over-day change:
// (last - prevDay) / ((last + prevDay) / 2) * 100, rounded to 2 decimal places.
func NewMarketSummary(pair string, bid, ask, last, volume, prevDay decimal.Decimal) MarketSummary {
	summary := MarketSummary{
		Pair:    pair,
		Bid:     bid,
		Ask:     ask,
		Last:    last,
		Volume:  volume,
		PrevDay: prevDay,
	}

	mid := last.Add(prevDay).Div(decimal.NewFromInt(2))
	if !mid.IsZero() {
		summary.ChangePct = last.Sub(prevDay).
			Div(mid).
			Mul(decimal.NewFromInt(100)).
			Round(2)
	}

	return summary
}

// Format renders the snapshot for the operator channel. Prices use the
// venue's 8-decimal convention, the change keeps its 2-decimal rounding.
func (m MarketSummary) Format() string {
	return fmt.Sprintf(
		"%s\nBid: %s\nAsk: %s\nLast: %s\nVolume: %s\nYesterday: %s\nChange: %s%%",
		m.Pair,
		m.Bid.StringFixed(8),
		m.Ask.StringFixed(8),
		m.Last.StringFixed(8),
		m.Volume.String(),
		m.PrevDay.StringFixed(8),
		m.ChangePct.String(),
	)
}
