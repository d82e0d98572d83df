package model

import (
	"testing"

	"github.com/shopspring/decimal"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestNewMarketSummary_ChangePct(t *testing.T) {
	tests := []struct {
		name    string
		last    string
		prevDay string
		want    string
	}{
		{"up day", "105", "100", "4.88"},
		{"down day", "95", "100", "-5.13"},
		{"flat", "100", "100", "0"},
		{"both zero", "0", "0", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewMarketSummary("BTC-XVG", d("1"), d("1"), d(tt.last), d("10"), d(tt.prevDay))
			if !s.ChangePct.Equal(d(tt.want)) {
				t.Fatalf("change pct for last=%s prev=%s: expected %s, got %s",
					tt.last, tt.prevDay, tt.want, s.ChangePct.String())
			}
		})
	}
}

func TestMarketSummary_Format(t *testing.T) {
	s := NewMarketSummary("BTC-XVG", d("0.00000122"), d("0.00000124"), d("0.00000123"), d("543.21"), d("0.00000120"))

	got := s.Format()
	want := "BTC-XVG\nBid: 0.00000122\nAsk: 0.00000124\nLast: 0.00000123\nVolume: 543.21\nYesterday: 0.00000120\nChange: 2.47%"
	if got != want {
		t.Fatalf("unexpected summary format:\n%s\nwant:\n%s", got, want)
	}
}
