package connectors

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/nntaoli-project/goex"
	"github.com/nntaoli-project/goex/binance"
)

// ReferencePricer reads a USDT reference price from Binance so operator
// notifications can express base-currency amounts in fiat-ish terms. It is
// enrichment only; no order ever routes through it.
type ReferencePricer struct {
	exchange goex.API
}

func NewReferencePricer() *ReferencePricer {
	apiConfig := &goex.APIConfig{
		HttpClient: http.DefaultClient,
		Endpoint:   binance.GLOBAL_API_BASE_URL,
	}
	return &ReferencePricer{exchange: binance.NewWithConfig(apiConfig)}
}

// LastUSDT returns the last traded USDT price for a base asset, e.g. "BTC".
func (r *ReferencePricer) LastUSDT(base string) (float64, error) {
	pair := goex.NewCurrencyPair2(strings.ToUpper(base) + "_USDT")

	ticker, err := r.exchange.GetTicker(pair)
	if err != nil {
		return 0, fmt.Errorf("reference ticker %s: %w", pair.String(), err)
	}
	return ticker.Last, nil
}
