package controller

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	logger "github.com/sirupsen/logrus"

	"tweettrader/src/model"
)

// Exchange is the venue surface the workflow needs. *connectors.Client
// satisfies it; tests inject fakes.
type Exchange interface {
	GetMarketSummary(pair string) (*model.MarketSummary, error)
	GetBalance(currency string) (decimal.Decimal, error)
	BuyLimit(pair string, quantity, rate decimal.Decimal) (string, error)
	SellLimit(pair string, quantity, rate decimal.Decimal) (string, error)
	CancelOrder(uuid string) error
	GetOrder(uuid string) (*model.OrderStatus, error)
	GetOpenOrders() ([]model.OrderStatus, error)
}

// OrderController turns buy verdicts and operator commands into venue calls.
// One placement per call, no retry, no fill tracking; the venue owns the
// order after placement and we keep only the uuid.
type OrderController struct {
	exchange Exchange
	base     string
	markup   decimal.Decimal
}

func NewOrderController(exchange Exchange, config Config) *OrderController {
	return &OrderController{
		exchange: exchange,
		base:     strings.ToUpper(config.BaseCurrency),
		markup:   markupMultiplier(config.MarkupPercent),
	}
}

// PrepareBuy derives pair, quantity and price for a limit buy of amount
// (denominated in the base currency). The price is the current ask with the
// configured markup applied; quantity = amount / price rounded to the
// venue's 8-decimal increment.
func (o *OrderController) PrepareBuy(ticker string, amount decimal.Decimal) (pair string, quantity, price decimal.Decimal, err error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return "", decimal.Zero, decimal.Zero, fmt.Errorf("buy amount must be positive, got %s", amount.String())
	}

	pair = TradePair(o.base, ticker)

	summary, err := o.exchange.GetMarketSummary(pair)
	if err != nil {
		return "", decimal.Zero, decimal.Zero, err
	}
	if summary.Ask.LessThanOrEqual(decimal.Zero) {
		return "", decimal.Zero, decimal.Zero, fmt.Errorf("no ask price for %s", pair)
	}

	price = summary.Ask.Mul(o.markup)
	quantity = amount.Div(price).Round(8)
	return pair, quantity, price, nil
}

// ExecuteBuy places the prepared limit buy and returns the venue uuid.
// Venue errors propagate unchanged.
func (o *OrderController) ExecuteBuy(pair string, quantity, price decimal.Decimal) (string, error) {
	return o.exchange.BuyLimit(pair, quantity, price)
}

// ExecuteSell places a limit sell and returns the venue uuid.
func (o *OrderController) ExecuteSell(pair string, quantity, price decimal.Decimal) (string, error) {
	return o.exchange.SellLimit(pair, quantity, price)
}

// PlaceBuy runs the full buy path for one ticker: prepare, place, return the
// order the process will reference from now on.
func (o *OrderController) PlaceBuy(ticker string, amount decimal.Decimal) (*model.Order, error) {
	pair, quantity, price, err := o.PrepareBuy(ticker, amount)
	if err != nil {
		return nil, err
	}

	id, err := o.ExecuteBuy(pair, quantity, price)
	if err != nil {
		return nil, err
	}

	logger.WithFields(map[string]interface{}{
		"pair":     pair,
		"quantity": quantity.String(),
		"price":    FormatPrice(price),
		"uuid":     id,
	}).Info("Buy order placed")

	return &model.Order{
		Pair:     pair,
		Quantity: quantity,
		Price:    price,
		UUID:     id,
		Side:     model.SideBuy,
	}, nil
}

// PlaceSell places a limit sell at an operator-chosen quantity and price.
func (o *OrderController) PlaceSell(ticker string, quantity, price decimal.Decimal) (*model.Order, error) {
	if quantity.LessThanOrEqual(decimal.Zero) || price.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("sell quantity and price must be positive")
	}

	pair := TradePair(o.base, ticker)
	id, err := o.ExecuteSell(pair, quantity, price)
	if err != nil {
		return nil, err
	}

	logger.WithFields(map[string]interface{}{
		"pair":     pair,
		"quantity": quantity.String(),
		"price":    FormatPrice(price),
		"uuid":     id,
	}).Info("Sell order placed")

	return &model.Order{
		Pair:     pair,
		Quantity: quantity,
		Price:    price,
		UUID:     id,
		Side:     model.SideSell,
	}, nil
}

// Cancel asks the venue to cancel an order. Invoked by the operator, never
// by the pipeline.
func (o *OrderController) Cancel(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("invalid order uuid %q: %w", id, err)
	}
	return o.exchange.CancelOrder(id)
}

// Status returns the formatted venue-side state of one order.
func (o *OrderController) Status(id string) (string, error) {
	if _, err := uuid.Parse(id); err != nil {
		return "", fmt.Errorf("invalid order uuid %q: %w", id, err)
	}

	status, err := o.exchange.GetOrder(id)
	if err != nil {
		return "", err
	}
	return status.Format(), nil
}

// OpenOrders returns one formatted line block per open order.
func (o *OrderController) OpenOrders() ([]string, error) {
	orders, err := o.exchange.GetOpenOrders()
	if err != nil {
		return nil, err
	}

	formatted := make([]string, 0, len(orders))
	for _, order := range orders {
		formatted = append(formatted, order.Format())
	}
	return formatted, nil
}

// Summary returns the formatted market snapshot for a ticker.
func (o *OrderController) Summary(ticker string) (string, error) {
	summary, err := o.exchange.GetMarketSummary(TradePair(o.base, ticker))
	if err != nil {
		return "", err
	}
	return summary.Format(), nil
}

// Balance reports the available balance of one currency.
func (o *OrderController) Balance(currency string) (decimal.Decimal, error) {
	return o.exchange.GetBalance(strings.ToUpper(currency))
}
