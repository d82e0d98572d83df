// REST API CLIENT FOR THE BITTREX V1.1 EXCHANGE API
// RESTY ONLY + INTERNAL RETRY ON PUBLIC READ TRANSPORT FAILURES
package connectors

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"
	logger "github.com/sirupsen/logrus"

	"tweettrader/src/model"
)

// -----------------------------
// CONFIG
// -----------------------------
const (
	defaultRetryAttempts   = 5
	defaultRetryBaseDelay  = 500 * time.Millisecond
	defaultRetryMaxBackoff = 8 * time.Second

	defaultBittrexBaseURL = "https://bittrex.com/api/v1.1"
)

// -----------------------------
// API RESPONSE WRAPPER
// -----------------------------
// Bittrex v1.1 returns HTTP 200 even on errors, with success=false and the
// reason in message.
type apiResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Result  json.RawMessage `json:"result"`
}

// -----------------------------
// RESULT STRUCTURES
// -----------------------------
type Market struct {
	MarketCurrency     string `json:"MarketCurrency"`
	BaseCurrency       string `json:"BaseCurrency"`
	MarketCurrencyLong string `json:"MarketCurrencyLong"`
	MarketName         string `json:"MarketName"`
	IsActive           bool   `json:"IsActive"`
}

type marketSummaryResult struct {
	MarketName string  `json:"MarketName"`
	Bid        float64 `json:"Bid"`
	Ask        float64 `json:"Ask"`
	Last       float64 `json:"Last"`
	BaseVolume float64 `json:"BaseVolume"`
	PrevDay    float64 `json:"PrevDay"`
}

type balanceResult struct {
	Currency  string  `json:"Currency"`
	Balance   float64 `json:"Balance"`
	Available float64 `json:"Available"`
	Pending   float64 `json:"Pending"`
}

type orderPlacedResult struct {
	UUID string `json:"uuid"`
}

type orderResult struct {
	OrderUuid         string  `json:"OrderUuid"`
	Exchange          string  `json:"Exchange"`
	Type              string  `json:"Type"`
	Quantity          float64 `json:"Quantity"`
	QuantityRemaining float64 `json:"QuantityRemaining"`
	Limit             float64 `json:"Limit"`
	Reserved          float64 `json:"Reserved"`
	IsOpen            bool    `json:"IsOpen"`
}

type openOrderResult struct {
	OrderUuid         string  `json:"OrderUuid"`
	Exchange          string  `json:"Exchange"`
	OrderType         string  `json:"OrderType"`
	Quantity          float64 `json:"Quantity"`
	QuantityRemaining float64 `json:"QuantityRemaining"`
	Limit             float64 `json:"Limit"`
	Closed            *string `json:"Closed"`
}

// -----------------------------
// CLIENT
// -----------------------------
type Client struct {
	apiKey    string
	apiSecret string
	baseURL   string
	// http carries the transport retry and serves public reads only.
	// httpAuth never retries: signed calls embed a nonce, and a re-send of a
	// buylimit that already reached the venue would place the order twice.
	http     *resty.Client
	httpAuth *resty.Client
}

func isRetryableResp(r *resty.Response, err error) bool {
	if err != nil {
		return true
	}
	if r == nil {
		return false
	}

	code := r.StatusCode()

	if code >= 500 && code <= 599 {
		return true
	}
	if code == 429 {
		return true
	}
	if code == 408 {
		return true
	}
	return false
}

func NewClient(cfg Config) *Client {
	retryCount := defaultRetryAttempts - 1

	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultBittrexBaseURL
		logger.Warnf("No base URL provided, using default: %s", baseURL)
	}

	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	httpClient := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetRetryCount(retryCount).
		SetRetryWaitTime(defaultRetryBaseDelay).
		SetRetryMaxWaitTime(defaultRetryMaxBackoff).
		AddRetryCondition(isRetryableResp)

	httpAuthClient := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout)

	return &Client{
		apiKey:    cfg.BittrexAPIKey,
		apiSecret: cfg.BittrexAPISecret,
		baseURL:   baseURL,
		http:      httpClient,
		httpAuth:  httpAuthClient,
	}
}

// -----------------------------
// AUTH
// -----------------------------
//
// Bittrex v1.1 signing: private calls carry apikey and nonce in the query
// string and an "apisign" header which is hex(HMAC-SHA512(secret, full URL)).
// We sign exactly what we send: url.Values.Encode sorts keys and resty's
// SetQueryString re-encodes the same way.

func nonceMillis() string {
	return strconv.FormatInt(time.Now().UnixMilli(), 10)
}

func signFullURL(fullURL, apiSecret string) string {
	mac := hmac.New(sha512.New, []byte(apiSecret))
	_, _ = mac.Write([]byte(fullURL))
	return hex.EncodeToString(mac.Sum(nil))
}

// -----------------------------
// LOW-LEVEL REQUESTS
// -----------------------------
func (c *Client) doPublic(path string, params url.Values, out *apiResponse) error {
	return c.doRequest(path, params, false, out)
}

func (c *Client) doPrivate(path string, params url.Values, out *apiResponse) error {
	return c.doRequest(path, params, true, out)
}

func (c *Client) doRequest(path string, params url.Values, auth bool, out *apiResponse) error {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if params == nil {
		params = url.Values{}
	}

	client := c.http
	if auth {
		client = c.httpAuth
	}

	req := client.R().
		SetHeader("Accept", "application/json")

	if auth {
		params.Set("apikey", c.apiKey)
		params.Set("nonce", nonceMillis())
	}

	query := params.Encode()
	if query != "" {
		req = req.SetQueryString(query)
	}

	if auth {
		fullURL := c.baseURL + path
		if query != "" {
			fullURL += "?" + query
		}
		req = req.SetHeader("apisign", signFullURL(fullURL, c.apiSecret))
	}

	resp, err := req.Get(path)
	if err != nil {
		return err
	}

	raw := resp.Body()
	if resp.StatusCode() != 200 {
		return fmt.Errorf("HTTP %d: %s", resp.StatusCode(), string(raw))
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("json unmarshal failed: %w. raw=%s", err, string(raw))
	}
	return nil
}

// -----------------------------
// PUBLIC MARKET DATA
// -----------------------------

// GetMarkets returns every market the venue trades. Used once at startup to
// seed the symbol catalog.
func (c *Client) GetMarkets() ([]Market, error) {
	var resp apiResponse
	if err := c.doPublic("/public/getmarkets", nil, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, &VenueError{Op: "getmarkets", Message: resp.Message}
	}

	var markets []Market
	if err := json.Unmarshal(resp.Result, &markets); err != nil {
		return nil, fmt.Errorf("decode markets: %w", err)
	}
	return markets, nil
}

// GetMarketSummary fetches a fresh snapshot for one pair, e.g. "BTC-XVG".
func (c *Client) GetMarketSummary(pair string) (*model.MarketSummary, error) {
	params := url.Values{}
	params.Set("market", pair)

	var resp apiResponse
	if err := c.doPublic("/public/getmarketsummary", params, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, &VenueError{Op: "getmarketsummary", Message: fmt.Sprintf("%s (Pair: %s)", resp.Message, pair)}
	}

	var results []marketSummaryResult
	if err := json.Unmarshal(resp.Result, &results); err != nil {
		return nil, fmt.Errorf("decode market summary: %w", err)
	}
	if len(results) == 0 {
		return nil, &VenueError{Op: "getmarketsummary", Message: fmt.Sprintf("empty result (Pair: %s)", pair)}
	}

	r := results[0]
	summary := model.NewMarketSummary(
		pair,
		decimal.NewFromFloat(r.Bid),
		decimal.NewFromFloat(r.Ask),
		decimal.NewFromFloat(r.Last),
		decimal.NewFromFloat(r.BaseVolume),
		decimal.NewFromFloat(r.PrevDay),
	)
	return &summary, nil
}

// -----------------------------
// ACCOUNT
// -----------------------------

// GetBalance returns the available (not total) balance for one currency.
func (c *Client) GetBalance(currency string) (decimal.Decimal, error) {
	params := url.Values{}
	params.Set("currency", currency)

	var resp apiResponse
	if err := c.doPrivate("/account/getbalance", params, &resp); err != nil {
		return decimal.Zero, err
	}
	if !resp.Success {
		return decimal.Zero, &VenueError{Op: "getbalance", Message: resp.Message}
	}

	var r balanceResult
	if err := json.Unmarshal(resp.Result, &r); err != nil {
		return decimal.Zero, fmt.Errorf("decode balance: %w", err)
	}
	return decimal.NewFromFloat(r.Available), nil
}

// -----------------------------
// TRADING
// -----------------------------

// BuyLimit places a limit buy and returns the venue order uuid. A declined
// order surfaces as *OrderRejectedError with the venue message verbatim.
func (c *Client) BuyLimit(pair string, quantity, rate decimal.Decimal) (string, error) {
	return c.placeLimit("/market/buylimit", pair, quantity, rate)
}

// SellLimit places a limit sell and returns the venue order uuid.
func (c *Client) SellLimit(pair string, quantity, rate decimal.Decimal) (string, error) {
	return c.placeLimit("/market/selllimit", pair, quantity, rate)
}

func (c *Client) placeLimit(path, pair string, quantity, rate decimal.Decimal) (string, error) {
	params := url.Values{}
	params.Set("market", pair)
	params.Set("quantity", quantity.StringFixed(8))
	params.Set("rate", rate.StringFixed(8))

	var resp apiResponse
	if err := c.doPrivate(path, params, &resp); err != nil {
		return "", err
	}
	if !resp.Success {
		return "", &OrderRejectedError{Message: resp.Message}
	}

	var r orderPlacedResult
	if err := json.Unmarshal(resp.Result, &r); err != nil {
		return "", fmt.Errorf("decode placed order: %w", err)
	}
	if r.UUID == "" {
		return "", &OrderRejectedError{Message: "venue returned success without an order uuid"}
	}
	return r.UUID, nil
}

// CancelOrder cancels an open order. A venue-declined cancel surfaces as
// *OrderRejectedError; nil means the venue accepted the cancellation.
func (c *Client) CancelOrder(uuid string) error {
	params := url.Values{}
	params.Set("uuid", uuid)

	var resp apiResponse
	if err := c.doPrivate("/market/cancel", params, &resp); err != nil {
		return err
	}
	if !resp.Success {
		return &OrderRejectedError{Message: resp.Message}
	}
	return nil
}

// -----------------------------
// ORDER QUERIES
// -----------------------------

// GetOrder fetches the venue-side state of one order.
func (c *Client) GetOrder(uuid string) (*model.OrderStatus, error) {
	params := url.Values{}
	params.Set("uuid", uuid)

	var resp apiResponse
	if err := c.doPrivate("/account/getorder", params, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, &VenueError{Op: "getorder", Message: resp.Message}
	}

	var r orderResult
	if err := json.Unmarshal(resp.Result, &r); err != nil {
		return nil, fmt.Errorf("decode order: %w", err)
	}

	return &model.OrderStatus{
		UUID:      r.OrderUuid,
		Pair:      r.Exchange,
		Type:      r.Type,
		Quantity:  decimal.NewFromFloat(r.Quantity),
		Remaining: decimal.NewFromFloat(r.QuantityRemaining),
		Price:     decimal.NewFromFloat(r.Limit),
		Reserved:  decimal.NewFromFloat(r.Reserved),
		Open:      r.IsOpen,
	}, nil
}

// GetOpenOrders lists all currently open orders on the account.
func (c *Client) GetOpenOrders() ([]model.OrderStatus, error) {
	var resp apiResponse
	if err := c.doPrivate("/market/getopenorders", nil, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, &VenueError{Op: "getopenorders", Message: resp.Message}
	}

	var results []openOrderResult
	if err := json.Unmarshal(resp.Result, &results); err != nil {
		return nil, fmt.Errorf("decode open orders: %w", err)
	}

	orders := make([]model.OrderStatus, 0, len(results))
	for _, r := range results {
		qty := decimal.NewFromFloat(r.Quantity)
		price := decimal.NewFromFloat(r.Limit)
		orders = append(orders, model.OrderStatus{
			UUID:      r.OrderUuid,
			Pair:      r.Exchange,
			Type:      r.OrderType,
			Quantity:  qty,
			Remaining: decimal.NewFromFloat(r.QuantityRemaining),
			Price:     price,
			Reserved:  price.Mul(qty),
			Open:      r.Closed == nil,
		})
	}
	return orders, nil
}
