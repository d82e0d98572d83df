package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"tweettrader/src/connectors"
	"tweettrader/src/model"
)

const testOrderUUID = "614c34e4-8d71-11e3-94b5-425861b86ab6"

type mockExchange struct {
	openOrders  []model.OrderStatus
	order       *model.OrderStatus
	summary     *model.MarketSummary
	err         error
	calledCount int
	lastUUID    string
	lastPair    string
}

func (m *mockExchange) GetOpenOrders() ([]model.OrderStatus, error) {
	m.calledCount++
	return m.openOrders, m.err
}

func (m *mockExchange) GetOrder(uuid string) (*model.OrderStatus, error) {
	m.calledCount++
	m.lastUUID = uuid
	return m.order, m.err
}

func (m *mockExchange) GetMarketSummary(pair string) (*model.MarketSummary, error) {
	m.calledCount++
	m.lastPair = pair
	return m.summary, m.err
}

func newOrderRequest(uuid string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/orders/"+uuid, nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("uuid", uuid)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestOpenOrdersHandler_Success(t *testing.T) {
	mock := &mockExchange{openOrders: []model.OrderStatus{
		{UUID: testOrderUUID, Pair: "BTC-XVG", Open: true},
	}}
	handler := OpenOrdersHandler(mock)

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/orders/open", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}

	var got []model.OrderStatus
	if err := json.NewDecoder(rr.Body).Decode(&got); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	assert.Len(t, got, 1)
	assert.Equal(t, "BTC-XVG", got[0].Pair)
}

func TestOpenOrdersHandler_VenueError(t *testing.T) {
	mock := &mockExchange{err: &connectors.VenueError{Op: "getopenorders", Message: "APIKEY_INVALID"}}
	handler := OpenOrdersHandler(mock)

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/orders/open", nil))

	if rr.Code != http.StatusBadGateway {
		t.Fatalf("expected status 502, got %d", rr.Code)
	}
}

func TestOrderHandler_InvalidUUID(t *testing.T) {
	mock := &mockExchange{}
	handler := OrderHandler(mock)

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, newOrderRequest("not-a-uuid"))

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rr.Code)
	}
	if mock.calledCount != 0 {
		t.Fatalf("venue must not be called for an invalid uuid, got %d calls", mock.calledCount)
	}
}

func TestOrderHandler_Success(t *testing.T) {
	mock := &mockExchange{order: &model.OrderStatus{
		UUID:     testOrderUUID,
		Pair:     "BTC-XVG",
		Quantity: decimal.RequireFromString("100"),
	}}
	handler := OrderHandler(mock)

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, newOrderRequest(testOrderUUID))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	assert.Equal(t, testOrderUUID, mock.lastUUID)
}

func TestSummaryHandler_InvalidPair(t *testing.T) {
	mock := &mockExchange{}
	handler := SummaryHandler(mock)

	req := httptest.NewRequest(http.MethodGet, "/markets/XVG/summary", nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("pair", "XVG")
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rr.Code)
	}
}

func TestSummaryHandler_UppercasesPair(t *testing.T) {
	mock := &mockExchange{summary: &model.MarketSummary{Pair: "BTC-XVG"}}
	handler := SummaryHandler(mock)

	req := httptest.NewRequest(http.MethodGet, "/markets/btc-xvg/summary", nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("pair", "btc-xvg")
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	assert.Equal(t, "BTC-XVG", mock.lastPair)
}
