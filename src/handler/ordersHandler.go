package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	guuid "github.com/google/uuid"
	logger "github.com/sirupsen/logrus"

	"tweettrader/src/connectors"
	"tweettrader/src/model"
)

type openOrdersFetcher interface {
	GetOpenOrders() ([]model.OrderStatus, error)
}

type orderFetcher interface {
	GetOrder(uuid string) (*model.OrderStatus, error)
}

type summaryFetcher interface {
	GetMarketSummary(pair string) (*model.MarketSummary, error)
}

// OpenOrdersHandler returns a handler that lists the orders currently open
// at the venue.
func OpenOrdersHandler(exchange openOrdersFetcher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orders, err := exchange.GetOpenOrders()
		if err != nil {
			logger.WithError(err).Error("failed to fetch open orders")
			writeVenueError(w, err)
			return
		}

		writeJSON(w, orders)
	}
}

// OrderHandler returns a handler that fetches one order by uuid.
func OrderHandler(exchange orderFetcher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "uuid")
		if _, err := guuid.Parse(id); err != nil {
			http.Error(w, "invalid order uuid", http.StatusBadRequest)
			return
		}

		order, err := exchange.GetOrder(id)
		if err != nil {
			logger.WithError(err).WithField("uuid", id).Error("failed to fetch order")
			writeVenueError(w, err)
			return
		}

		writeJSON(w, order)
	}
}

// SummaryHandler returns a handler that reports the current market summary
// for a trade pair, e.g. /markets/BTC-XVG/summary.
func SummaryHandler(exchange summaryFetcher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pair := strings.ToUpper(chi.URLParam(r, "pair"))
		if !strings.Contains(pair, "-") {
			http.Error(w, "invalid trade pair", http.StatusBadRequest)
			return
		}

		summary, err := exchange.GetMarketSummary(pair)
		if err != nil {
			logger.WithError(err).WithField("pair", pair).Error("failed to fetch market summary")
			writeVenueError(w, err)
			return
		}

		writeJSON(w, summary)
	}
}

// writeVenueError maps an upstream failure onto the response: the venue
// answered with an error means bad gateway, anything else is internal.
func writeVenueError(w http.ResponseWriter, err error) {
	var venueErr *connectors.VenueError
	if errors.As(err, &venueErr) {
		http.Error(w, venueErr.Message, http.StatusBadGateway)
		return
	}
	http.Error(w, "Internal Server Error", http.StatusInternalServerError)
}

func writeJSON(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.WithError(err).Error("failed to encode response")
	}
}
