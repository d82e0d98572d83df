package executors

import (
	"context"
	"errors"
	"sync"

	"github.com/shopspring/decimal"
	logger "github.com/sirupsen/logrus"

	"tweettrader/src/analysis"
	"tweettrader/src/catalog"
	"tweettrader/src/connectors"
	"tweettrader/src/controller"
	"tweettrader/src/model"
	"tweettrader/src/notify"
	"tweettrader/src/stream"
)

// Notifier pushes a non-empty verdict to the operator.
type Notifier interface {
	NotifyVerdict(msg model.MessageEvent, tickers []string) error
}

// OrderPlacer places the automatic buy for a verdict ticker.
type OrderPlacer interface {
	PlaceBuy(ticker string, amount decimal.Decimal) (*model.Order, error)
}

// Pipeline turns one incoming message into zero or more limit buys. It is
// the stream.Handler the listener feeds.
type Pipeline struct {
	catalog   *catalog.Catalog
	scorer    analysis.Scorer
	denylist  map[string]struct{}
	notifier  Notifier
	orders    OrderPlacer
	buyAmount decimal.Decimal
	autoTrade bool

	mu     sync.Mutex
	placed map[string]struct{}
}

func NewPipeline(cat *catalog.Catalog, scorer analysis.Scorer, denylist map[string]struct{}, notifier Notifier, orders OrderPlacer, config Config) *Pipeline {
	return &Pipeline{
		catalog:   cat,
		scorer:    scorer,
		denylist:  denylist,
		notifier:  notifier,
		orders:    orders,
		buyAmount: decimal.NewFromFloat(config.BuyAmount),
		autoTrade: config.AutoTrade,
		placed:    map[string]struct{}{},
	}
}

// HandleMessage processes one message end to end. A failure, including a
// panic out of the NLP layer, is logged and contained so the stream keeps
// flowing.
func (p *Pipeline) HandleMessage(msg model.MessageEvent) {
	defer func() {
		if r := recover(); r != nil {
			logger.WithField("panic", r).Error("Recovered while processing message")
		}
	}()

	if err := p.process(msg); err != nil {
		logger.
			WithError(err).
			WithField("permalink", msg.Permalink).
			Error("Failed to process message")
	}
}

func (p *Pipeline) process(msg model.MessageEvent) error {
	tickers, err := analysis.Analyze(msg.Text, p.catalog, p.scorer, p.denylist)
	if err != nil {
		return err
	}
	if len(tickers) == 0 {
		logger.WithField("permalink", msg.Permalink).Debug("No buy verdict")
		return nil
	}

	logger.
		WithField("tickers", tickers).
		WithField("author", msg.Author).
		Info("Buy verdict")

	if p.notifier != nil {
		if err := p.notifier.NotifyVerdict(msg, tickers); err != nil {
			logger.WithError(err).Error("Failed to notify verdict")
		}
	}

	if !p.autoTrade {
		return nil
	}

	for _, ticker := range tickers {
		p.placeOnce(msg, ticker)
	}
	return nil
}

// placedHistoryLimit bounds redelivery memory. Redeliveries arrive close to
// the original message, so forgetting old entries once the map fills is safe.
const placedHistoryLimit = 4096

// placeOnce guards placement so a (message, ticker) pair buys at most once,
// however often the transport redelivers the message.
func (p *Pipeline) placeOnce(msg model.MessageEvent, ticker string) {
	key := msg.Permalink + "|" + ticker

	p.mu.Lock()
	if _, done := p.placed[key]; done {
		p.mu.Unlock()
		logger.WithField("ticker", ticker).Warn("Order already placed for this message, skipping")
		return
	}
	if len(p.placed) >= placedHistoryLimit {
		p.placed = map[string]struct{}{}
	}
	p.placed[key] = struct{}{}
	p.mu.Unlock()

	order, err := p.orders.PlaceBuy(ticker, p.buyAmount)
	if err != nil {
		var rejected *connectors.OrderRejectedError
		if errors.As(err, &rejected) {
			logger.
				WithField("ticker", ticker).
				WithField("reason", rejected.Message).
				Warn("Buy order rejected by venue")
			return
		}
		logger.WithError(err).WithField("ticker", ticker).Error("Failed to place buy order")
		return
	}

	logger.
		WithField("ticker", ticker).
		WithField("uuid", order.UUID).
		Info("Automatic buy order placed")
}

// StartLoop wires the whole service together and blocks on the stream
// listener until ctx is cancelled.
func StartLoop(ctx context.Context) error {
	config := GetConfig()

	client := connectors.NewClient(connectors.GetConfig())

	controllerConfig := controller.GetConfig()
	orderController := controller.NewOrderController(client, controllerConfig)

	cat := loadCatalog(client)

	var notifier Notifier
	var bot *notify.Bot
	notifyConfig := notify.GetConfig()
	if notifyConfig.TelegramToken == "" {
		logger.Warn("TELEGRAM_TOKEN not set, running without notifications")
	} else {
		var err error
		bot, err = notify.NewBot(notifyConfig, orderController, connectors.NewReferencePricer(), controllerConfig.BaseCurrency)
		if err != nil {
			logger.WithError(err).Error("Failed to start Telegram bot")
			return err
		}
		notifier = bot
	}

	pipeline := NewPipeline(cat, analysis.NewVaderScorer(), analysis.GetConfig().DenySet(), notifier, orderController, config)

	if bot != nil {
		go func() {
			if err := bot.Run(ctx); err != nil {
				logger.WithError(err).Error("Telegram command loop stopped")
			}
		}()
	}

	listener := stream.NewListener(stream.GetConfig(), pipeline, stream.TesseractRecognizer{})
	return listener.Run(ctx)
}

// loadCatalog fetches the venue market listing. On failure the service runs
// with an empty catalog rather than refusing to start.
func loadCatalog(client *connectors.Client) *catalog.Catalog {
	markets, err := client.GetMarkets()
	if err != nil {
		logger.WithError(err).Warn("Failed to load market catalog, extraction will match nothing")
		return catalog.New()
	}

	descriptors := make([]catalog.MarketDescriptor, 0, len(markets))
	for _, m := range markets {
		if !m.IsActive {
			continue
		}
		descriptors = append(descriptors, catalog.MarketDescriptor{
			Symbol:   m.MarketCurrency,
			LongName: m.MarketCurrencyLong,
		})
	}

	cat := catalog.Load(descriptors)
	logger.WithField("assets", cat.Len()).Info("Market catalog loaded")
	return cat
}
