// Package notify is the operator channel: it pushes buy-signal
// notifications to Telegram and accepts manual order commands back.
package notify

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/shopspring/decimal"
	logger "github.com/sirupsen/logrus"

	"tweettrader/src/connectors"
	"tweettrader/src/model"
)

// Orders is the command surface the bot drives. *controller.OrderController
// satisfies it.
type Orders interface {
	PlaceBuy(ticker string, amount decimal.Decimal) (*model.Order, error)
	PlaceSell(ticker string, quantity, price decimal.Decimal) (*model.Order, error)
	Cancel(uuid string) error
	Status(uuid string) (string, error)
	OpenOrders() ([]string, error)
	Summary(ticker string) (string, error)
	Balance(currency string) (decimal.Decimal, error)
}

// Pricer supplies the optional USDT reference price shown in notifications.
type Pricer interface {
	LastUSDT(base string) (float64, error)
}

type Bot struct {
	api    *tgbotapi.BotAPI
	chatID int64
	orders Orders
	pricer Pricer
	base   string
}

func NewBot(cfg Config, orders Orders, pricer Pricer, baseCurrency string) (*Bot, error) {
	if cfg.TelegramToken == "" {
		return nil, errors.New("telegram token not set")
	}

	api, err := tgbotapi.NewBotAPI(cfg.TelegramToken)
	if err != nil {
		return nil, fmt.Errorf("telegram auth: %w", err)
	}

	logger.WithField("account", api.Self.UserName).Info("Telegram bot authorized")

	return &Bot{
		api:    api,
		chatID: cfg.TelegramChatID,
		orders: orders,
		pricer: pricer,
		base:   strings.ToUpper(baseCurrency),
	}, nil
}

// NotifyVerdict pushes a non-empty verdict to the operator chat. Called only
// when there is something to buy.
func (b *Bot) NotifyVerdict(msg model.MessageEvent, tickers []string) error {
	text := formatVerdict(msg, tickers, b.referencePriceLine())

	if _, err := b.api.Send(tgbotapi.NewMessage(b.chatID, text)); err != nil {
		return fmt.Errorf("send notification: %w", err)
	}
	return nil
}

func (b *Bot) referencePriceLine() string {
	if b.pricer == nil {
		return ""
	}
	last, err := b.pricer.LastUSDT(b.base)
	if err != nil {
		logger.WithError(err).Warn("Reference price unavailable")
		return ""
	}
	return fmt.Sprintf("%s/USDT last: %.2f", b.base, last)
}

// Run consumes operator commands until ctx is cancelled.
func (b *Bot) Run(ctx context.Context) error {
	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 60

	updates := b.api.GetUpdatesChan(updateConfig)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return nil
		case update := <-updates:
			if update.Message == nil || !update.Message.IsCommand() {
				continue
			}
			if !b.authorizedChat(update.Message.Chat.ID) {
				logger.
					WithField("chat_id", update.Message.Chat.ID).
					WithField("command", update.Message.Command()).
					Warn("Ignoring command from unauthorized chat")
				continue
			}
			reply := b.dispatch(update.Message.Command(), update.Message.CommandArguments())
			if reply == "" {
				continue
			}
			msg := tgbotapi.NewMessage(update.Message.Chat.ID, reply)
			if _, err := b.api.Send(msg); err != nil {
				logger.WithError(err).Error("Failed to send command reply")
			}
		}
	}
}

// authorizedChat restricts money-moving commands to the configured operator
// chat. An unset chat id authorizes nobody.
func (b *Bot) authorizedChat(chatID int64) bool {
	return b.chatID != 0 && chatID == b.chatID
}

func (b *Bot) dispatch(command, arguments string) string {
	args := strings.Fields(arguments)

	switch command {
	case "buy":
		if len(args) != 2 {
			return "usage: /buy <ticker> <amount>"
		}
		amount, err := decimal.NewFromString(args[1])
		if err != nil {
			return fmt.Sprintf("bad amount %q", args[1])
		}
		order, err := b.orders.PlaceBuy(args[0], amount)
		if err != nil {
			return formatCommandError(err)
		}
		return fmt.Sprintf("Buy order placed: %s\nPair: %s\nQuantity: %s\nPrice: %s",
			order.UUID, order.Pair, order.Quantity.String(), order.Price.StringFixed(8))

	case "sell":
		if len(args) != 3 {
			return "usage: /sell <ticker> <quantity> <price>"
		}
		quantity, qErr := decimal.NewFromString(args[1])
		price, pErr := decimal.NewFromString(args[2])
		if qErr != nil || pErr != nil {
			return "quantity and price must be numbers"
		}
		order, err := b.orders.PlaceSell(args[0], quantity, price)
		if err != nil {
			return formatCommandError(err)
		}
		return fmt.Sprintf("Sell order placed: %s", order.UUID)

	case "cancel":
		if len(args) != 1 {
			return "usage: /cancel <uuid>"
		}
		if err := b.orders.Cancel(args[0]); err != nil {
			return formatCommandError(err)
		}
		return fmt.Sprintf("Order %s cancelled", args[0])

	case "status":
		if len(args) != 1 {
			return "usage: /status <uuid>"
		}
		status, err := b.orders.Status(args[0])
		if err != nil {
			return formatCommandError(err)
		}
		return status

	case "orders":
		open, err := b.orders.OpenOrders()
		if err != nil {
			return formatCommandError(err)
		}
		if len(open) == 0 {
			return "No open orders"
		}
		return strings.Join(open, "\n\n")

	case "summary":
		if len(args) != 1 {
			return "usage: /summary <ticker>"
		}
		summary, err := b.orders.Summary(args[0])
		if err != nil {
			return formatCommandError(err)
		}
		return summary

	case "balance":
		if len(args) != 1 {
			return "usage: /balance <currency>"
		}
		available, err := b.orders.Balance(args[0])
		if err != nil {
			return formatCommandError(err)
		}
		return fmt.Sprintf("%s available: %s", strings.ToUpper(args[0]), available.String())

	default:
		return ""
	}
}

// formatVerdict builds the buy-signal notification.
func formatVerdict(msg model.MessageEvent, tickers []string, refLine string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "@%s tweeted:\n\n%s\n\n%s\n\nCoins to buy: %s",
		msg.Author, msg.Text, msg.Permalink, strings.Join(tickers, ", "))
	if refLine != "" {
		sb.WriteString("\n")
		sb.WriteString(refLine)
	}
	return sb.String()
}

// formatCommandError keeps the operator-facing distinction between "the
// venue declined this order" and "the query itself failed".
func formatCommandError(err error) string {
	var rejected *connectors.OrderRejectedError
	if errors.As(err, &rejected) {
		return fmt.Sprintf("Rejected by venue: %s", rejected.Message)
	}

	var venueErr *connectors.VenueError
	if errors.As(err, &venueErr) {
		return fmt.Sprintf("Venue error (%s): %s", venueErr.Op, venueErr.Message)
	}

	return fmt.Sprintf("Error: %v", err)
}
