package notify

import (
	"errors"
	"strings"
	"testing"

	"tweettrader/src/connectors"
	"tweettrader/src/model"
)

func TestFormatVerdict(t *testing.T) {
	msg := model.MessageEvent{
		Text:      "XVG is going to the moon",
		Author:    "cryptotrader",
		Permalink: "https://twitter.com/cryptotrader/status/12345",
	}

	got := formatVerdict(msg, []string{"XRP", "XVG"}, "")

	for _, want := range []string{
		"@cryptotrader tweeted:",
		"XVG is going to the moon",
		"https://twitter.com/cryptotrader/status/12345",
		"Coins to buy: XRP, XVG",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("notification missing %q:\n%s", want, got)
		}
	}
}

func TestFormatVerdictWithReferencePrice(t *testing.T) {
	msg := model.MessageEvent{Text: "buy", Author: "a", Permalink: "p"}

	got := formatVerdict(msg, []string{"XVG"}, "BTC/USDT last: 64000.00")

	if !strings.HasSuffix(got, "BTC/USDT last: 64000.00") {
		t.Errorf("reference line should trail the notification:\n%s", got)
	}
}

func TestAuthorizedChat(t *testing.T) {
	b := &Bot{chatID: 111}

	if !b.authorizedChat(111) {
		t.Error("configured chat must be authorized")
	}
	if b.authorizedChat(222) {
		t.Error("foreign chat must not be authorized")
	}

	unconfigured := &Bot{}
	if unconfigured.authorizedChat(0) || unconfigured.authorizedChat(111) {
		t.Error("an unset chat id must authorize nobody")
	}
}

func TestFormatCommandError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "venue rejection keeps the venue message verbatim",
			err:  &connectors.OrderRejectedError{Message: "INSUFFICIENT_FUNDS"},
			want: "Rejected by venue: INSUFFICIENT_FUNDS",
		},
		{
			name: "read failure is reported as a venue error",
			err:  &connectors.VenueError{Op: "getmarketsummary", Message: "timeout"},
			want: "Venue error (getmarketsummary): timeout",
		},
		{
			name: "plain error",
			err:  errors.New("invalid order id"),
			want: "Error: invalid order id",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := formatCommandError(tc.err); got != tc.want {
				t.Errorf("got %q, want %q", got, tc.want)
			}
		})
	}
}
