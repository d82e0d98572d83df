package stream

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	// Websocket endpoint of the message-stream transport.
	StreamURL string `envconfig:"STREAM_URL" required:"true"`
	// Author IDs whose messages are processed; everything else is dropped.
	FollowIDs []string `envconfig:"FOLLOW_IDS"`

	MediaTimeout   time.Duration `envconfig:"MEDIA_TIMEOUT" default:"60s"`
	ReconnectDelay time.Duration `envconfig:"STREAM_RECONNECT_DELAY" default:"5s"`
}

func GetConfig() Config {
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		panic(fmt.Errorf("error processing env config: %w", err))
	}
	return config
}
