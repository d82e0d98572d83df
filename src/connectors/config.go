package connectors

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	BittrexAPIKey    string        `envconfig:"BITTREX_API_KEY"`
	BittrexAPISecret string        `envconfig:"BITTREX_API_SECRET"`
	BaseURL          string        `envconfig:"BITTREX_BASE_URL" default:"https://bittrex.com/api/v1.1"`
	RequestTimeout   time.Duration `envconfig:"BITTREX_REQUEST_TIMEOUT" default:"60s"`
}

func GetConfig() Config {
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		panic(fmt.Errorf("error processing env config: %w", err))
	}
	return config
}
