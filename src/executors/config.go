package executors

import "github.com/kelseyhightower/envconfig"

type Config struct {
	// BuyAmount is how much of the base currency each automatic buy spends.
	BuyAmount float64 `envconfig:"BUY_AMOUNT" default:"0.01"`
	// AutoTrade gates order placement. With it off the pipeline still
	// analyzes and notifies, but never touches the venue.
	AutoTrade bool `envconfig:"AUTO_TRADE" default:"true"`
}

func GetConfig() Config {
	var config Config
	err := envconfig.Process("", &config)
	if err != nil {
		panic(err)
	}
	return config
}
