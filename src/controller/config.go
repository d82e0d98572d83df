package controller

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	// Currency every trade pair is quoted in, e.g. BTC for BTC-XVG.
	BaseCurrency string `envconfig:"BASE_CURRENCY" default:"BTC"`
	// Percent added to the current ask on a limit buy to bias toward fill.
	MarkupPercent float64 `envconfig:"MARKUP_PERCENT" default:"2"`
}

func GetConfig() Config {
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		panic(fmt.Errorf("error processing env config: %w", err))
	}
	return config
}
