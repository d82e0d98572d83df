package analysis

import (
	"fmt"
	"strings"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	// High-capitalization tickers never bought automatically. The base
	// currency itself belongs here.
	DenylistTickers []string `envconfig:"DENYLIST_TICKERS" default:"BTC,LTC,ETH"`
}

func GetConfig() Config {
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		panic(fmt.Errorf("error processing env config: %w", err))
	}
	return config
}

// DenySet returns the configured denylist as an uppercase lookup set.
func (c Config) DenySet() map[string]struct{} {
	set := make(map[string]struct{}, len(c.DenylistTickers))
	for _, ticker := range c.DenylistTickers {
		ticker = strings.ToUpper(strings.TrimSpace(ticker))
		if ticker == "" {
			continue
		}
		set[ticker] = struct{}{}
	}
	return set
}
