package notify

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	TelegramToken string `envconfig:"TELEGRAM_TOKEN"`
	// Chat that receives buy-signal notifications and may issue commands.
	TelegramChatID int64 `envconfig:"TELEGRAM_CHAT_ID"`
}

func GetConfig() Config {
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		panic(fmt.Errorf("error processing env config: %w", err))
	}
	return config
}
