package main

import (
	"context"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli"

	"tweettrader/src/connectors"
	"tweettrader/src/controller"
	"tweettrader/src/executors"
)

var Version string

func main() {
	app := cli.NewApp()
	app.Name = "Tweettrader CMD"
	app.Usage = "The tweettrader command line interface"

	app.Commands = []cli.Command{
		watcherCMD,
		summaryCMD,
		ordersCMD,
	}

	if err := app.Run(os.Args); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var (
	watcherCMD = cli.Command{
		Name:        "watcher",
		Usage:       "run the message watcher",
		Action:      watcherAction,
		ArgsUsage:   "",
		Flags:       []cli.Flag{},
		Description: `Run the stream watcher and trading pipeline`,
	}
	summaryCMD = cli.Command{
		Name:      "summary",
		Usage:     "print a market summary",
		Action:    summaryAction,
		ArgsUsage: "",
		Flags: []cli.Flag{
			cli.StringFlag{
				Name:  "ticker",
				Usage: "asset ticker, e.g. XVG",
			},
		},
		Description: `Print the current market summary for one asset`,
	}
	ordersCMD = cli.Command{
		Name:        "orders",
		Usage:       "list open orders",
		Action:      ordersAction,
		ArgsUsage:   "",
		Flags:       []cli.Flag{},
		Description: `List orders currently open at the venue`,
	}
)

func watcherAction(_ *cli.Context) error {

	logrus.Info("Starting watcher CMD")
	logrus.WithField("cmd", "watcher")

	if err := executors.StartLoop(context.Background()); err != nil {
		logrus.WithError(err).Error("Starting cmd")
		return err
	}

	return nil
}

func summaryAction(c *cli.Context) error {
	ticker := c.String("ticker")
	if ticker == "" {
		return fmt.Errorf("--ticker is required")
	}

	orderController := newController()
	summary, err := orderController.Summary(ticker)
	if err != nil {
		logrus.WithError(err).Error("Failed to fetch summary")
		return err
	}

	fmt.Println(summary)
	return nil
}

func ordersAction(_ *cli.Context) error {
	orderController := newController()

	open, err := orderController.OpenOrders()
	if err != nil {
		logrus.WithError(err).Error("Failed to fetch open orders")
		return err
	}

	if len(open) == 0 {
		fmt.Println("No open orders")
		return nil
	}
	for _, order := range open {
		fmt.Println(order)
		fmt.Println()
	}
	return nil
}

func newController() *controller.OrderController {
	return controller.NewOrderController(
		connectors.NewClient(connectors.GetConfig()),
		controller.GetConfig(),
	)
}
