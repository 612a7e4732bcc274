package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/rxtech-lab/argo-scalper/internal/trading"
	"github.com/urfave/cli/v3"
)

func newExchange(cmd *cli.Command) (*trading.BinanceExchange, error) {
	raw, err := os.ReadFile(cmd.String("config"))
	if err != nil {
		return nil, fmt.Errorf("failed to read exchange config: %w", err)
	}
	config, err := trading.ParseBinanceConfig(string(raw))
	if err != nil {
		return nil, err
	}
	return trading.NewBinanceExchange(config)
}

func balanceAction(ctx context.Context, cmd *cli.Command) error {
	exchange, err := newExchange(cmd)
	if err != nil {
		return err
	}
	balance, err := exchange.GetBalance(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("Futures balance: %.2f USDT\n", balance)
	return nil
}

func positionsAction(ctx context.Context, cmd *cli.Command) error {
	exchange, err := newExchange(cmd)
	if err != nil {
		return err
	}
	positions, err := exchange.GetPositions(ctx)
	if err != nil {
		return err
	}
	if len(positions) == 0 {
		fmt.Println("No open positions.")
		return nil
	}
	for _, position := range positions {
		fmt.Printf("%s qty=%.8f entry=%.2f upnl=%.2f leverage=%.0fx\n",
			position.Symbol, position.Quantity, position.EntryPrice,
			position.UnrealizedPnL, position.Leverage)
	}
	return nil
}

func main() {
	configFlag := &cli.StringFlag{
		Name:     "config",
		Aliases:  []string{"c"},
		Usage:    "Path to the YAML exchange credentials config",
		Required: true,
	}

	cmd := &cli.Command{
		Name:  "trading",
		Usage: "Query the futures account",
		Commands: []*cli.Command{
			{
				Name:   "balance",
				Usage:  "Show the futures account balance",
				Flags:  []cli.Flag{configFlag},
				Action: balanceAction,
			},
			{
				Name:   "positions",
				Usage:  "Show open futures positions",
				Flags:  []cli.Flag{configFlag},
				Action: positionsAction,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
