package main

import (
	"context"
	"fmt"
	"log"
	"os"

	engine "github.com/rxtech-lab/argo-scalper/internal/backtest/engine/engine_v1"
	"github.com/rxtech-lab/argo-scalper/internal/backtest/engine/engine_v1/datasource"
	"github.com/rxtech-lab/argo-scalper/internal/logger"
	"github.com/rxtech-lab/argo-scalper/internal/strategy"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

// runAction executes a single backtest over a CSV bar series and writes the
// trade log, equity curve and summary into a fresh run directory.
func runAction(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")
	dataPath := cmd.String("data")
	outputPath := cmd.String("output")

	raw, err := os.ReadFile(configPath)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	config, err := engine.ParseConfig(string(raw))
	if err != nil {
		return err
	}

	appLogger, err := logger.NewLogger()
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer appLogger.Sync()

	backtester := engine.NewBacktestEngineV1()
	if err := backtester.InitializeFromConfig(config, appLogger); err != nil {
		return err
	}
	if err := backtester.LoadStrategy(strategy.NewScalpingStrategy(config.Strategy, config.Trading)); err != nil {
		return err
	}
	if err := backtester.SetDataSource(datasource.NewCSVDataSource(dataPath)); err != nil {
		return err
	}
	if err := backtester.SetResultsFolder(outputPath); err != nil {
		return err
	}
	backtester.SetShowProgress(true)

	if err := backtester.Run(); err != nil {
		return err
	}

	summary, err := backtester.Summary()
	if err != nil {
		return err
	}
	out, err := yaml.Marshal(summary)
	if err != nil {
		return fmt.Errorf("failed to render summary: %w", err)
	}
	fmt.Print(string(out))
	return nil
}

// schemaAction prints the JSON schema of the backtest configuration.
func schemaAction(ctx context.Context, cmd *cli.Command) error {
	out, err := engine.GenerateSchemaJSON()
	if err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}

func main() {
	cmd := &cli.Command{
		Name:  "backtest",
		Usage: "Run a scalping strategy backtest over historical bars",
		Commands: []*cli.Command{
			{
				Name:  "run",
				Usage: "Run a backtest",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "config",
						Aliases:  []string{"c"},
						Usage:    "Path to the YAML backtest configuration",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "data",
						Aliases:  []string{"d"},
						Usage:    "Path to the CSV bar series",
						Required: true,
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Directory results are written into",
						Value:   "results",
					},
				},
				Action: runAction,
			},
			{
				Name:   "schema",
				Usage:  "Print the JSON schema of the configuration file",
				Action: schemaAction,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
