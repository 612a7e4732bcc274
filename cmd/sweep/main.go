package main

import (
	"context"
	"fmt"
	"log"
	"os"

	engine "github.com/rxtech-lab/argo-scalper/internal/backtest/engine/engine_v1"
	"github.com/rxtech-lab/argo-scalper/internal/backtest/engine/engine_v1/datasource"
	"github.com/rxtech-lab/argo-scalper/internal/logger"
	"github.com/rxtech-lab/argo-scalper/internal/sweep"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

// sweepAction runs the full parameter grid against one bar series and
// exports one CSV row per combination.
func sweepAction(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")
	dataPath := cmd.String("data")
	outputPath := cmd.String("output")
	gridPath := cmd.String("grid")
	workers := cmd.Int("workers")

	raw, err := os.ReadFile(configPath)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	baseConfig, err := engine.ParseConfig(string(raw))
	if err != nil {
		return err
	}

	grid := sweep.DefaultGrid()
	if gridPath != "" {
		gridRaw, err := os.ReadFile(gridPath)
		if err != nil {
			return fmt.Errorf("failed to read grid file: %w", err)
		}
		if err := yaml.Unmarshal(gridRaw, &grid); err != nil {
			return fmt.Errorf("failed to parse grid file: %w", err)
		}
	}

	data, err := datasource.NewCSVDataSource(dataPath).Load()
	if err != nil {
		return err
	}

	appLogger, err := logger.NewLogger()
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer appLogger.Sync()

	runner := sweep.NewRunner(baseConfig, data, appLogger)
	if workers > 0 {
		runner.SetWorkers(int(workers))
	}
	runner.SetShowProgress(true)

	log.Printf("Sweeping %d combinations over %d bars...", grid.Size(), len(data))
	results, err := runner.Run(grid)
	if err != nil {
		return err
	}
	if err := sweep.WriteResults(outputPath, results); err != nil {
		return err
	}
	log.Printf("Sweep complete. %d results saved to %s.", len(results), outputPath)
	return nil
}

func main() {
	cmd := &cli.Command{
		Name:  "sweep",
		Usage: "Grid-search strategy parameters over historical bars",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "config",
				Aliases:  []string{"c"},
				Usage:    "Path to the base YAML backtest configuration",
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
				Usage:   "Path of the results CSV",
				Value:   "grid_search_results.csv",
			},
			&cli.StringFlag{
				Name:  "grid",
				Usage: "Optional YAML file overriding the default parameter grid",
			},
			&cli.IntFlag{
				Name:    "workers",
				Aliases: []string{"w"},
				Usage:   "Number of parallel workers (defaults to the CPU count)",
			},
		},
		Action: sweepAction,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
