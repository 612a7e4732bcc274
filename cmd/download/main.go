package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/rxtech-lab/argo-scalper/pkg/marketdata"
	"github.com/schollz/progressbar/v3"
	"github.com/urfave/cli/v3"
)

// downloadAction fetches historical klines from Binance and stores them as a
// backtest-ready CSV or Parquet file.
func downloadAction(ctx context.Context, cmd *cli.Command) error {
	symbol := cmd.String("symbol")
	interval := cmd.String("interval")
	startDate := cmd.Timestamp("start")
	endDate := cmd.Timestamp("end")
	writerFlag := cmd.String("writer")
	dataPath := cmd.String("data")

	clientConfig := marketdata.ClientConfig{
		WriterType: marketdata.WriterType(writerFlag),
		DataPath:   dataPath,
	}

	bar := progressbar.Default(100, "download")
	onProgress := func(current, total int64, message string) {
		if total > 0 {
			_ = bar.Set(int(current * 100 / total))
		}
	}

	client, err := marketdata.NewClient(clientConfig, onProgress)
	if err != nil {
		return err
	}

	log.Printf("Fetching %s klines from %s to %s at %s interval...",
		symbol, startDate.Format("2006-01-02"), endDate.Format("2006-01-02"), interval)

	outputPath, err := client.Download(ctx, marketdata.DownloadParams{
		Symbol:    symbol,
		Interval:  interval,
		StartDate: startDate,
		EndDate:   endDate,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Done. File saved: %s\n", outputPath)
	return nil
}

func main() {
	cmd := &cli.Command{
		Name:  "download",
		Usage: "Download historical klines from Binance",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "symbol",
				Aliases:  []string{"s"},
				Usage:    "Trading pair symbol, e.g. BTCUSDT",
				Required: true,
			},
			&cli.StringFlag{
				Name:    "interval",
				Aliases: []string{"i"},
				Usage:   "Kline interval, e.g. 1m, 5m, 1h, 1d",
				Value:   "1m",
			},
			&cli.TimestampFlag{
				Name:     "start",
				Usage:    "Start date in `YYYY-MM-DD` format",
				Required: true,
				Config: cli.TimestampConfig{
					Layouts: []string{"2006-01-02"},
				},
			},
			&cli.TimestampFlag{
				Name:  "end",
				Usage: "End date in `YYYY-MM-DD` format. Defaults to today.",
				Value: time.Now(),
				Config: cli.TimestampConfig{
					Layouts: []string{"2006-01-02"},
				},
			},
			&cli.StringFlag{
				Name:    "writer",
				Aliases: []string{"w"},
				Usage:   fmt.Sprintf("Output format (%s or %s)", marketdata.WriterCSV, marketdata.WriterParquet),
				Value:   string(marketdata.WriterCSV),
			},
			&cli.StringFlag{
				Name:    "data",
				Aliases: []string{"d"},
				Usage:   "Path to the data output directory",
				Value:   "data",
			},
		},
		Action: downloadAction,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
