// Package marketdata downloads historical bars and stores them as
// backtest-ready CSV or Parquet files.
package marketdata

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rxtech-lab/argo-scalper/pkg/errors"
	"github.com/rxtech-lab/argo-scalper/pkg/marketdata/provider"
	"github.com/rxtech-lab/argo-scalper/pkg/marketdata/writer"
)

// WriterType selects the output format of a download.
type WriterType string

const (
	WriterCSV     WriterType = "csv"
	WriterParquet WriterType = "parquet"
)

// ClientConfig holds the configuration for the market data client.
type ClientConfig struct {
	WriterType WriterType `validate:"required,oneof=csv parquet"`
	// DataPath is the directory downloaded files are written into.
	DataPath string `validate:"required"`
}

// DownloadParams describes one download request.
type DownloadParams struct {
	Symbol    string    `validate:"required"`
	Interval  string    `validate:"required"`
	StartDate time.Time `validate:"required"`
	EndDate   time.Time `validate:"required,gtfield=StartDate"`
}

// Client downloads market data from a provider and stores it via the
// configured writer.
type Client struct {
	provider   provider.Provider
	config     ClientConfig
	validate   *validator.Validate
	onProgress provider.OnDownloadProgress
}

// NewClient creates a market data client backed by the Binance kline API.
func NewClient(config ClientConfig, onProgress provider.OnDownloadProgress) (*Client, error) {
	validate := validator.New()
	if err := validate.Struct(config); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid market data client configuration", err)
	}
	return &Client{
		provider:   provider.NewBinanceProvider(),
		config:     config,
		validate:   validate,
		onProgress: onProgress,
	}, nil
}

// Download fetches the requested range and returns the path of the written
// file. The filename encodes the symbol, interval and date range.
func (c *Client) Download(ctx context.Context, params DownloadParams) (string, error) {
	if err := c.validate.Struct(params); err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidParameter, "invalid download parameters", err)
	}
	if err := provider.ValidateInterval(params.Interval); err != nil {
		return "", err
	}
	if err := os.MkdirAll(c.config.DataPath, 0o755); err != nil {
		return "", errors.Wrap(errors.ErrCodeMarketDataWriteFailed, "failed to create data directory", err)
	}

	outputPath := filepath.Join(c.config.DataPath, c.fileName(params))

	var w writer.MarketDataWriter
	switch c.config.WriterType {
	case WriterParquet:
		w = writer.NewDuckDBWriter(outputPath)
	case WriterCSV:
		w = writer.NewCSVWriter(outputPath)
	default:
		return "", errors.Newf(errors.ErrCodeInvalidConfiguration, "unsupported writer type %q", c.config.WriterType)
	}
	defer w.Close()

	c.provider.ConfigWriter(w)
	return c.provider.Download(ctx, params.Symbol, params.Interval, params.StartDate, params.EndDate, c.onProgress)
}

func (c *Client) fileName(params DownloadParams) string {
	extension := "csv"
	if c.config.WriterType == WriterParquet {
		extension = "parquet"
	}
	return fmt.Sprintf("%s_%s_%s_%s.%s",
		params.Symbol,
		params.Interval,
		params.StartDate.UTC().Format("20060102"),
		params.EndDate.UTC().Format("20060102"),
		extension,
	)
}
