package provider

import (
	"context"
	"fmt"
	"strconv"
	"time"

	binance "github.com/adshao/go-binance/v2"
	"github.com/rxtech-lab/argo-scalper/internal/types"
	"github.com/rxtech-lab/argo-scalper/pkg/errors"
	"github.com/rxtech-lab/argo-scalper/pkg/marketdata/writer"
)

// klinePageLimit is the maximum number of klines Binance returns per request.
const klinePageLimit = 1000

// validIntervals is the set of kline intervals Binance accepts.
var validIntervals = map[string]bool{
	"1m": true, "3m": true, "5m": true, "15m": true, "30m": true,
	"1h": true, "2h": true, "4h": true, "6h": true, "8h": true, "12h": true,
	"1d": true, "3d": true, "1w": true, "1M": true,
}

// ValidateInterval checks a kline interval string against the values the
// exchange accepts.
func ValidateInterval(interval string) error {
	if !validIntervals[interval] {
		return errors.Newf(errors.ErrCodeInvalidInterval, "unsupported kline interval %q", interval)
	}
	return nil
}

// BinanceProvider downloads historical klines from the Binance public API.
// Kline endpoints need no credentials.
type BinanceProvider struct {
	client *binance.Client
	writer writer.MarketDataWriter
	fetch  func(ctx context.Context, symbol, interval string, start, end int64) ([]*binance.Kline, error)
}

var _ Provider = (*BinanceProvider)(nil)

func NewBinanceProvider() *BinanceProvider {
	p := &BinanceProvider{
		client: binance.NewClient("", ""),
	}
	p.fetch = func(ctx context.Context, symbol, interval string, start, end int64) ([]*binance.Kline, error) {
		return p.client.NewKlinesService().
			Symbol(symbol).
			Interval(interval).
			StartTime(start).
			EndTime(end).
			Limit(klinePageLimit).
			Do(ctx)
	}
	return p
}

func (p *BinanceProvider) ConfigWriter(w writer.MarketDataWriter) {
	p.writer = w
}

// Download pages through the kline endpoint from start to end, converting
// each kline into a bar keyed by its open time in milliseconds. A range the
// exchange has no klines for returns an InsufficientDataError and writes no
// file.
func (p *BinanceProvider) Download(ctx context.Context, symbol string, interval string, start, end time.Time, onProgress OnDownloadProgress) (string, error) {
	if err := ValidateInterval(interval); err != nil {
		return "", err
	}
	if p.writer == nil {
		return "", errors.New(errors.ErrCodeMarketDataFetchFailed, "writer is not configured")
	}
	if err := p.writer.Initialize(); err != nil {
		return "", err
	}

	startMillis := start.UnixMilli()
	endMillis := end.UnixMilli()
	currentStart := startMillis
	total := 0

	for {
		klines, err := p.fetch(ctx, symbol, interval, currentStart, endMillis)
		if err != nil {
			return "", errors.Wrap(errors.ErrCodeMarketDataFetchFailed, "failed to fetch klines", err)
		}

		if onProgress != nil {
			onProgress(currentStart-startMillis, endMillis-startMillis, "downloading "+symbol+" klines")
		}

		if err := p.writeKlines(klines); err != nil {
			return "", err
		}
		total += len(klines)
		// A short page means the range is exhausted.
		if len(klines) < klinePageLimit {
			break
		}

		// Resume just after the last kline's close to avoid duplicates.
		currentStart = klines[len(klines)-1].CloseTime + 1
		if currentStart >= endMillis {
			break
		}
	}

	if total == 0 {
		return "", errors.NewInsufficientDataError(1, 0,
			fmt.Sprintf("no %s klines for %s between %s and %s", interval, symbol,
				start.UTC().Format(time.RFC3339), end.UTC().Format(time.RFC3339)))
	}

	outputPath, err := p.writer.Finalize()
	if err != nil {
		return "", err
	}
	if onProgress != nil {
		onProgress(endMillis-startMillis, endMillis-startMillis, "download complete")
	}
	return outputPath, nil
}

func (p *BinanceProvider) writeKlines(klines []*binance.Kline) error {
	for _, k := range klines {
		open, err := strconv.ParseFloat(k.Open, 64)
		if err != nil {
			return errors.Wrap(errors.ErrCodeMarketDataFetchFailed, "failed to parse kline open", err)
		}
		high, err := strconv.ParseFloat(k.High, 64)
		if err != nil {
			return errors.Wrap(errors.ErrCodeMarketDataFetchFailed, "failed to parse kline high", err)
		}
		low, err := strconv.ParseFloat(k.Low, 64)
		if err != nil {
			return errors.Wrap(errors.ErrCodeMarketDataFetchFailed, "failed to parse kline low", err)
		}
		closePrice, err := strconv.ParseFloat(k.Close, 64)
		if err != nil {
			return errors.Wrap(errors.ErrCodeMarketDataFetchFailed, "failed to parse kline close", err)
		}
		volume, err := strconv.ParseFloat(k.Volume, 64)
		if err != nil {
			return errors.Wrap(errors.ErrCodeMarketDataFetchFailed, "failed to parse kline volume", err)
		}

		bar := types.MarketData{
			Open:      open,
			High:      high,
			Low:       low,
			Close:     closePrice,
			Volume:    volume,
			Timestamp: k.OpenTime,
		}
		if err := p.writer.Write(bar); err != nil {
			return err
		}
	}
	return nil
}
