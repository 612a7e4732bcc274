// Package provider downloads historical market data from exchanges.
package provider

import (
	"context"
	"time"

	"github.com/rxtech-lab/argo-scalper/pkg/marketdata/writer"
)

// OnDownloadProgress reports download progress in the [current, total]
// millisecond range being fetched.
type OnDownloadProgress func(current, total int64, message string)

// Provider fetches historical bars for a symbol and streams them into the
// configured writer.
type Provider interface {
	// ConfigWriter sets the destination for downloaded bars.
	ConfigWriter(w writer.MarketDataWriter)
	// Download fetches all bars of the given interval between start and end
	// and returns the path of the written output.
	Download(ctx context.Context, symbol string, interval string, start, end time.Time, onProgress OnDownloadProgress) (string, error)
}
