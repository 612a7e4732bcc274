package indicator

import (
	"math"

	"github.com/rxtech-lab/argo-scalper/internal/types"
)

// TrueRangeSeries calculates the per-bar true range:
//
//	tr = max(|high-low|, |high-prev_close|, |low-prev_close|)
//
// The first bar has no previous close, so its true range collapses to
// |high-low|. Every output element is defined.
func TrueRangeSeries(data []types.MarketData) []float64 {
	out := make([]float64, len(data))

	for i, d := range data {
		tr := math.Abs(d.High - d.Low)

		if i > 0 {
			prevClose := data[i-1].Close
			tr = math.Max(tr, math.Abs(d.High-prevClose))
			tr = math.Max(tr, math.Abs(d.Low-prevClose))
		}

		out[i] = tr
	}

	return out
}

// ATRSeries calculates the average true range as a simple moving average of
// the true range over a trailing window of period bars. Elements before the
// window is full are NaN.
func ATRSeries(data []types.MarketData, period int) []float64 {
	return SMASeries(TrueRangeSeries(data), period)
}
