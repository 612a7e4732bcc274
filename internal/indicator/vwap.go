package indicator

import "github.com/rxtech-lab/argo-scalper/internal/types"

// VWAPSeries calculates the volume-weighted average price as
// cumulative(close*volume) / cumulative(volume) over the whole series from
// its start. This is deliberately not a rolling window. A series with zero
// cumulative volume yields NaN, which the pipeline drops like any other
// undefined value.
func VWAPSeries(data []types.MarketData) []float64 {
	out := make([]float64, len(data))

	cumVolume := 0.0
	cumVolumePrice := 0.0

	for i, d := range data {
		cumVolume += d.Volume
		cumVolumePrice += d.Close * d.Volume
		out[i] = cumVolumePrice / cumVolume
	}

	return out
}
