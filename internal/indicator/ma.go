package indicator

import "math"

// SMASeries calculates a trailing simple moving average over window
// observations. Elements before the window is full are NaN, matching the
// warm-up semantics of the pipeline.
func SMASeries(values []float64, window int) []float64 {
	out := make([]float64, len(values))

	sum := 0.0

	for i, v := range values {
		sum += v
		if i >= window {
			sum -= values[i-window]
		}

		if i >= window-1 {
			out[i] = sum / float64(window)
		} else {
			out[i] = math.NaN()
		}
	}

	return out
}
