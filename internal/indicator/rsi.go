package indicator

import "math"

// RSISeries calculates the relative strength index over close prices.
// Gains and losses come from consecutive close differences (a positive diff
// is a gain, a negated negative diff is a loss, zero otherwise) and are
// averaged over a trailing window of period diffs:
//
//	rs  = avg_gain / (avg_loss + epsilon)
//	rsi = 100 - 100/(1+rs)
//
// The first bar has no diff, so output elements are NaN until period diffs
// exist (index >= period).
func RSISeries(closes []float64, period int) []float64 {
	n := len(closes)
	out := make([]float64, n)
	gains := make([]float64, n)
	losses := make([]float64, n)

	for i := 0; i < n; i++ {
		out[i] = math.NaN()
	}

	for i := 1; i < n; i++ {
		delta := closes[i] - closes[i-1]
		if delta > 0 {
			gains[i] = delta
		} else {
			losses[i] = -delta
		}
	}

	sumGain := 0.0
	sumLoss := 0.0

	for i := 1; i < n; i++ {
		sumGain += gains[i]
		sumLoss += losses[i]

		if i > period {
			sumGain -= gains[i-period]
			sumLoss -= losses[i-period]
		}

		if i >= period {
			avgGain := sumGain / float64(period)
			avgLoss := sumLoss / float64(period)
			rs := avgGain / (avgLoss + rsiEpsilon)
			out[i] = 100 - 100/(1+rs)
		}
	}

	return out
}
