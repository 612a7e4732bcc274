package indicator

// EMASeries calculates the exponential moving average of values with
// smoothing span period. The recurrence seeds with the first value and
// applies alpha = 2/(period+1):
//
//	ema[0] = values[0]
//	ema[t] = values[t]*alpha + ema[t-1]*(1-alpha)
//
// Every output element is defined; there is no warm-up gap.
func EMASeries(values []float64, period int) []float64 {
	out := make([]float64, len(values))
	if len(values) == 0 {
		return out
	}

	alpha := 2.0 / float64(period+1)

	out[0] = values[0]
	for i := 1; i < len(values); i++ {
		out[i] = values[i]*alpha + out[i-1]*(1-alpha)
	}

	return out
}
