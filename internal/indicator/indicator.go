// Package indicator computes derived per-bar features from a raw OHLCV
// series. The pipeline is a batch computation over the full historical
// sequence, not an incremental one: every run recomputes all series and drops
// the leading warm-up rows where any derived value is still undefined.
package indicator

const (
	// DefaultATRPeriod is the trailing window of the average true range.
	DefaultATRPeriod = 14
	// DefaultRSIPeriod is the lookback of the relative strength index.
	DefaultRSIPeriod = 14
	// DefaultVolumeMAPeriod is the trailing window of the volume moving
	// average used by the volume-spike filter.
	DefaultVolumeMAPeriod = 20

	// rsiEpsilon guards the average-loss division in the RSI so a loss-free
	// window cannot divide by zero.
	rsiEpsilon = 1e-9
)
