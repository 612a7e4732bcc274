package types

import "time"

// millisecondEpochThreshold separates second-resolution epoch timestamps from
// millisecond-resolution ones. Anything above it is treated as milliseconds.
const millisecondEpochThreshold = 1e10

// MarketData is one raw OHLCV observation. Timestamp is a unix epoch in
// seconds or milliseconds; Time resolves the ambiguity.
type MarketData struct {
	Open      float64 `csv:"open"`
	High      float64 `csv:"high"`
	Low       float64 `csv:"low"`
	Close     float64 `csv:"close"`
	Volume    float64 `csv:"volume"`
	Timestamp int64   `csv:"timestamp"`
}

// Time converts the epoch timestamp to UTC, dividing by 1000 first when the
// value looks like milliseconds.
func (m MarketData) Time() time.Time {
	ts := m.Timestamp
	if float64(ts) > millisecondEpochThreshold {
		ts /= 1000
	}

	return time.Unix(ts, 0).UTC()
}

// Hour returns the UTC hour-of-day of the observation.
func (m MarketData) Hour() int {
	return m.Time().Hour()
}
