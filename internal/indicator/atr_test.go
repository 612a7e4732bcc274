package indicator

import (
	"math"
	"testing"

	"github.com/rxtech-lab/argo-scalper/internal/types"
	"github.com/stretchr/testify/suite"
)

type ATRTestSuite struct {
	suite.Suite
}

func TestATRSuite(t *testing.T) {
	suite.Run(t, new(ATRTestSuite))
}

func rangeBars(n int, price, halfRange float64) []types.MarketData {
	bars := make([]types.MarketData, n)
	for i := range bars {
		bars[i] = types.MarketData{
			Open:      price,
			High:      price + halfRange,
			Low:       price - halfRange,
			Close:     price,
			Volume:    1000,
			Timestamp: int64(1700000000 + i*60),
		}
	}

	return bars
}

func (suite *ATRTestSuite) TestTrueRangeFirstBarUsesHighLow() {
	tr := TrueRangeSeries(rangeBars(3, 100, 1))
	suite.InDelta(2.0, tr[0], 1e-12)
}

func (suite *ATRTestSuite) TestTrueRangeUsesPrevClose() {
	bars := []types.MarketData{
		{High: 101, Low: 99, Close: 100},
		// gap up: high-prev_close dominates
		{High: 110, Low: 108, Close: 109},
	}
	tr := TrueRangeSeries(bars)
	suite.InDelta(10.0, tr[1], 1e-12)
}

func (suite *ATRTestSuite) TestWarmupIsNaN() {
	atr := ATRSeries(rangeBars(20, 100, 1), 14)
	for i := 0; i < 13; i++ {
		suite.True(math.IsNaN(atr[i]), "index %d should be NaN", i)
	}

	suite.False(math.IsNaN(atr[13]))
}

func (suite *ATRTestSuite) TestConstantRangeAndNonNegativity() {
	atr := ATRSeries(rangeBars(30, 100, 1), 14)
	for i := 13; i < len(atr); i++ {
		suite.InDelta(2.0, atr[i], 1e-12)
		suite.GreaterOrEqual(atr[i], 0.0)
	}
}
