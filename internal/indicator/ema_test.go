package indicator

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type EMATestSuite struct {
	suite.Suite
}

func TestEMASuite(t *testing.T) {
	suite.Run(t, new(EMATestSuite))
}

func (suite *EMATestSuite) TestConstantSeriesStaysAtPrice() {
	values := make([]float64, 50)
	for i := range values {
		values[i] = 42.5
	}

	for _, period := range []int{2, 5, 20} {
		out := EMASeries(values, period)
		for _, v := range out {
			suite.InDelta(42.5, v, 1e-12)
		}
	}
}

func (suite *EMATestSuite) TestRecurrence() {
	// period 3 -> alpha = 0.5
	out := EMASeries([]float64{10, 20, 20}, 3)
	suite.InDelta(10.0, out[0], 1e-12)
	suite.InDelta(15.0, out[1], 1e-12)
	suite.InDelta(17.5, out[2], 1e-12)
}

func (suite *EMATestSuite) TestEmptyInput() {
	suite.Empty(EMASeries(nil, 5))
}
