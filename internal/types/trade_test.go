package types

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type TradeTestSuite struct {
	suite.Suite
}

func TestTradeSuite(t *testing.T) {
	suite.Run(t, new(TradeTestSuite))
}

func (suite *TradeTestSuite) TestSettleLongWithoutFee() {
	raw, fee, pnl := SettleTrade(100, 110, 1, 1, 1, 0)
	suite.InDelta(10.0, raw, 1e-9)
	suite.InDelta(0.0, fee, 1e-9)
	suite.InDelta(10.0, pnl, 1e-9)
}

func (suite *TradeTestSuite) TestSettleLongWithFee() {
	// Fee is charged on the notional of both legs: (100+110)*1*0.001 = 0.21.
	raw, fee, pnl := SettleTrade(100, 110, 1, 1, 1, 0.001)
	suite.InDelta(10.0, raw, 1e-9)
	suite.InDelta(0.21, fee, 1e-9)
	suite.InDelta(9.79, pnl, 1e-9)
}

func (suite *TradeTestSuite) TestSettleShort() {
	raw, _, _ := SettleTrade(100, 90, 2, -1, 1, 0)
	suite.InDelta(20.0, raw, 1e-9)
}

func (suite *TradeTestSuite) TestSettleLeverageScalesBothPnlAndFee() {
	raw, fee, _ := SettleTrade(100, 110, 1, 1, 5, 0.001)
	suite.InDelta(50.0, raw, 1e-9)
	suite.InDelta(1.05, fee, 1e-9)
}

func (suite *TradeTestSuite) TestIsWin() {
	suite.True(Trade{PnL: 0.01}.IsWin())
	suite.False(Trade{PnL: 0}.IsWin())
	suite.False(Trade{PnL: -3}.IsWin())
}

func (suite *TradeTestSuite) TestDirection() {
	suite.Equal(1.0, SignalTypeBuy.Direction())
	suite.Equal(-1.0, SignalTypeSell.Direction())
	suite.Equal(0.0, SignalTypeNoAction.Direction())
}
