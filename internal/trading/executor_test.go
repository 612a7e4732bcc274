package trading

import (
	"context"
	"testing"

	"github.com/rxtech-lab/argo-scalper/internal/logger"
	"github.com/rxtech-lab/argo-scalper/internal/strategy"
	"github.com/rxtech-lab/argo-scalper/internal/types"
	"github.com/rxtech-lab/argo-scalper/pkg/errors"
	"github.com/stretchr/testify/suite"
)

// fakeExchange records executor calls and returns scripted results.
type fakeExchange struct {
	balance        float64
	positions      []Position
	leverageCalls  []int
	leverageSymbol string
	leverageErr    error
	orders         []OrderResult
	orderErr       error
	nextOrderID    int64
}

func (f *fakeExchange) GetBalance(ctx context.Context) (float64, error) {
	return f.balance, nil
}

func (f *fakeExchange) GetPositions(ctx context.Context) ([]Position, error) {
	return f.positions, nil
}

func (f *fakeExchange) SetLeverage(ctx context.Context, symbol string, leverage int) error {
	f.leverageSymbol = symbol
	f.leverageCalls = append(f.leverageCalls, leverage)
	return f.leverageErr
}

func (f *fakeExchange) PlaceMarketOrder(ctx context.Context, symbol string, side types.SignalType, quantity float64) (OrderResult, error) {
	if f.orderErr != nil {
		return OrderResult{}, f.orderErr
	}
	f.nextOrderID++
	order := OrderResult{
		OrderID:  f.nextOrderID,
		Symbol:   symbol,
		Side:     side,
		Quantity: quantity,
		Status:   "FILLED",
	}
	f.orders = append(f.orders, order)
	return order, nil
}

type ExecutorTestSuite struct {
	suite.Suite
	exchange *fakeExchange
	executor *Executor
}

func TestExecutorSuite(t *testing.T) {
	suite.Run(t, new(ExecutorTestSuite))
}

func (s *ExecutorTestSuite) SetupTest() {
	s.exchange = &fakeExchange{balance: 1000}
	trading := strategy.TradingConfig{
		OrderSize:     0.05,
		Leverage:      3,
		StopLossPct:   1.0,
		TakeProfitPct: 2.0,
		Fee:           0.0004,
	}
	executor, err := NewExecutor(s.exchange, trading, logger.NewNopLogger())
	s.Require().NoError(err)
	s.executor = executor
}

func (s *ExecutorTestSuite) TestOpenLongPosition() {
	result, err := s.executor.OpenPosition(context.Background(), "BTCUSDT", types.SignalTypeBuy, 0.5, 20000)
	s.Require().NoError(err)

	s.Equal([]int{3}, s.exchange.leverageCalls, "leverage must be set before the order")
	s.Equal("BTCUSDT", s.exchange.leverageSymbol)
	s.Require().Len(s.exchange.orders, 1)
	s.Equal(types.SignalTypeBuy, s.exchange.orders[0].Side)
	s.Equal(0.5, s.exchange.orders[0].Quantity)
	s.Equal("FILLED", result.Order.Status)
	s.InDelta(19800.0, result.StopLoss, 1e-6)
	s.InDelta(20400.0, result.TakeProfit, 1e-6)
}

func (s *ExecutorTestSuite) TestOpenShortPosition() {
	result, err := s.executor.OpenPosition(context.Background(), "ETHUSDT", types.SignalTypeSell, 2, 3000)
	s.Require().NoError(err)

	s.InDelta(3030.0, result.StopLoss, 1e-6)
	s.InDelta(2940.0, result.TakeProfit, 1e-6)
}

func (s *ExecutorTestSuite) TestRejectsNoActionSignal() {
	_, err := s.executor.OpenPosition(context.Background(), "BTCUSDT", types.SignalTypeNoAction, 1, 20000)
	s.Require().Error(err)
	s.True(errors.HasCode(err, errors.ErrCodeInvalidParameter))
	s.Empty(s.exchange.orders)
}

func (s *ExecutorTestSuite) TestRejectsNonPositiveQuantity() {
	_, err := s.executor.OpenPosition(context.Background(), "BTCUSDT", types.SignalTypeBuy, 0, 20000)
	s.Require().Error(err)
	s.Empty(s.exchange.leverageCalls, "no exchange call should happen for an invalid request")
}

func (s *ExecutorTestSuite) TestLeverageFailureStopsOrder() {
	s.exchange.leverageErr = errors.New(errors.ErrCodeLeverageSetFailed, "leverage rejected")
	_, err := s.executor.OpenPosition(context.Background(), "BTCUSDT", types.SignalTypeBuy, 1, 20000)
	s.Require().Error(err)
	s.True(errors.HasCode(err, errors.ErrCodeLeverageSetFailed))
	s.Empty(s.exchange.orders)
}

func (s *ExecutorTestSuite) TestOrderFailureSurfaces() {
	s.exchange.orderErr = errors.New(errors.ErrCodeOrderFailed, "insufficient margin")
	_, err := s.executor.OpenPosition(context.Background(), "BTCUSDT", types.SignalTypeBuy, 1, 20000)
	s.Require().Error(err)
	s.True(errors.HasCode(err, errors.ErrCodeOrderFailed))
}

func (s *ExecutorTestSuite) TestExecutorRequiresClient() {
	_, err := NewExecutor(nil, strategy.TradingConfig{
		StopLossPct:   1,
		TakeProfitPct: 2,
		Leverage:      1,
	}, logger.NewNopLogger())
	s.Require().Error(err)
}

func (s *ExecutorTestSuite) TestBinanceConfigValidation() {
	_, err := ParseBinanceConfig("api_key: key\n")
	s.Require().Error(err, "missing secret must fail validation")

	config, err := ParseBinanceConfig("api_key: key\napi_secret: secret\nuse_testnet: true\n")
	s.Require().NoError(err)
	s.True(config.UseTestnet)
}
