package engine

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-scalper/internal/backtest/engine/engine_v1/datasource"
	"github.com/rxtech-lab/argo-scalper/internal/logger"
	"github.com/rxtech-lab/argo-scalper/internal/strategy"
	"github.com/rxtech-lab/argo-scalper/internal/types"
	"github.com/rxtech-lab/argo-scalper/pkg/errors"
	"github.com/stretchr/testify/suite"
	"gopkg.in/yaml.v3"
)

type BacktestEngineTestSuite struct {
	suite.Suite
}

func TestBacktestEngineSuite(t *testing.T) {
	suite.Run(t, new(BacktestEngineTestSuite))
}

const testBaseTimestamp = int64(1700000000)

// breakoutSeries builds 40 one-minute bars: a flat stretch at 100, a single
// breakout bar at index 25 with a volume spike, then closes rising two per
// bar. It produces exactly one BUY crossover that runs into take-profit.
func breakoutSeries() []types.MarketData {
	data := make([]types.MarketData, 0, 40)
	for i := 0; i < 40; i++ {
		bar := types.MarketData{
			Open:      100,
			High:      101,
			Low:       99,
			Close:     100,
			Volume:    1000,
			Timestamp: testBaseTimestamp + int64(i)*60,
		}
		switch {
		case i == 25:
			bar.Open = 100
			bar.High = 105
			bar.Low = 103
			bar.Close = 104
			bar.Volume = 2000
		case i > 25:
			c := 104 + float64(i-25)*2
			bar.Open = c - 2
			bar.High = c + 1
			bar.Low = c - 1
			bar.Close = c
		}
		data = append(data, bar)
	}
	return data
}

func (s *BacktestEngineTestSuite) newEngine(data []types.MarketData) *BacktestEngineV1 {
	config, err := ParseConfig(`
trading:
  order_size: 0.05
  leverage: 2
  stop_loss_pct: 1.0
  take_profit_pct: 2.0
backtest:
  initial_balance: 1000
`)
	s.Require().NoError(err)

	eng := NewBacktestEngineV1()
	s.Require().NoError(eng.InitializeFromConfig(config, logger.NewNopLogger()))
	s.Require().NoError(eng.LoadStrategy(strategy.NewScalpingStrategy(config.Strategy, config.Trading)))
	s.Require().NoError(eng.SetDataSource(datasource.NewInMemoryDataSource(data)))
	return eng
}

func (s *BacktestEngineTestSuite) TestRunProducesSingleTakeProfitTrade() {
	eng := s.newEngine(breakoutSeries())
	s.Require().NoError(eng.Run())

	trades := eng.Trades()
	s.Require().Len(trades, 1)
	trade := trades[0]
	s.Equal(types.SignalTypeBuy, trade.Signal)
	s.Equal(types.ExitReasonTakeProfit, trade.Reason)

	// The breakout bar's true range is 5 against a flat 2 elsewhere, so the
	// entry ATR is (13*2+5)/14 and take-profit sits two ATRs above 104.
	atr := (13.0*2 + 5) / 14
	s.InDelta(104.0, trade.EntryPrice, 1e-9)
	s.InDelta(104+2*atr, trade.ExitPrice, 1e-9)
	// Raw index 27 is enriched index 8: its high of 109 is the first to
	// touch the take-profit level.
	s.Equal(8, trade.ExitIndex)

	qty := 1000 * 0.05 / 104.0
	rawPnL := 2 * atr * qty * 2
	fee := (104 + 104 + 2*atr) * qty * 0.0004 * 2
	s.InDelta(qty, trade.Qty, 1e-9)
	s.InDelta(rawPnL, trade.RawPnL, 1e-6)
	s.InDelta(fee, trade.Fee, 1e-6)
	s.InDelta(rawPnL-fee, trade.PnL, 1e-6)

	summary, err := eng.Summary()
	s.Require().NoError(err)
	s.True(summary.TradesExecuted)
	s.Equal(1, summary.TotalTrades)
	s.Equal(1, summary.WinningTrades)
	s.InDelta(1.0, summary.WinRate, 1e-9)
	s.InDelta(1000+trade.PnL, summary.FinalBalance, 1e-9)
	s.InDelta(trade.Fee, summary.TotalFees, 1e-9)
	s.Equal(0.0, summary.SharpeRatio, "one trade is not enough for a sharpe ratio")
	s.Equal(0.0, summary.MaxDrawdown)
}

func (s *BacktestEngineTestSuite) TestRunTooFewBars() {
	data := breakoutSeries()[:19]
	eng := s.newEngine(data)
	s.Require().NoError(eng.Run())

	summary, err := eng.Summary()
	s.Require().NoError(err)
	s.False(summary.TradesExecuted)
	s.Equal(1000.0, summary.InitialBalance)
	s.Equal(1000.0, summary.FinalBalance)
}

func (s *BacktestEngineTestSuite) TestRunEmptyDataSource() {
	eng := s.newEngine(nil)
	s.Require().NoError(eng.Run())

	s.Empty(eng.Trades())
	summary, err := eng.Summary()
	s.Require().NoError(err)
	s.False(summary.TradesExecuted)
	s.Equal(0, summary.TotalTrades)
	s.Equal(1000.0, summary.InitialBalance)
	s.Equal(1000.0, summary.FinalBalance)
}

func (s *BacktestEngineTestSuite) TestRunWindowExcludesAllBars() {
	eng := s.newEngine(breakoutSeries())
	afterSeries := time.Unix(testBaseTimestamp+3600, 0).UTC()
	eng.config.Backtest.StartTime = optional.Some(afterSeries)
	s.Require().NoError(eng.Run())

	s.Empty(eng.Trades())
	summary, err := eng.Summary()
	s.Require().NoError(err)
	s.False(summary.TradesExecuted)
}

func (s *BacktestEngineTestSuite) TestSummaryBeforeRun() {
	eng := s.newEngine(breakoutSeries())
	_, err := eng.Summary()
	s.Require().Error(err)
	s.True(errors.HasCode(err, errors.ErrCodeBacktestStateError))
}

func (s *BacktestEngineTestSuite) TestPreRunChecks() {
	eng := NewBacktestEngineV1()
	err := eng.Run()
	s.True(errors.HasCode(err, errors.ErrCodeBacktestStateError))

	config, perr := ParseConfig(`
trading:
  order_size: 0.05
  leverage: 2
  stop_loss_pct: 1.0
  take_profit_pct: 2.0
backtest:
  initial_balance: 1000
`)
	s.Require().NoError(perr)
	s.Require().NoError(eng.InitializeFromConfig(config, logger.NewNopLogger()))
	err = eng.Run()
	s.True(errors.HasCode(err, errors.ErrCodeStrategyNotFound))

	s.Require().NoError(eng.LoadStrategy(strategy.NewScalpingStrategy(config.Strategy, config.Trading)))
	err = eng.Run()
	s.True(errors.HasCode(err, errors.ErrCodeBacktestNoDatasource))
}

func (s *BacktestEngineTestSuite) TestRunWritesResults() {
	eng := s.newEngine(breakoutSeries())
	baseDir := s.T().TempDir()
	s.Require().NoError(eng.SetResultsFolder(baseDir))
	s.Require().NoError(eng.Run())

	entries, err := os.ReadDir(baseDir)
	s.Require().NoError(err)
	s.Require().Len(entries, 1)
	runDir := filepath.Join(baseDir, entries[0].Name())

	for _, name := range []string{"trades.csv", "equity_curve.csv", "stats.yaml"} {
		_, statErr := os.Stat(filepath.Join(runDir, name))
		s.NoError(statErr, name)
	}

	raw, err := os.ReadFile(filepath.Join(runDir, "stats.yaml"))
	s.Require().NoError(err)
	var summary types.Summary
	s.Require().NoError(yaml.Unmarshal(raw, &summary))
	s.Equal(1, summary.TotalTrades)
}
