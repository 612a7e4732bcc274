package engine

import (
	"math"

	"github.com/rxtech-lab/argo-scalper/internal/logger"
	"github.com/rxtech-lab/argo-scalper/internal/types"
	"go.uber.org/zap"
)

const (
	// sharpeEpsilon guards the ratio against a zero standard deviation.
	sharpeEpsilon = 1e-9
	// annualizationPeriods scales the per-trade Sharpe to trading days.
	annualizationPeriods = 252
)

// BacktestState accumulates the trade ledger and running balance of a single
// run, and reduces them into summary statistics once the run completes.
type BacktestState struct {
	initialBalance float64
	balance        float64
	trades         []types.Trade
	log            *logger.Logger
}

func NewBacktestState(log *logger.Logger) *BacktestState {
	return &BacktestState{log: log}
}

// Initialize resets the state for a fresh run with the given starting balance.
func (s *BacktestState) Initialize(initialBalance float64) {
	s.initialBalance = initialBalance
	s.balance = initialBalance
	s.trades = nil
}

// ApplyTrade records a resolved trade and settles its net PnL into the balance.
func (s *BacktestState) ApplyTrade(trade types.Trade) {
	s.trades = append(s.trades, trade)
	s.balance += trade.PnL
	s.log.Debug("trade applied",
		zap.String("signal", string(trade.Signal)),
		zap.String("reason", string(trade.Reason)),
		zap.Float64("pnl", trade.PnL),
		zap.Float64("balance", s.balance),
	)
}

func (s *BacktestState) Balance() float64 {
	return s.balance
}

func (s *BacktestState) Trades() []types.Trade {
	return s.trades
}

// EquityCurve returns the balance after each trade, prefixed with the
// initial balance. Its length is always len(trades)+1.
func (s *BacktestState) EquityCurve() []float64 {
	curve := make([]float64, 0, len(s.trades)+1)
	equity := s.initialBalance
	curve = append(curve, equity)
	for _, trade := range s.trades {
		equity += trade.PnL
		curve = append(curve, equity)
	}
	return curve
}

// GetStats reduces the ledger into a summary. With no trades only the
// balances are meaningful and TradesExecuted is false.
func (s *BacktestState) GetStats() types.Summary {
	summary := types.Summary{
		InitialBalance: s.initialBalance,
		FinalBalance:   s.balance,
	}
	if len(s.trades) == 0 {
		return summary
	}

	summary.TradesExecuted = true
	summary.TotalTrades = len(s.trades)
	for _, trade := range s.trades {
		if trade.IsWin() {
			summary.WinningTrades++
		} else {
			summary.LosingTrades++
		}
		summary.TotalFees += trade.Fee
	}
	summary.WinRate = float64(summary.WinningTrades) / float64(summary.TotalTrades)
	if len(s.trades) >= 2 {
		summary.SharpeRatio = s.sharpeRatio()
	}
	summary.MaxDrawdown = maxDrawdown(s.EquityCurve())
	return summary
}

// sharpeRatio treats each trade's return on initial balance as one sampling
// period and annualizes over trading days.
func (s *BacktestState) sharpeRatio() float64 {
	returns := make([]float64, len(s.trades))
	for i, trade := range s.trades {
		returns[i] = trade.PnL / s.initialBalance
	}
	mean := 0.0
	for _, r := range returns {
		mean += r
	}
	mean /= float64(len(returns))
	variance := 0.0
	for _, r := range returns {
		d := r - mean
		variance += d * d
	}
	variance /= float64(len(returns))
	std := math.Sqrt(variance)
	return mean / (std + sharpeEpsilon) * math.Sqrt(annualizationPeriods)
}

// maxDrawdown is the most negative excursion of equity below its running
// peak. It is zero for a monotonically rising curve and never positive.
func maxDrawdown(curve []float64) float64 {
	peak := math.Inf(-1)
	drawdown := 0.0
	for _, equity := range curve {
		if equity > peak {
			peak = equity
		}
		if dd := equity - peak; dd < drawdown {
			drawdown = dd
		}
	}
	return drawdown
}
