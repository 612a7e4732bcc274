package types

import (
	"os"

	"github.com/rxtech-lab/argo-scalper/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Summary reduces a completed trade ledger into headline statistics.
type Summary struct {
	// InitialBalance is the configured starting balance.
	InitialBalance float64 `yaml:"initial_balance"`
	// FinalBalance is the balance after all trade pnls were applied.
	FinalBalance float64 `yaml:"final_balance"`
	// TradesExecuted is false when the ledger is empty; the remaining
	// statistics are zero in that case.
	TradesExecuted bool `yaml:"trades_executed"`
	// TotalTrades is the size of the ledger.
	TotalTrades int `yaml:"total_trades"`
	// WinningTrades counts trades with positive net pnl.
	WinningTrades int `yaml:"winning_trades"`
	// LosingTrades counts trades with zero or negative net pnl.
	LosingTrades int `yaml:"losing_trades"`
	// WinRate is WinningTrades over TotalTrades.
	WinRate float64 `yaml:"win_rate"`
	// TotalFees is the sum of all trade fees.
	TotalFees float64 `yaml:"total_fees"`
	// SharpeRatio is the annualized per-trade sharpe ratio. Zero unless the
	// ledger holds at least two trades.
	SharpeRatio float64 `yaml:"sharpe_ratio"`
	// MaxDrawdown is the largest decline of equity from its running peak,
	// reported as a negative or zero number.
	MaxDrawdown float64 `yaml:"max_drawdown"`
}

// WriteSummary writes the summary to a YAML file.
func WriteSummary(path string, summary Summary) error {
	data, err := yaml.Marshal(summary)
	if err != nil {
		return errors.Wrap(errors.ErrCodeBacktestWriteFailed, "failed to marshal summary to YAML", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrap(errors.ErrCodeBacktestWriteFailed, "failed to write summary to file", err)
	}

	return nil
}
