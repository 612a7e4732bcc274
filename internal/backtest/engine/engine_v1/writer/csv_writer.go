// Package writer exports backtest results as flat tabular artifacts.
package writer

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/rxtech-lab/argo-scalper/internal/types"
	"github.com/rxtech-lab/argo-scalper/pkg/errors"
)

// ResultWriter defines the interface for writing backtest results
type ResultWriter interface {
	// WriteTrades writes the trade ledger
	WriteTrades(trades []types.Trade) error

	// WriteEquityCurve writes the equity curve data
	WriteEquityCurve(curve []float64) error

	// WriteSummary writes the summary statistics
	WriteSummary(summary types.Summary) error

	// RunDir returns the directory this run's artifacts land in
	RunDir() string
}

// CSVWriter implements ResultWriter by writing to CSV files plus a YAML
// summary, one directory per run.
type CSVWriter struct {
	baseDir string
	runDir  string
}

// NewCSVWriter creates a CSVWriter with a fresh run directory under baseDir.
func NewCSVWriter(baseDir string) (*CSVWriter, error) {
	runDir := filepath.Join(baseDir, uuid.New().String())

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return nil, errors.Wrap(errors.ErrCodeBacktestWriteFailed, "failed to create run directory", err)
	}

	return &CSVWriter{
		baseDir: baseDir,
		runDir:  runDir,
	}, nil
}

// RunDir implements ResultWriter.
func (w *CSVWriter) RunDir() string {
	return w.runDir
}

// WriteTrades writes one row per trade to trades.csv.
func (w *CSVWriter) WriteTrades(trades []types.Trade) error {
	file, err := os.Create(filepath.Join(w.runDir, "trades.csv"))
	if err != nil {
		return errors.Wrap(errors.ErrCodeBacktestWriteFailed, "failed to create trades file", err)
	}
	defer file.Close()

	out := csv.NewWriter(file)

	header := []string{
		"signal", "entry_price", "exit_price", "qty",
		"pnl", "raw_pnl", "fee", "exit_idx", "reason",
	}
	if err := out.Write(header); err != nil {
		return errors.Wrap(errors.ErrCodeBacktestWriteFailed, "failed to write trades header", err)
	}

	for _, trade := range trades {
		record := []string{
			string(trade.Signal),
			fmt.Sprintf("%f", trade.EntryPrice),
			fmt.Sprintf("%f", trade.ExitPrice),
			fmt.Sprintf("%f", trade.Qty),
			fmt.Sprintf("%f", trade.PnL),
			fmt.Sprintf("%f", trade.RawPnL),
			fmt.Sprintf("%f", trade.Fee),
			fmt.Sprintf("%d", trade.ExitIndex),
			string(trade.Reason),
		}

		if err := out.Write(record); err != nil {
			return errors.Wrap(errors.ErrCodeBacktestWriteFailed, "failed to write trade", err)
		}
	}

	out.Flush()
	if err := out.Error(); err != nil {
		return errors.Wrap(errors.ErrCodeBacktestWriteFailed, "failed to flush trades file", err)
	}

	return nil
}

// WriteEquityCurve writes a single equity column to equity_curve.csv, one
// row per ledger point plus the initial balance.
func (w *CSVWriter) WriteEquityCurve(curve []float64) error {
	file, err := os.Create(filepath.Join(w.runDir, "equity_curve.csv"))
	if err != nil {
		return errors.Wrap(errors.ErrCodeBacktestWriteFailed, "failed to create equity curve file", err)
	}
	defer file.Close()

	out := csv.NewWriter(file)

	if err := out.Write([]string{"equity"}); err != nil {
		return errors.Wrap(errors.ErrCodeBacktestWriteFailed, "failed to write equity curve header", err)
	}

	for _, equity := range curve {
		if err := out.Write([]string{fmt.Sprintf("%f", equity)}); err != nil {
			return errors.Wrap(errors.ErrCodeBacktestWriteFailed, "failed to write equity curve point", err)
		}
	}

	out.Flush()
	if err := out.Error(); err != nil {
		return errors.Wrap(errors.ErrCodeBacktestWriteFailed, "failed to flush equity curve file", err)
	}

	return nil
}

// WriteSummary writes the summary statistics to stats.yaml.
func (w *CSVWriter) WriteSummary(summary types.Summary) error {
	if err := types.WriteSummary(filepath.Join(w.runDir, "stats.yaml"), summary); err != nil {
		return errors.Wrap(errors.ErrCodeBacktestWriteFailed, "failed to write summary", err)
	}

	return nil
}
