package types

import "github.com/shopspring/decimal"

// ExitReason records how a simulated trade was closed.
type ExitReason string

const (
	// ExitReasonTakeProfit means the take-profit level was touched first.
	ExitReasonTakeProfit ExitReason = "tp"
	// ExitReasonStopLoss means the stop-loss level was touched first.
	ExitReasonStopLoss ExitReason = "sl"
	// ExitReasonTimeout means the series ended before either level was touched.
	ExitReasonTimeout ExitReason = "timeout"
)

// Trade is the fully resolved result of one simulated position. A Trade is
// created and settled in a single simulation step and never mutated after it
// is returned.
type Trade struct {
	Signal     SignalType `csv:"signal"`
	EntryPrice float64    `csv:"entry_price"`
	ExitPrice  float64    `csv:"exit_price"`
	Qty        float64    `csv:"qty"`
	// PnL is RawPnL minus Fee.
	PnL    float64 `csv:"pnl"`
	RawPnL float64 `csv:"raw_pnl"`
	// Fee is charged on the notional of both legs.
	Fee float64 `csv:"fee"`
	// ExitIndex is the position in the enriched bar sequence where the exit
	// occurred.
	ExitIndex int        `csv:"exit_idx"`
	Reason    ExitReason `csv:"reason"`

	// StopLoss and TakeProfit are the levels computed at entry. A live
	// execution component consumes them to place real orders; the backtest
	// exports do not include them.
	StopLoss   float64 `csv:"-"`
	TakeProfit float64 `csv:"-"`
}

// IsWin reports whether the trade closed with a positive net profit.
// Break-even trades count as losses.
func (t Trade) IsWin() bool {
	return t.PnL > 0
}

// SettleTrade computes the gross pnl, fee and net pnl of a closed position.
// direction is +1 for a long and -1 for a short; feeRate applies to the
// notional of both legs. The arithmetic runs through decimals so that
// repeated sweep runs do not accumulate float drift.
func SettleTrade(entryPrice, exitPrice, qty, direction, leverage, feeRate float64) (rawPnl, fee, pnl float64) {
	entry := decimal.NewFromFloat(entryPrice)
	exit := decimal.NewFromFloat(exitPrice)
	qtyDec := decimal.NewFromFloat(qty)
	levDec := decimal.NewFromFloat(leverage)

	rawDec := exit.Sub(entry).
		Mul(qtyDec).
		Mul(decimal.NewFromFloat(direction)).
		Mul(levDec)
	feeDec := entry.Add(exit).
		Mul(qtyDec).
		Mul(decimal.NewFromFloat(feeRate)).
		Mul(levDec)

	rawPnl, _ = rawDec.Float64()
	fee, _ = feeDec.Float64()
	pnl, _ = rawDec.Sub(feeDec).Float64()

	return rawPnl, fee, pnl
}
