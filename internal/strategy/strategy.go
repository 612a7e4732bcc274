// Package strategy contains the signal generation and trade simulation rules
// that run inside the backtest engine. Strategies are plain in-process
// implementations of the Strategy contract; new variants are added as new
// implementations, not as partial overrides of a base type.
package strategy

import "github.com/rxtech-lab/argo-scalper/internal/types"

// Strategy is the capability contract the backtest engine drives. Both
// operations are pure with respect to the engine: GenerateSignal classifies
// a single enriched bar, and SimulateTrade resolves a triggered signal into
// a settled trade without mutating any shared state.
type Strategy interface {
	// Name identifies the strategy in logs and result folders.
	Name() string
	// GenerateSignal classifies one enriched bar as BUY, SELL or no action.
	GenerateSignal(bar types.Bar) types.SignalType
	// SimulateTrade resolves a signal triggered on entry (at entryIndex in
	// bars) into a settled Trade, scanning forward through bars for the
	// exit. A nil bars slice is the documented minimal-context call: the
	// trade resolves immediately at its take-profit level.
	SimulateTrade(signal types.SignalType, entry types.Bar, entryIndex int, bars []types.Bar, balance float64) types.Trade
}
