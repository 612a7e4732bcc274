// Package trading is the live execution boundary: an exchange client
// abstraction, percent-based protective levels and an executor that turns a
// signal into a leveraged market order.
package trading

import (
	"context"

	"github.com/rxtech-lab/argo-scalper/internal/types"
)

// Position is an open exchange position.
type Position struct {
	Symbol        string
	Quantity      float64
	EntryPrice    float64
	UnrealizedPnL float64
	Leverage      float64
}

// OrderResult describes an accepted order.
type OrderResult struct {
	OrderID  int64
	Symbol   string
	Side     types.SignalType
	Quantity float64
	Status   string
}

// ExchangeClient abstracts the exchange operations the executor needs.
type ExchangeClient interface {
	// GetBalance returns the available quote balance.
	GetBalance(ctx context.Context) (float64, error)
	// GetPositions returns all open positions.
	GetPositions(ctx context.Context) ([]Position, error)
	// SetLeverage sets the leverage for a symbol before placing orders.
	SetLeverage(ctx context.Context, symbol string, leverage int) error
	// PlaceMarketOrder submits a market order for the given side and quantity.
	PlaceMarketOrder(ctx context.Context, symbol string, side types.SignalType, quantity float64) (OrderResult, error)
}
