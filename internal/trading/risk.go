package trading

import (
	"github.com/rxtech-lab/argo-scalper/internal/types"
	"github.com/rxtech-lab/argo-scalper/pkg/errors"
)

// RiskManager converts an entry price into percent-based protective levels.
// Unlike the ATR multiples the simulator uses, live orders are protected by
// fixed percentages of the entry price.
type RiskManager struct {
	stopLossPct   float64
	takeProfitPct float64
}

func NewRiskManager(stopLossPct, takeProfitPct float64) (*RiskManager, error) {
	if stopLossPct <= 0 || takeProfitPct <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidParameter, "stop loss and take profit percentages must be positive")
	}
	return &RiskManager{
		stopLossPct:   stopLossPct,
		takeProfitPct: takeProfitPct,
	}, nil
}

// StopLoss places the protective stop against the trade direction: below
// entry for longs, above entry for shorts.
func (r *RiskManager) StopLoss(entryPrice float64, side types.SignalType) float64 {
	return entryPrice * (1 - side.Direction()*r.stopLossPct/100)
}

// TakeProfit places the profit target along the trade direction.
func (r *RiskManager) TakeProfit(entryPrice float64, side types.SignalType) float64 {
	return entryPrice * (1 + side.Direction()*r.takeProfitPct/100)
}
