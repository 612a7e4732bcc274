package strategy

import (
	"fmt"

	"github.com/rxtech-lab/argo-scalper/internal/types"
)

// volumeSpikeMultiplier is the factor by which a bar's volume must exceed
// its trailing volume MA before a signal is considered.
const volumeSpikeMultiplier = 1.2

// ScalpingStrategy trades EMA crossovers confirmed by RSI momentum and an
// optional VWAP confluence check, with ATR-sized stop-loss and take-profit
// levels.
type ScalpingStrategy struct {
	config  Config
	trading TradingConfig
}

// NewScalpingStrategy creates a scalping strategy from resolved configuration.
func NewScalpingStrategy(config Config, trading TradingConfig) *ScalpingStrategy {
	return &ScalpingStrategy{
		config:  config,
		trading: trading,
	}
}

// Name implements Strategy.
func (s *ScalpingStrategy) Name() string {
	return fmt.Sprintf("scalping_ema_%d_%d", s.config.EMAFast, s.config.EMASlow)
}

// GenerateSignal implements Strategy. Checks run in a fixed order and the
// first failing one suppresses the signal; later checks never revive it.
func (s *ScalpingStrategy) GenerateSignal(bar types.Bar) types.SignalType {
	if bar.ATR < s.config.MinATR {
		return types.SignalTypeNoAction
	}

	if bar.Volume < volumeSpikeMultiplier*bar.VolumeMA {
		return types.SignalTypeNoAction
	}

	hour := bar.Hour()
	if hour < s.config.TradeStartHour || hour >= s.config.TradeEndHour {
		return types.SignalTypeNoAction
	}

	switch {
	case bar.EMAFast > bar.EMASlow && bar.PrevEMAFast <= bar.PrevEMASlow:
		if bar.RSI <= s.config.RSIBuy {
			return types.SignalTypeNoAction
		}

		if s.config.UseVWAPConfluence && bar.Close < bar.VWAP {
			return types.SignalTypeNoAction
		}

		return types.SignalTypeBuy
	case bar.EMAFast < bar.EMASlow && bar.PrevEMAFast >= bar.PrevEMASlow:
		if bar.RSI >= s.config.RSISell {
			return types.SignalTypeNoAction
		}

		if s.config.UseVWAPConfluence && bar.Close > bar.VWAP {
			return types.SignalTypeNoAction
		}

		return types.SignalTypeSell
	}

	return types.SignalTypeNoAction
}

// SimulateTrade implements Strategy. The entry fills at the bar's close with
// slippage against the position; the exit scan walks bars strictly after
// entryIndex and checks take-profit before stop-loss within each bar (if
// both are touched in the same bar, TP wins). A series that ends without
// touching either level exits at the final close as a timeout. Exit fills
// carry slippage against the position for every reason.
func (s *ScalpingStrategy) SimulateTrade(signal types.SignalType, entry types.Bar, entryIndex int, bars []types.Bar, balance float64) types.Trade {
	direction := signal.Direction()
	slippage := s.trading.Slippage

	entryPrice := entry.Close * (1 + direction*slippage)
	qty := balance * s.trading.OrderSize / entryPrice

	stopLoss := entryPrice - direction*s.config.SLATRMult*entry.ATR
	takeProfit := entryPrice + direction*s.config.TPATRMult*entry.ATR

	// Without a forward series the trade resolves at the take-profit level.
	exitPrice := takeProfit
	exitIndex := entryIndex
	reason := types.ExitReasonTakeProfit

	if bars != nil {
		exitPrice, exitIndex, reason = s.scanExit(direction, stopLoss, takeProfit, entryIndex, bars)
	}

	rawPnl, fee, pnl := types.SettleTrade(entryPrice, exitPrice, qty, direction, s.trading.Leverage, s.trading.Fee)

	return types.Trade{
		Signal:     signal,
		EntryPrice: entryPrice,
		ExitPrice:  exitPrice,
		Qty:        qty,
		PnL:        pnl,
		RawPnL:     rawPnl,
		Fee:        fee,
		ExitIndex:  exitIndex,
		Reason:     reason,
		StopLoss:   stopLoss,
		TakeProfit: takeProfit,
	}
}

func (s *ScalpingStrategy) scanExit(direction, stopLoss, takeProfit float64, entryIndex int, bars []types.Bar) (float64, int, types.ExitReason) {
	slippage := s.trading.Slippage

	for i := entryIndex + 1; i < len(bars); i++ {
		high := bars[i].High
		low := bars[i].Low

		if direction > 0 {
			if high >= takeProfit {
				return takeProfit * (1 - slippage), i, types.ExitReasonTakeProfit
			}

			if low <= stopLoss {
				return stopLoss * (1 - slippage), i, types.ExitReasonStopLoss
			}
		} else {
			if low <= takeProfit {
				return takeProfit * (1 + slippage), i, types.ExitReasonTakeProfit
			}

			if high >= stopLoss {
				return stopLoss * (1 + slippage), i, types.ExitReasonStopLoss
			}
		}
	}

	last := len(bars) - 1

	return bars[last].Close * (1 - direction*slippage), last, types.ExitReasonTimeout
}
