package trading

import (
	"context"

	"github.com/rxtech-lab/argo-scalper/internal/logger"
	"github.com/rxtech-lab/argo-scalper/internal/strategy"
	"github.com/rxtech-lab/argo-scalper/internal/types"
	"github.com/rxtech-lab/argo-scalper/pkg/errors"
	"go.uber.org/zap"
)

// OpenPositionResult carries the accepted entry order and the protective
// levels the caller should attach to it.
type OpenPositionResult struct {
	Order      OrderResult
	StopLoss   float64
	TakeProfit float64
}

// Executor opens leveraged positions from strategy signals.
type Executor struct {
	client   ExchangeClient
	risk     *RiskManager
	leverage int
	log      *logger.Logger
}

func NewExecutor(client ExchangeClient, trading strategy.TradingConfig, log *logger.Logger) (*Executor, error) {
	if client == nil {
		return nil, errors.New(errors.ErrCodeInvalidParameter, "exchange client is nil")
	}
	risk, err := NewRiskManager(trading.StopLossPct, trading.TakeProfitPct)
	if err != nil {
		return nil, err
	}
	return &Executor{
		client:   client,
		risk:     risk,
		leverage: int(trading.Leverage),
		log:      log,
	}, nil
}

// OpenPosition sets the symbol leverage, submits a market order and returns
// the percent-based stop-loss and take-profit levels for the fill.
// TODO: attach STOP_MARKET/TAKE_PROFIT_MARKET orders once the client
// supports conditional order types.
func (e *Executor) OpenPosition(ctx context.Context, symbol string, signal types.SignalType, quantity, entryPrice float64) (OpenPositionResult, error) {
	if signal != types.SignalTypeBuy && signal != types.SignalTypeSell {
		return OpenPositionResult{}, errors.Newf(errors.ErrCodeInvalidParameter, "cannot open a position for signal %q", signal)
	}
	if quantity <= 0 {
		return OpenPositionResult{}, errors.New(errors.ErrCodeInvalidParameter, "quantity must be positive")
	}

	if err := e.client.SetLeverage(ctx, symbol, e.leverage); err != nil {
		return OpenPositionResult{}, err
	}

	order, err := e.client.PlaceMarketOrder(ctx, symbol, signal, quantity)
	if err != nil {
		return OpenPositionResult{}, err
	}

	result := OpenPositionResult{
		Order:      order,
		StopLoss:   e.risk.StopLoss(entryPrice, signal),
		TakeProfit: e.risk.TakeProfit(entryPrice, signal),
	}
	e.log.Info("position opened",
		zap.String("symbol", symbol),
		zap.String("side", string(signal)),
		zap.Float64("quantity", quantity),
		zap.Float64("entry_price", entryPrice),
		zap.Float64("stop_loss", result.StopLoss),
		zap.Float64("take_profit", result.TakeProfit),
		zap.Int64("order_id", order.OrderID),
	)
	return result, nil
}
