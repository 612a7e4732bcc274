package trading

import (
	"context"
	"strconv"

	binance "github.com/adshao/go-binance/v2"
	"github.com/adshao/go-binance/v2/futures"
	"github.com/go-playground/validator/v10"
	"github.com/rxtech-lab/argo-scalper/internal/types"
	"github.com/rxtech-lab/argo-scalper/pkg/errors"
	"gopkg.in/yaml.v3"
)

// quoteAsset is the settlement asset balances are reported in.
const quoteAsset = "USDT"

// quantityPrecision is a fallback order quantity precision. Production
// systems should use the symbol's LOT_SIZE filter from exchange info.
const quantityPrecision = 8

// BinanceConfig configures the futures exchange connection. Credentials are
// required; the testnet flag routes orders away from real funds.
type BinanceConfig struct {
	APIKey     string `yaml:"api_key" json:"api_key" validate:"required"`
	APISecret  string `yaml:"api_secret" json:"api_secret" validate:"required"`
	UseTestnet bool   `yaml:"use_testnet" json:"use_testnet"`
}

func (c *BinanceConfig) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid binance config", err)
	}
	return nil
}

// ParseBinanceConfig parses a YAML document into a validated BinanceConfig.
func ParseBinanceConfig(content string) (*BinanceConfig, error) {
	var config BinanceConfig
	if err := yaml.Unmarshal([]byte(content), &config); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfiguration, "failed to parse binance config", err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// BinanceExchange implements ExchangeClient against the Binance USD-M
// futures API.
type BinanceExchange struct {
	client *futures.Client
}

var _ ExchangeClient = (*BinanceExchange)(nil)

func NewBinanceExchange(config *BinanceConfig) (*BinanceExchange, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	futures.UseTestnet = config.UseTestnet
	return &BinanceExchange{
		client: binance.NewFuturesClient(config.APIKey, config.APISecret),
	}, nil
}

// GetBalance returns the available USDT balance of the futures account.
func (e *BinanceExchange) GetBalance(ctx context.Context) (float64, error) {
	balances, err := e.client.NewGetBalanceService().Do(ctx)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeBalanceFetch, "failed to fetch account balance", err)
	}
	for _, balance := range balances {
		if balance.Asset != quoteAsset {
			continue
		}
		available, err := strconv.ParseFloat(balance.AvailableBalance, 64)
		if err != nil {
			return 0, errors.Wrap(errors.ErrCodeBalanceFetch, "failed to parse balance", err)
		}
		return available, nil
	}
	return 0, errors.Newf(errors.ErrCodeBalanceFetch, "no %s balance found", quoteAsset)
}

// GetPositions returns all positions with a non-zero amount.
func (e *BinanceExchange) GetPositions(ctx context.Context) ([]Position, error) {
	risks, err := e.client.NewGetPositionRiskService().Do(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodePositionFetch, "failed to fetch positions", err)
	}

	positions := make([]Position, 0, len(risks))
	for _, risk := range risks {
		quantity, err := strconv.ParseFloat(risk.PositionAmt, 64)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodePositionFetch, "failed to parse position amount", err)
		}
		if quantity == 0 {
			continue
		}
		entryPrice, err := strconv.ParseFloat(risk.EntryPrice, 64)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodePositionFetch, "failed to parse entry price", err)
		}
		unrealized, err := strconv.ParseFloat(risk.UnRealizedProfit, 64)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodePositionFetch, "failed to parse unrealized profit", err)
		}
		leverage, err := strconv.ParseFloat(risk.Leverage, 64)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodePositionFetch, "failed to parse leverage", err)
		}
		positions = append(positions, Position{
			Symbol:        risk.Symbol,
			Quantity:      quantity,
			EntryPrice:    entryPrice,
			UnrealizedPnL: unrealized,
			Leverage:      leverage,
		})
	}
	return positions, nil
}

func (e *BinanceExchange) SetLeverage(ctx context.Context, symbol string, leverage int) error {
	_, err := e.client.NewChangeLeverageService().
		Symbol(symbol).
		Leverage(leverage).
		Do(ctx)
	if err != nil {
		return errors.Wrap(errors.ErrCodeLeverageSetFailed, "failed to set leverage", err)
	}
	return nil
}

func (e *BinanceExchange) PlaceMarketOrder(ctx context.Context, symbol string, side types.SignalType, quantity float64) (OrderResult, error) {
	orderSide := futures.SideTypeBuy
	if side == types.SignalTypeSell {
		orderSide = futures.SideTypeSell
	}

	response, err := e.client.NewCreateOrderService().
		Symbol(symbol).
		Side(orderSide).
		Type(futures.OrderTypeMarket).
		Quantity(strconv.FormatFloat(quantity, 'f', quantityPrecision, 64)).
		Do(ctx)
	if err != nil {
		return OrderResult{}, errors.Wrap(errors.ErrCodeOrderFailed, "failed to place market order", err)
	}
	return OrderResult{
		OrderID:  response.OrderID,
		Symbol:   response.Symbol,
		Side:     side,
		Quantity: quantity,
		Status:   string(response.Status),
	}, nil
}
