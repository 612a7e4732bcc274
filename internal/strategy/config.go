package strategy

// Config holds the fully resolved strategy parameters. Every field has its
// default applied when the YAML document is parsed; components read resolved
// fields only and never re-consult the raw configuration.
type Config struct {
	// EMAFast and EMASlow are the EMA smoothing spans used for crossover
	// detection.
	EMAFast int `yaml:"ema_fast" json:"ema_fast" jsonschema:"title=EMA Fast,minimum=1"`
	EMASlow int `yaml:"ema_slow" json:"ema_slow" jsonschema:"title=EMA Slow,minimum=1"`
	// MinATR suppresses signals on bars with less volatility than this.
	MinATR float64 `yaml:"min_atr" json:"min_atr"`
	// TradeStartHour/TradeEndHour bound the UTC hours [start, end) in which
	// signals are allowed.
	TradeStartHour int `yaml:"trade_start_hour" json:"trade_start_hour" jsonschema:"minimum=0,maximum=24"`
	TradeEndHour   int `yaml:"trade_end_hour" json:"trade_end_hour" jsonschema:"minimum=0,maximum=24"`
	// RSIBuy/RSISell are the momentum confirmation thresholds.
	RSIBuy  float64 `yaml:"rsi_buy" json:"rsi_buy"`
	RSISell float64 `yaml:"rsi_sell" json:"rsi_sell"`
	// UseVWAPConfluence suppresses longs below VWAP and shorts above it.
	UseVWAPConfluence bool `yaml:"use_vwap_confluence" json:"use_vwap_confluence"`
	// SLATRMult and TPATRMult size the stop-loss and take-profit distance in
	// ATR multiples at entry.
	SLATRMult float64 `yaml:"sl_atr_mult" json:"sl_atr_mult" jsonschema:"minimum=0"`
	TPATRMult float64 `yaml:"tp_atr_mult" json:"tp_atr_mult" jsonschema:"minimum=0"`
}

// DefaultConfig returns the documented strategy defaults.
func DefaultConfig() Config {
	return Config{
		EMAFast:           5,
		EMASlow:           20,
		MinATR:            0,
		TradeStartHour:    0,
		TradeEndHour:      24,
		RSIBuy:            55,
		RSISell:           45,
		UseVWAPConfluence: true,
		SLATRMult:         1.2,
		TPATRMult:         2.0,
	}
}

// UnmarshalYAML resolves defaults once at load time: absent keys take their
// documented defaults, present keys win even when set to a zero value.
func (c *Config) UnmarshalYAML(unmarshal func(interface{}) error) error {
	type rawConfig struct {
		EMAFast           *int     `yaml:"ema_fast"`
		EMASlow           *int     `yaml:"ema_slow"`
		MinATR            *float64 `yaml:"min_atr"`
		TradeStartHour    *int     `yaml:"trade_start_hour"`
		TradeEndHour      *int     `yaml:"trade_end_hour"`
		RSIBuy            *float64 `yaml:"rsi_buy"`
		RSISell           *float64 `yaml:"rsi_sell"`
		UseVWAPConfluence *bool    `yaml:"use_vwap_confluence"`
		SLATRMult         *float64 `yaml:"sl_atr_mult"`
		TPATRMult         *float64 `yaml:"tp_atr_mult"`
	}

	var raw rawConfig
	if err := unmarshal(&raw); err != nil {
		return err
	}

	*c = DefaultConfig()

	if raw.EMAFast != nil {
		c.EMAFast = *raw.EMAFast
	}

	if raw.EMASlow != nil {
		c.EMASlow = *raw.EMASlow
	}

	if raw.MinATR != nil {
		c.MinATR = *raw.MinATR
	}

	if raw.TradeStartHour != nil {
		c.TradeStartHour = *raw.TradeStartHour
	}

	if raw.TradeEndHour != nil {
		c.TradeEndHour = *raw.TradeEndHour
	}

	if raw.RSIBuy != nil {
		c.RSIBuy = *raw.RSIBuy
	}

	if raw.RSISell != nil {
		c.RSISell = *raw.RSISell
	}

	if raw.UseVWAPConfluence != nil {
		c.UseVWAPConfluence = *raw.UseVWAPConfluence
	}

	if raw.SLATRMult != nil {
		c.SLATRMult = *raw.SLATRMult
	}

	if raw.TPATRMult != nil {
		c.TPATRMult = *raw.TPATRMult
	}

	return nil
}

// TradingConfig holds the resolved execution parameters shared by the trade
// simulator and the live execution boundary. order_size, leverage,
// stop_loss_pct and take_profit_pct have no defaults and must be present.
type TradingConfig struct {
	// Slippage is the fractional fill adjustment, always applied against the
	// trader.
	Slippage float64 `yaml:"slippage" json:"slippage" jsonschema:"minimum=0"`
	// OrderSize is the fraction of the current balance committed per trade.
	OrderSize float64 `yaml:"order_size" json:"order_size" validate:"required,gt=0" jsonschema:"minimum=0"`
	// Fee is the rate charged on the notional of each leg.
	Fee float64 `yaml:"fee" json:"fee" jsonschema:"minimum=0"`
	// Leverage multiplies notional exposure, pnl and fees.
	Leverage float64 `yaml:"leverage" json:"leverage" validate:"required,gt=0" jsonschema:"minimum=0"`
	// StopLossPct and TakeProfitPct are consumed by the live execution
	// boundary; the simulator uses the ATR multiples instead.
	StopLossPct   float64 `yaml:"stop_loss_pct" json:"stop_loss_pct" validate:"required,gt=0"`
	TakeProfitPct float64 `yaml:"take_profit_pct" json:"take_profit_pct" validate:"required,gt=0"`
}

// defaultFeeRate applies when trading.fee is unset.
const defaultFeeRate = 0.0004

// DefaultTradingConfig returns the defaults for the optional execution
// parameters; required fields stay zero and fail validation until set.
func DefaultTradingConfig() TradingConfig {
	return TradingConfig{
		Slippage: 0,
		Fee:      defaultFeeRate,
	}
}

// UnmarshalYAML resolves the optional fee/slippage defaults while keeping an
// explicit zero fee distinguishable from an absent one.
func (c *TradingConfig) UnmarshalYAML(unmarshal func(interface{}) error) error {
	type rawConfig struct {
		Slippage      *float64 `yaml:"slippage"`
		OrderSize     float64  `yaml:"order_size"`
		Fee           *float64 `yaml:"fee"`
		Leverage      float64  `yaml:"leverage"`
		StopLossPct   float64  `yaml:"stop_loss_pct"`
		TakeProfitPct float64  `yaml:"take_profit_pct"`
	}

	var raw rawConfig
	if err := unmarshal(&raw); err != nil {
		return err
	}

	*c = DefaultTradingConfig()
	c.OrderSize = raw.OrderSize
	c.Leverage = raw.Leverage
	c.StopLossPct = raw.StopLossPct
	c.TakeProfitPct = raw.TakeProfitPct

	if raw.Slippage != nil {
		c.Slippage = *raw.Slippage
	}

	if raw.Fee != nil {
		c.Fee = *raw.Fee
	}

	return nil
}
