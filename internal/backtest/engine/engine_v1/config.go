package engine

import (
	"encoding/json"
	"reflect"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/invopop/jsonschema"
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-scalper/internal/strategy"
	"github.com/rxtech-lab/argo-scalper/pkg/errors"
	"gopkg.in/yaml.v3"
)

// BacktestConfig holds run-level settings that sit outside the strategy
// itself: the starting balance and an optional time window that clips the
// enriched bar series before signals are generated.
type BacktestConfig struct {
	InitialBalance float64                     `yaml:"initial_balance" json:"initial_balance" validate:"required,gt=0"`
	StartTime      optional.Option[time.Time] `yaml:"start_time" json:"start_time,omitempty"`
	EndTime        optional.Option[time.Time] `yaml:"end_time" json:"end_time,omitempty"`
}

func (c *BacktestConfig) UnmarshalYAML(value *yaml.Node) error {
	type raw struct {
		InitialBalance float64    `yaml:"initial_balance"`
		StartTime      *time.Time `yaml:"start_time"`
		EndTime        *time.Time `yaml:"end_time"`
	}
	var r raw
	if err := value.Decode(&r); err != nil {
		return err
	}
	c.InitialBalance = r.InitialBalance
	if r.StartTime != nil {
		c.StartTime = optional.Some(r.StartTime.UTC())
	} else {
		c.StartTime = optional.None[time.Time]()
	}
	if r.EndTime != nil {
		c.EndTime = optional.Some(r.EndTime.UTC())
	} else {
		c.EndTime = optional.None[time.Time]()
	}
	return nil
}

// Config is the full backtest configuration. Defaults are resolved once
// during parsing; after ParseConfig returns, every field holds its final
// value and the run never consults defaults again.
type Config struct {
	Strategy strategy.Config        `yaml:"strategy" json:"strategy"`
	Trading  strategy.TradingConfig `yaml:"trading" json:"trading"`
	Backtest BacktestConfig         `yaml:"backtest" json:"backtest"`
}

func DefaultConfig() Config {
	return Config{
		Strategy: strategy.DefaultConfig(),
		Trading:  strategy.DefaultTradingConfig(),
	}
}

// ParseConfig decodes a YAML document into a fully resolved Config and
// validates it. Sections omitted from the document keep their defaults.
func ParseConfig(content string) (Config, error) {
	config := DefaultConfig()
	if err := yaml.Unmarshal([]byte(content), &config); err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeBacktestConfigError, "failed to parse backtest config", err)
	}
	if err := config.Validate(); err != nil {
		return Config{}, err
	}
	return config, nil
}

// Validate enforces the constraints the struct tags carry plus the range
// checks the tags cannot express.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid backtest configuration", err)
	}
	if c.Strategy.EMAFast <= 0 || c.Strategy.EMASlow <= 0 {
		return errors.New(errors.ErrCodeInvalidConfiguration, "ema periods must be positive")
	}
	if c.Strategy.TradeStartHour < 0 || c.Strategy.TradeStartHour > 23 ||
		c.Strategy.TradeEndHour < 1 || c.Strategy.TradeEndHour > 24 {
		return errors.New(errors.ErrCodeInvalidConfiguration, "trading hours out of range")
	}
	if c.Backtest.StartTime.IsSome() && c.Backtest.EndTime.IsSome() {
		if c.Backtest.EndTime.Unwrap().Before(c.Backtest.StartTime.Unwrap()) {
			return errors.New(errors.ErrCodeInvalidConfiguration, "end_time is before start_time")
		}
	}
	return nil
}

// GenerateSchema builds the JSON schema for Config, used by the CLI to
// document the accepted configuration format.
func GenerateSchema() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		ExpandedStruct: true,
		Mapper: func(t reflect.Type) *jsonschema.Schema {
			if t.String() == "optional.Option[time.Time]" {
				return &jsonschema.Schema{
					Type:   "string",
					Format: "date-time",
				}
			}
			return nil
		},
	}
	return reflector.Reflect(&Config{})
}

// GenerateSchemaJSON renders the schema as indented JSON.
func GenerateSchemaJSON() (string, error) {
	schema := GenerateSchema()
	out, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeBacktestConfigError, "failed to marshal config schema", err)
	}
	return string(out), nil
}
