// Package engine implements the first version of the backtest engine. It
// loads a bar series from a datasource, enriches it once through the
// indicator pipeline, replays it bar by bar through the loaded strategy and
// aggregates the resulting trade ledger into summary statistics.
package engine

import (
	"github.com/rxtech-lab/argo-scalper/internal/backtest/engine"
	"github.com/rxtech-lab/argo-scalper/internal/backtest/engine/engine_v1/datasource"
	"github.com/rxtech-lab/argo-scalper/internal/backtest/engine/engine_v1/writer"
	"github.com/rxtech-lab/argo-scalper/internal/indicator"
	"github.com/rxtech-lab/argo-scalper/internal/logger"
	"github.com/rxtech-lab/argo-scalper/internal/strategy"
	"github.com/rxtech-lab/argo-scalper/internal/types"
	"github.com/rxtech-lab/argo-scalper/pkg/errors"
	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"
)

// BacktestEngineV1 is the reference engine implementation.
type BacktestEngineV1 struct {
	config        Config
	strategy      strategy.Strategy
	dataSource    datasource.DataSource
	resultsFolder string
	pipeline      *indicator.Pipeline
	state         *BacktestState
	log           *logger.Logger
	showProgress  bool
	initialized   bool
	completed     bool
	summary       types.Summary
}

var _ engine.Engine = (*BacktestEngineV1)(nil)

func NewBacktestEngineV1() *BacktestEngineV1 {
	return &BacktestEngineV1{
		log: logger.NewNopLogger(),
	}
}

// Initialize parses and validates the YAML configuration and attaches a
// production logger. Sweep runs bypass this through InitializeFromConfig.
func (b *BacktestEngineV1) Initialize(config string) error {
	parsed, err := ParseConfig(config)
	if err != nil {
		return err
	}
	log, err := logger.NewLogger()
	if err != nil {
		return errors.Wrap(errors.ErrCodeBacktestConfigError, "failed to create logger", err)
	}
	return b.InitializeFromConfig(parsed, log)
}

// InitializeFromConfig accepts an already resolved configuration. The sweep
// runner uses it with a nop logger to keep thousands of runs quiet.
func (b *BacktestEngineV1) InitializeFromConfig(config Config, log *logger.Logger) error {
	if err := config.Validate(); err != nil {
		return err
	}
	pipeline, err := indicator.NewPipeline(config.Strategy.EMAFast, config.Strategy.EMASlow)
	if err != nil {
		return err
	}
	b.config = config
	b.log = log
	b.pipeline = pipeline
	b.state = NewBacktestState(log)
	b.initialized = true
	b.completed = false
	return nil
}

func (b *BacktestEngineV1) LoadStrategy(s strategy.Strategy) error {
	if s == nil {
		return errors.New(errors.ErrCodeStrategyNotFound, "strategy is nil")
	}
	b.strategy = s
	return nil
}

func (b *BacktestEngineV1) SetDataSource(ds datasource.DataSource) error {
	if ds == nil {
		return errors.New(errors.ErrCodeBacktestNoDatasource, "datasource is nil")
	}
	b.dataSource = ds
	return nil
}

func (b *BacktestEngineV1) SetResultsFolder(folder string) error {
	b.resultsFolder = folder
	return nil
}

// SetShowProgress toggles the terminal progress bar. Off by default so tests
// and sweep workers stay quiet.
func (b *BacktestEngineV1) SetShowProgress(show bool) {
	b.showProgress = show
}

// Run executes the backtest over the full data series.
func (b *BacktestEngineV1) Run() error {
	if err := b.preRunCheck(); err != nil {
		return err
	}

	data, err := b.dataSource.Load()
	if err != nil {
		return errors.Wrap(errors.ErrCodeDataReadFailed, "failed to load market data", err)
	}
	// A series shorter than the warm-up, including an empty one, enriches to
	// zero bars and ends in a "no trades" summary rather than an error.
	bars := b.pipeline.Enrich(data)
	b.state.Initialize(b.config.Backtest.InitialBalance)
	if len(bars) == 0 {
		b.log.Warn("no usable bars after indicator warm-up",
			zap.Int("raw_bars", len(data)),
			zap.Int("warmup_bars", b.pipeline.WarmupBars()),
		)
	}

	var bar *progressbar.ProgressBar
	if b.showProgress {
		bar = progressbar.Default(int64(len(bars)), "backtest")
	}
	for i, current := range bars {
		if bar != nil {
			_ = bar.Add(1)
		}
		if !b.withinWindow(current) {
			continue
		}
		signal := b.strategy.GenerateSignal(current)
		if signal == types.SignalTypeNoAction {
			continue
		}
		trade := b.strategy.SimulateTrade(signal, current, i, bars, b.state.Balance())
		b.state.ApplyTrade(trade)
	}

	b.summary = b.state.GetStats()
	b.completed = true

	if b.resultsFolder != "" {
		if err := b.writeResults(); err != nil {
			return err
		}
	}
	b.log.Info("backtest completed",
		zap.Int("total_trades", b.summary.TotalTrades),
		zap.Float64("final_balance", b.summary.FinalBalance),
		zap.Float64("win_rate", b.summary.WinRate),
		zap.Float64("sharpe_ratio", b.summary.SharpeRatio),
		zap.Float64("max_drawdown", b.summary.MaxDrawdown),
	)
	return nil
}

// Summary returns the statistics of the last completed run.
func (b *BacktestEngineV1) Summary() (types.Summary, error) {
	if !b.completed {
		return types.Summary{}, errors.New(errors.ErrCodeBacktestStateError, "backtest has not been run")
	}
	return b.summary, nil
}

// Trades exposes the ledger of the last completed run.
func (b *BacktestEngineV1) Trades() []types.Trade {
	if b.state == nil {
		return nil
	}
	return b.state.Trades()
}

func (b *BacktestEngineV1) preRunCheck() error {
	if !b.initialized {
		return errors.New(errors.ErrCodeBacktestStateError, "engine is not initialized")
	}
	if b.strategy == nil {
		return errors.New(errors.ErrCodeStrategyNotFound, "no strategy loaded")
	}
	if b.dataSource == nil {
		return errors.New(errors.ErrCodeBacktestNoDatasource, "no datasource set")
	}
	return nil
}

// withinWindow clips the run to the configured start/end times, inclusive.
func (b *BacktestEngineV1) withinWindow(bar types.Bar) bool {
	t := bar.Time()
	if b.config.Backtest.StartTime.IsSome() && t.Before(b.config.Backtest.StartTime.Unwrap()) {
		return false
	}
	if b.config.Backtest.EndTime.IsSome() && t.After(b.config.Backtest.EndTime.Unwrap()) {
		return false
	}
	return true
}

func (b *BacktestEngineV1) writeResults() error {
	w, err := writer.NewCSVWriter(b.resultsFolder)
	if err != nil {
		return err
	}
	if err := w.WriteTrades(b.state.Trades()); err != nil {
		return err
	}
	if err := w.WriteEquityCurve(b.state.EquityCurve()); err != nil {
		return err
	}
	if err := w.WriteSummary(b.summary); err != nil {
		return err
	}
	b.log.Info("results written", zap.String("run_dir", w.RunDir()))
	return nil
}
