// Package sweep runs grid searches over strategy parameters, replaying the
// same bar series through one backtest engine per parameter combination and
// collecting per-run performance rows.
package sweep

import (
	"fmt"
	"os"
	"runtime"
	"sync"

	"github.com/gocarina/gocsv"
	engine "github.com/rxtech-lab/argo-scalper/internal/backtest/engine/engine_v1"
	"github.com/rxtech-lab/argo-scalper/internal/backtest/engine/engine_v1/datasource"
	"github.com/rxtech-lab/argo-scalper/internal/logger"
	"github.com/rxtech-lab/argo-scalper/internal/strategy"
	"github.com/rxtech-lab/argo-scalper/internal/types"
	"github.com/rxtech-lab/argo-scalper/pkg/errors"
	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"
)

// Grid enumerates the candidate values per tunable parameter. The cartesian
// product of all dimensions is swept.
type Grid struct {
	EMAFast   []int     `yaml:"ema_fast"`
	EMASlow   []int     `yaml:"ema_slow"`
	MinATR    []float64 `yaml:"min_atr"`
	SLATRMult []float64 `yaml:"sl_atr_mult"`
	TPATRMult []float64 `yaml:"tp_atr_mult"`
	RSIBuy    []float64 `yaml:"rsi_buy"`
	RSISell   []float64 `yaml:"rsi_sell"`
	OrderSize []float64 `yaml:"order_size"`
}

// DefaultGrid is the standard scalping search space: 4374 combinations.
func DefaultGrid() Grid {
	return Grid{
		EMAFast:   []int{7, 9, 12},
		EMASlow:   []int{20, 26, 30},
		MinATR:    []float64{1.0, 1.5, 2.0},
		SLATRMult: []float64{1.0, 1.2, 1.5},
		TPATRMult: []float64{1.5, 2.0, 2.5},
		RSIBuy:    []float64{50, 55, 60},
		RSISell:   []float64{40, 45, 50},
		OrderSize: []float64{0.02, 0.05},
	}
}

// Params is a single point in the grid.
type Params struct {
	EMAFast   int     `csv:"ema_fast"`
	EMASlow   int     `csv:"ema_slow"`
	MinATR    float64 `csv:"min_atr"`
	SLATRMult float64 `csv:"sl_atr_mult"`
	TPATRMult float64 `csv:"tp_atr_mult"`
	RSIBuy    float64 `csv:"rsi_buy"`
	RSISell   float64 `csv:"rsi_sell"`
	OrderSize float64 `csv:"order_size"`
}

// Size returns the number of combinations the grid spans.
func (g Grid) Size() int {
	return len(g.EMAFast) * len(g.EMASlow) * len(g.MinATR) *
		len(g.SLATRMult) * len(g.TPATRMult) *
		len(g.RSIBuy) * len(g.RSISell) * len(g.OrderSize)
}

// Combinations expands the grid into the full cartesian product, with the
// last dimension varying fastest.
func (g Grid) Combinations() []Params {
	combos := make([]Params, 0, g.Size())
	for _, emaFast := range g.EMAFast {
		for _, emaSlow := range g.EMASlow {
			for _, minATR := range g.MinATR {
				for _, slMult := range g.SLATRMult {
					for _, tpMult := range g.TPATRMult {
						for _, rsiBuy := range g.RSIBuy {
							for _, rsiSell := range g.RSISell {
								for _, orderSize := range g.OrderSize {
									combos = append(combos, Params{
										EMAFast:   emaFast,
										EMASlow:   emaSlow,
										MinATR:    minATR,
										SLATRMult: slMult,
										TPATRMult: tpMult,
										RSIBuy:    rsiBuy,
										RSISell:   rsiSell,
										OrderSize: orderSize,
									})
								}
							}
						}
					}
				}
			}
		}
	}
	return combos
}

// Result is one sweep row: the parameter point plus the run's headline
// statistics.
type Result struct {
	Params
	FinalBalance float64 `csv:"final_balance"`
	WinRate      float64 `csv:"win_rate"`
	Sharpe       float64 `csv:"sharpe"`
	NumTrades    int     `csv:"num_trades"`
}

// Runner sweeps a grid against a fixed bar series and base configuration.
type Runner struct {
	baseConfig   engine.Config
	data         []types.MarketData
	workers      int
	log          *logger.Logger
	showProgress bool
}

func NewRunner(baseConfig engine.Config, data []types.MarketData, log *logger.Logger) *Runner {
	return &Runner{
		baseConfig: baseConfig,
		data:       data,
		workers:    runtime.NumCPU(),
		log:        log,
	}
}

// SetWorkers overrides the worker count. Values below one are ignored.
func (r *Runner) SetWorkers(n int) {
	if n >= 1 {
		r.workers = n
	}
}

func (r *Runner) SetShowProgress(show bool) {
	r.showProgress = show
}

// apply projects a grid point onto a copy of the base configuration.
func (r *Runner) apply(p Params) engine.Config {
	config := r.baseConfig
	config.Strategy.EMAFast = p.EMAFast
	config.Strategy.EMASlow = p.EMASlow
	config.Strategy.MinATR = p.MinATR
	config.Strategy.SLATRMult = p.SLATRMult
	config.Strategy.TPATRMult = p.TPATRMult
	config.Strategy.RSIBuy = p.RSIBuy
	config.Strategy.RSISell = p.RSISell
	config.Trading.OrderSize = p.OrderSize
	return config
}

// Run executes every grid combination and returns one result per successful
// run, in grid order. A failing or panicking run is logged and skipped; it
// never takes the sweep down with it.
func (r *Runner) Run(grid Grid) ([]Result, error) {
	combos := grid.Combinations()
	if len(combos) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidParameter, "parameter grid is empty")
	}

	type slot struct {
		result Result
		ok     bool
	}
	slots := make([]slot, len(combos))
	jobs := make(chan int)

	var bar *progressbar.ProgressBar
	if r.showProgress {
		bar = progressbar.Default(int64(len(combos)), "sweep")
	}

	var wg sync.WaitGroup
	for w := 0; w < r.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				result, err := r.runOne(combos[idx])
				if err != nil {
					r.log.Warn("sweep run failed",
						zap.Int("combination", idx),
						zap.Error(err),
					)
				} else {
					slots[idx] = slot{result: result, ok: true}
				}
				if bar != nil {
					_ = bar.Add(1)
				}
			}
		}()
	}
	for idx := range combos {
		jobs <- idx
	}
	close(jobs)
	wg.Wait()

	results := make([]Result, 0, len(combos))
	for _, s := range slots {
		if s.ok {
			results = append(results, s.result)
		}
	}
	if len(results) == 0 {
		return nil, errors.New(errors.ErrCodeSweepRunFailed, "every sweep run failed")
	}
	return results, nil
}

// runOne executes a single combination, converting a panic inside the engine
// or strategy into an error so the worker survives.
func (r *Runner) runOne(p Params) (result Result, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = errors.Newf(errors.ErrCodeSweepRunFailed, "sweep run panicked: %v", rec)
		}
	}()

	config := r.apply(p)
	eng := engine.NewBacktestEngineV1()
	if err := eng.InitializeFromConfig(config, logger.NewNopLogger()); err != nil {
		return Result{}, errors.Wrap(errors.ErrCodeSweepRunFailed, "engine initialization failed", err)
	}
	if err := eng.LoadStrategy(strategy.NewScalpingStrategy(config.Strategy, config.Trading)); err != nil {
		return Result{}, err
	}
	if err := eng.SetDataSource(datasource.NewInMemoryDataSource(r.data)); err != nil {
		return Result{}, err
	}
	if err := eng.Run(); err != nil {
		return Result{}, errors.Wrap(errors.ErrCodeSweepRunFailed, "backtest run failed", err)
	}
	summary, err := eng.Summary()
	if err != nil {
		return Result{}, err
	}
	return Result{
		Params:       p,
		FinalBalance: summary.FinalBalance,
		WinRate:      summary.WinRate,
		Sharpe:       summary.SharpeRatio,
		NumTrades:    summary.TotalTrades,
	}, nil
}

// WriteResults exports the sweep rows as CSV, one row per combination.
func WriteResults(path string, results []Result) error {
	file, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeSweepExportFailed, fmt.Sprintf("failed to create %s", path), err)
	}
	defer file.Close()

	if err := gocsv.MarshalFile(&results, file); err != nil {
		return errors.Wrap(errors.ErrCodeSweepExportFailed, "failed to write sweep results", err)
	}
	return nil
}
