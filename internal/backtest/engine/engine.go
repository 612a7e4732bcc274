// Package engine defines the backtest engine contract.
package engine

import (
	"github.com/rxtech-lab/argo-scalper/internal/backtest/engine/engine_v1/datasource"
	"github.com/rxtech-lab/argo-scalper/internal/strategy"
	"github.com/rxtech-lab/argo-scalper/internal/types"
)

// Engine sequences a full backtest: load the bar series, enrich it once,
// iterate bars invoking the strategy and applying resolved trades to the
// running balance, then reduce the ledger into summary statistics.
type Engine interface {
	// Initialize parses the YAML configuration and prepares the engine.
	// Validation failures are returned here, before any run starts.
	Initialize(config string) error
	// LoadStrategy sets the strategy the run drives.
	LoadStrategy(s strategy.Strategy) error
	// SetDataSource sets the bar series source.
	SetDataSource(ds datasource.DataSource) error
	// SetResultsFolder enables result export into the given folder. Without
	// it the run only produces an in-memory summary.
	SetResultsFolder(folder string) error
	// Run executes the backtest.
	Run() error
	// Summary returns the statistics of the completed run.
	Summary() (types.Summary, error)
}
