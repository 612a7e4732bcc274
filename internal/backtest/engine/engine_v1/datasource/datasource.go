// Package datasource loads raw bar series for the backtest engine.
package datasource

import "github.com/rxtech-lab/argo-scalper/internal/types"

// DataSource supplies the raw bar series a backtest runs over. Load returns
// the full series in file order; the engine owns ordering assumptions
// (monotonic, non-decreasing timestamps) and never mutates the result.
type DataSource interface {
	Load() ([]types.MarketData, error)
}

// InMemoryDataSource serves an already-materialized series. The sweep driver
// uses it to share one loaded series across many runs.
type InMemoryDataSource struct {
	Data []types.MarketData
}

// NewInMemoryDataSource creates a datasource over data.
func NewInMemoryDataSource(data []types.MarketData) *InMemoryDataSource {
	return &InMemoryDataSource{Data: data}
}

// Load implements DataSource.
func (s *InMemoryDataSource) Load() ([]types.MarketData, error) {
	return s.Data, nil
}
