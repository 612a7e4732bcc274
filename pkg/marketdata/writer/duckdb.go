package writer

import (
	"database/sql"
	"fmt"

	_ "github.com/marcboeker/go-duckdb"
	"github.com/rxtech-lab/argo-scalper/internal/types"
	"github.com/rxtech-lab/argo-scalper/pkg/errors"
)

// DuckDBWriter buffers bars in an in-memory DuckDB table and exports them as
// a Parquet file on Finalize. Parquet keeps large minute-level downloads
// compact compared to CSV.
type DuckDBWriter struct {
	db         *sql.DB
	tx         *sql.Tx
	stmt       *sql.Stmt
	outputPath string
}

func NewDuckDBWriter(outputPath string) *DuckDBWriter {
	return &DuckDBWriter{outputPath: outputPath}
}

func (w *DuckDBWriter) Initialize() (err error) {
	w.db, err = sql.Open("duckdb", ":memory:")
	if err != nil {
		return errors.Wrap(errors.ErrCodeMarketDataWriteFailed, "failed to open duckdb connection", err)
	}

	_, err = w.db.Exec(`
		CREATE TABLE IF NOT EXISTS market_data (
			open DOUBLE,
			high DOUBLE,
			low DOUBLE,
			close DOUBLE,
			volume DOUBLE,
			timestamp BIGINT
		)
	`)
	if err != nil {
		w.db.Close()
		return errors.Wrap(errors.ErrCodeMarketDataWriteFailed, "failed to create market_data table", err)
	}

	w.tx, err = w.db.Begin()
	if err != nil {
		w.db.Close()
		return errors.Wrap(errors.ErrCodeMarketDataWriteFailed, "failed to begin transaction", err)
	}

	w.stmt, err = w.tx.Prepare(`
		INSERT INTO market_data (open, high, low, close, volume, timestamp)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		w.tx.Rollback()
		w.db.Close()
		return errors.Wrap(errors.ErrCodeMarketDataWriteFailed, "failed to prepare insert statement", err)
	}
	return nil
}

func (w *DuckDBWriter) Write(data types.MarketData) error {
	if w.stmt == nil {
		return errors.New(errors.ErrCodeMarketDataWriteFailed, "writer is not initialized")
	}
	_, err := w.stmt.Exec(
		data.Open,
		data.High,
		data.Low,
		data.Close,
		data.Volume,
		data.Timestamp,
	)
	if err != nil {
		return errors.Wrap(errors.ErrCodeMarketDataWriteFailed, "failed to insert bar", err)
	}
	return nil
}

// Finalize commits the buffered rows and exports them to Parquet.
func (w *DuckDBWriter) Finalize() (string, error) {
	if w.tx == nil {
		return "", errors.New(errors.ErrCodeMarketDataWriteFailed, "writer is not initialized")
	}
	if err := w.tx.Commit(); err != nil {
		w.tx.Rollback()
		return "", errors.Wrap(errors.ErrCodeMarketDataWriteFailed, "failed to commit transaction", err)
	}
	w.tx = nil

	_, err := w.db.Exec(fmt.Sprintf(`COPY market_data TO '%s' (FORMAT PARQUET)`, w.outputPath))
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeMarketDataWriteFailed, "failed to export to parquet", err)
	}
	return w.outputPath, nil
}

func (w *DuckDBWriter) Close() error {
	var firstErr error
	if w.stmt != nil {
		if err := w.stmt.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		w.stmt = nil
	}
	if w.tx != nil {
		// Finalize was never reached; discard the buffered rows.
		_ = w.tx.Rollback()
		w.tx = nil
	}
	if w.db != nil {
		if err := w.db.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		w.db = nil
	}
	if firstErr != nil {
		return errors.Wrap(errors.ErrCodeMarketDataWriteFailed, "failed to close writer", firstErr)
	}
	return nil
}

func (w *DuckDBWriter) OutputPath() string {
	return w.outputPath
}
