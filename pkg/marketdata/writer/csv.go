package writer

import (
	"encoding/csv"
	"os"
	"strconv"

	"github.com/rxtech-lab/argo-scalper/internal/types"
	"github.com/rxtech-lab/argo-scalper/pkg/errors"
)

// csvColumns matches the schema the backtest CSV datasource expects.
var csvColumns = []string{"open", "high", "low", "close", "volume", "timestamp"}

// CSVWriter streams bars into a CSV file the backtester can load directly.
type CSVWriter struct {
	outputPath string
	file       *os.File
	writer     *csv.Writer
}

func NewCSVWriter(outputPath string) *CSVWriter {
	return &CSVWriter{outputPath: outputPath}
}

func (w *CSVWriter) Initialize() error {
	file, err := os.Create(w.outputPath)
	if err != nil {
		return errors.Wrap(errors.ErrCodeMarketDataWriteFailed, "failed to create output file", err)
	}
	w.file = file
	w.writer = csv.NewWriter(file)
	if err := w.writer.Write(csvColumns); err != nil {
		file.Close()
		return errors.Wrap(errors.ErrCodeMarketDataWriteFailed, "failed to write header", err)
	}
	return nil
}

func (w *CSVWriter) Write(data types.MarketData) error {
	if w.writer == nil {
		return errors.New(errors.ErrCodeMarketDataWriteFailed, "writer is not initialized")
	}
	record := []string{
		strconv.FormatFloat(data.Open, 'f', -1, 64),
		strconv.FormatFloat(data.High, 'f', -1, 64),
		strconv.FormatFloat(data.Low, 'f', -1, 64),
		strconv.FormatFloat(data.Close, 'f', -1, 64),
		strconv.FormatFloat(data.Volume, 'f', -1, 64),
		strconv.FormatInt(data.Timestamp, 10),
	}
	if err := w.writer.Write(record); err != nil {
		return errors.Wrap(errors.ErrCodeMarketDataWriteFailed, "failed to write record", err)
	}
	return nil
}

func (w *CSVWriter) Finalize() (string, error) {
	if w.writer == nil {
		return "", errors.New(errors.ErrCodeMarketDataWriteFailed, "writer is not initialized")
	}
	w.writer.Flush()
	if err := w.writer.Error(); err != nil {
		return "", errors.Wrap(errors.ErrCodeMarketDataWriteFailed, "failed to flush output", err)
	}
	return w.outputPath, nil
}

func (w *CSVWriter) Close() error {
	if w.file == nil {
		return nil
	}
	err := w.file.Close()
	w.file = nil
	w.writer = nil
	if err != nil {
		return errors.Wrap(errors.ErrCodeMarketDataWriteFailed, "failed to close output file", err)
	}
	return nil
}

func (w *CSVWriter) OutputPath() string {
	return w.outputPath
}
