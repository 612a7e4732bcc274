package datasource

import (
	"encoding/csv"
	"io"
	"os"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/rxtech-lab/argo-scalper/internal/types"
	"github.com/rxtech-lab/argo-scalper/pkg/errors"
)

// requiredColumns are the raw bar columns an input file must carry. Order
// does not matter and extra columns pass through unread.
var requiredColumns = []string{"open", "high", "low", "close", "volume", "timestamp"}

// CSVDataSource loads a bar series from a CSV file with named columns.
type CSVDataSource struct {
	FilePath string
}

// NewCSVDataSource creates a datasource over the CSV file at filePath.
func NewCSVDataSource(filePath string) *CSVDataSource {
	return &CSVDataSource{FilePath: filePath}
}

// Load implements DataSource. A missing required column fails fast with a
// data-schema error before any row is parsed.
func (s *CSVDataSource) Load() ([]types.MarketData, error) {
	file, err := os.Open(s.FilePath)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeDataReadFailed, "failed to open bar file", err)
	}
	defer file.Close()

	if err := checkSchema(file); err != nil {
		return nil, err
	}

	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return nil, errors.Wrap(errors.ErrCodeDataReadFailed, "failed to rewind bar file", err)
	}

	var data []types.MarketData
	if err := gocsv.UnmarshalFile(file, &data); err != nil {
		return nil, errors.Wrap(errors.ErrCodeDataReadFailed, "failed to parse bar file", err)
	}

	return data, nil
}

func checkSchema(file *os.File) error {
	header, err := csv.NewReader(file).Read()
	if err != nil {
		return errors.Wrap(errors.ErrCodeDataSchemaError, "failed to read bar file header", err)
	}

	present := make(map[string]bool, len(header))
	for _, name := range header {
		present[strings.ToLower(strings.TrimSpace(name))] = true
	}

	for _, column := range requiredColumns {
		if !present[column] {
			return errors.Newf(errors.ErrCodeDataSchemaError, "bar file is missing required column %q", column)
		}
	}

	return nil
}
