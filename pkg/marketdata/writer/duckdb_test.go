package writer

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/rxtech-lab/argo-scalper/internal/types"
	"github.com/stretchr/testify/suite"
)

type DuckDBWriterTestSuite struct {
	suite.Suite
	path   string
	writer *DuckDBWriter
}

func TestDuckDBWriterSuite(t *testing.T) {
	suite.Run(t, new(DuckDBWriterTestSuite))
}

func (s *DuckDBWriterTestSuite) SetupTest() {
	s.path = filepath.Join(s.T().TempDir(), "BTCUSDT_1m.parquet")
	s.writer = NewDuckDBWriter(s.path)
}

func (s *DuckDBWriterTestSuite) TearDownTest() {
	s.writer.Close()
}

func (s *DuckDBWriterTestSuite) TestWriteAndExport() {
	s.Require().NoError(s.writer.Initialize())
	for i := 0; i < 5; i++ {
		s.Require().NoError(s.writer.Write(types.MarketData{
			Open:      100 + float64(i),
			High:      101 + float64(i),
			Low:       99 + float64(i),
			Close:     100.5 + float64(i),
			Volume:    1000,
			Timestamp: 1700000000000 + int64(i)*60000,
		}))
	}
	path, err := s.writer.Finalize()
	s.Require().NoError(err)
	s.Equal(s.path, path)

	_, statErr := os.Stat(s.path)
	s.Require().NoError(statErr)

	// Read the parquet file back to verify the export.
	db, err := sql.Open("duckdb", ":memory:")
	s.Require().NoError(err)
	defer db.Close()

	var count int
	row := db.QueryRow(fmt.Sprintf(`SELECT COUNT(*) FROM read_parquet('%s')`, s.path))
	s.Require().NoError(row.Scan(&count))
	s.Equal(5, count)

	var timestamp int64
	row = db.QueryRow(fmt.Sprintf(`SELECT timestamp FROM read_parquet('%s') ORDER BY timestamp LIMIT 1`, s.path))
	s.Require().NoError(row.Scan(&timestamp))
	s.Equal(int64(1700000000000), timestamp)
}

func (s *DuckDBWriterTestSuite) TestWriteBeforeInitialize() {
	s.Require().Error(s.writer.Write(types.MarketData{}))
}

func (s *DuckDBWriterTestSuite) TestFinalizeBeforeInitialize() {
	_, err := s.writer.Finalize()
	s.Require().Error(err)
}

func (s *DuckDBWriterTestSuite) TestCloseWithoutFinalizeDiscardsRows() {
	s.Require().NoError(s.writer.Initialize())
	s.Require().NoError(s.writer.Write(types.MarketData{Timestamp: 1700000000000}))
	s.Require().NoError(s.writer.Close())

	_, statErr := os.Stat(s.path)
	s.True(os.IsNotExist(statErr), "no output file should exist without Finalize")
}
