package writer

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/rxtech-lab/argo-scalper/internal/types"
	"github.com/rxtech-lab/argo-scalper/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type CSVWriterTestSuite struct {
	suite.Suite

	writer *CSVWriter
}

func TestCSVWriterSuite(t *testing.T) {
	suite.Run(t, new(CSVWriterTestSuite))
}

func (suite *CSVWriterTestSuite) SetupTest() {
	w, err := NewCSVWriter(suite.T().TempDir())
	suite.Require().NoError(err)
	suite.writer = w
}

func (suite *CSVWriterTestSuite) readCSV(name string) [][]string {
	file, err := os.Open(filepath.Join(suite.writer.RunDir(), name))
	suite.Require().NoError(err)

	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	suite.Require().NoError(err)

	return records
}

func (suite *CSVWriterTestSuite) TestWriteTrades() {
	trades := []types.Trade{
		{
			Signal:     types.SignalTypeBuy,
			EntryPrice: 100,
			ExitPrice:  110,
			Qty:        1,
			PnL:        9.79,
			RawPnL:     10,
			Fee:        0.21,
			ExitIndex:  8,
			Reason:     types.ExitReasonTakeProfit,
		},
		{
			Signal: types.SignalTypeSell,
			Reason: types.ExitReasonTimeout,
		},
	}

	suite.NoError(suite.writer.WriteTrades(trades))

	records := suite.readCSV("trades.csv")
	suite.Len(records, 3)
	suite.Equal([]string{
		"signal", "entry_price", "exit_price", "qty",
		"pnl", "raw_pnl", "fee", "exit_idx", "reason",
	}, records[0])
	suite.Equal("BUY", records[1][0])
	suite.Equal("8", records[1][7])
	suite.Equal("tp", records[1][8])
	suite.Equal("timeout", records[2][8])
}

func (suite *CSVWriterTestSuite) TestWriteEquityCurve() {
	suite.NoError(suite.writer.WriteEquityCurve([]float64{10000, 10010, 9990}))

	records := suite.readCSV("equity_curve.csv")
	suite.Len(records, 4)
	suite.Equal([]string{"equity"}, records[0])
	suite.Equal("10000.000000", records[1][0])
}

func (suite *CSVWriterTestSuite) TestWriteSummary() {
	suite.NoError(suite.writer.WriteSummary(types.Summary{InitialBalance: 10000}))

	_, err := os.Stat(filepath.Join(suite.writer.RunDir(), "stats.yaml"))
	suite.NoError(err)
}

func (suite *CSVWriterTestSuite) TestNewCSVWriterBadBaseDir() {
	base := filepath.Join(suite.T().TempDir(), "occupied")
	suite.Require().NoError(os.WriteFile(base, []byte("not a directory"), 0644))

	_, err := NewCSVWriter(base)
	suite.Require().Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeBacktestWriteFailed))
}

func (suite *CSVWriterTestSuite) TestRunDirsAreUnique() {
	base := suite.T().TempDir()

	first, err := NewCSVWriter(base)
	suite.Require().NoError(err)

	second, err := NewCSVWriter(base)
	suite.Require().NoError(err)

	suite.NotEqual(first.RunDir(), second.RunDir())
}
