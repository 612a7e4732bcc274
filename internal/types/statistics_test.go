package types

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rxtech-lab/argo-scalper/pkg/errors"
	"github.com/stretchr/testify/suite"
	"gopkg.in/yaml.v3"
)

type StatisticsTestSuite struct {
	suite.Suite
}

func TestStatisticsSuite(t *testing.T) {
	suite.Run(t, new(StatisticsTestSuite))
}

func (suite *StatisticsTestSuite) TestWriteSummary() {
	path := filepath.Join(suite.T().TempDir(), "stats.yaml")
	summary := Summary{
		InitialBalance: 10000,
		FinalBalance:   10123.45,
		TradesExecuted: true,
		TotalTrades:    7,
		WinningTrades:  4,
		LosingTrades:   3,
		WinRate:        4.0 / 7.0,
		TotalFees:      12.5,
		SharpeRatio:    1.3,
		MaxDrawdown:    -42.0,
	}

	suite.NoError(WriteSummary(path, summary))

	data, err := os.ReadFile(path)
	suite.NoError(err)

	var got Summary
	suite.NoError(yaml.Unmarshal(data, &got))
	suite.Equal(summary, got)
}

func (suite *StatisticsTestSuite) TestWriteSummaryBadPath() {
	err := WriteSummary(filepath.Join(suite.T().TempDir(), "missing", "stats.yaml"), Summary{})
	suite.Require().Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeBacktestWriteFailed))
}
