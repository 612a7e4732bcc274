package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/suite"
)

type ErrorTestSuite struct {
	suite.Suite
}

func TestErrorSuite(t *testing.T) {
	suite.Run(t, new(ErrorTestSuite))
}

func (suite *ErrorTestSuite) TestNewError() {
	err := New(ErrCodeInvalidParameter, "invalid parameter")
	suite.NotNil(err)
	suite.Equal(ErrCodeInvalidParameter, err.Code)
	suite.Equal("invalid parameter", err.Message)
	suite.Nil(err.Cause)
}

func (suite *ErrorTestSuite) TestNewfError() {
	err := Newf(ErrCodeDataSchemaError, "missing column %s", "close")
	suite.NotNil(err)
	suite.Equal(ErrCodeDataSchemaError, err.Code)
	suite.Equal("missing column close", err.Message)
}

func (suite *ErrorTestSuite) TestWrapError() {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeDataReadFailed, "failed to read bars", cause)
	suite.NotNil(err)
	suite.Equal(ErrCodeDataReadFailed, err.Code)
	suite.Equal(cause, err.Cause)
}

func (suite *ErrorTestSuite) TestWrapfError() {
	cause := errors.New("underlying error")
	err := Wrapf(ErrCodeSweepRunFailed, cause, "run %d failed", 3)
	suite.Equal("run 3 failed", err.Message)
	suite.Equal(cause, err.Cause)
}

func (suite *ErrorTestSuite) TestErrorString() {
	err := New(ErrCodeInvalidParameter, "invalid parameter")
	suite.Equal("[100] invalid parameter", err.Error())
}

func (suite *ErrorTestSuite) TestErrorStringWithCause() {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeDataNotFound, "data not found", cause)
	suite.Equal("[200] data not found: underlying error", err.Error())
}

func (suite *ErrorTestSuite) TestUnwrap() {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeDataNotFound, "data not found", cause)
	suite.Equal(cause, err.Unwrap())
	suite.True(Is(err, cause))
}

func (suite *ErrorTestSuite) TestGetCode() {
	err := New(ErrCodeBacktestStateError, "backtest has not been run")
	suite.Equal(ErrCodeBacktestStateError, GetCode(err))
	suite.Equal(ErrCodeUnknown, GetCode(errors.New("plain")))
}

func (suite *ErrorTestSuite) TestHasCodeThroughChain() {
	inner := New(ErrCodeDataSchemaError, "missing column timestamp")
	wrapped := fmt.Errorf("loading data: %w", inner)
	suite.True(HasCode(wrapped, ErrCodeDataSchemaError))
	suite.False(HasCode(wrapped, ErrCodeDataReadFailed))
}

func (suite *ErrorTestSuite) TestInsufficientDataError() {
	err := NewInsufficientDataError(20, 12, "need 20 bars to clear warm-up, have 12")
	suite.Equal(20, err.Required)
	suite.Equal(12, err.Actual)
	suite.True(IsInsufficientDataError(fmt.Errorf("pipeline: %w", err)))
	suite.False(IsInsufficientDataError(errors.New("plain")))
}
