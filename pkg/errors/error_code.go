package errors

// ErrorCode represents a unique error code for identifying different error types.
type ErrorCode int

const (
	// General errors (1-99)
	ErrCodeUnknown ErrorCode = 1

	// Validation errors (100-199)
	ErrCodeInvalidParameter     ErrorCode = 100
	ErrCodeInvalidConfiguration ErrorCode = 101
	ErrCodeMissingParameter     ErrorCode = 102
	ErrCodeInvalidPeriod        ErrorCode = 103

	// Data/Resource errors (200-299)
	ErrCodeDataNotFound     ErrorCode = 200
	ErrCodeDataSchemaError  ErrorCode = 201
	ErrCodeDataReadFailed   ErrorCode = 202
	ErrCodeInsufficientData ErrorCode = 203

	// Indicator errors (300-399)
	ErrCodeIndicatorCalculation ErrorCode = 300

	// Strategy errors (400-499)
	ErrCodeStrategyConfigError  ErrorCode = 400
	ErrCodeStrategyRuntimeError ErrorCode = 401
	ErrCodeStrategyNotFound     ErrorCode = 402

	// Trading errors (500-599)
	ErrCodeOrderFailed       ErrorCode = 500
	ErrCodeBalanceFetch      ErrorCode = 501
	ErrCodePositionFetch     ErrorCode = 502
	ErrCodeLeverageSetFailed ErrorCode = 503

	// Backtest errors (600-699)
	ErrCodeBacktestConfigError  ErrorCode = 601
	ErrCodeBacktestWriteFailed  ErrorCode = 602
	ErrCodeBacktestStateError   ErrorCode = 603
	ErrCodeSweepRunFailed       ErrorCode = 604
	ErrCodeSweepExportFailed    ErrorCode = 605
	ErrCodeBacktestNoDatasource ErrorCode = 606

	// Market data errors (700-799)
	ErrCodeMarketDataFetchFailed ErrorCode = 700
	ErrCodeMarketDataWriteFailed ErrorCode = 701
	ErrCodeInvalidInterval       ErrorCode = 702
)
