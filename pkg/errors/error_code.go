package errors

// ErrorCode identifies a class of failure. Codes are grouped by hundreds: validation (1xx),
// data and columns (2xx), indicators (3xx), pipeline (6xx), market data files (7xx).
type ErrorCode int

const (
	// General errors (1-99)
	ErrCodeUnknown ErrorCode = 1

	// Validation errors (100-199)
	ErrCodeInvalidParameter     ErrorCode = 100
	ErrCodeInvalidConfiguration ErrorCode = 101
	ErrCodeInvalidInput         ErrorCode = 102
	ErrCodeInvalidIndex         ErrorCode = 103
	ErrCodeInsufficientData     ErrorCode = 106
	ErrCodeInvalidType          ErrorCode = 107
	ErrCodeInvalidPeriod        ErrorCode = 108
	ErrCodeMissingParameter     ErrorCode = 109
	ErrCodeInvalidVersion       ErrorCode = 110
	ErrCodeLengthMismatch       ErrorCode = 111

	// Data/Resource errors (200-299)
	ErrCodeDataNotFound          ErrorCode = 200
	ErrCodeDataSourceUnavailable ErrorCode = 201
	ErrCodeQueryFailed           ErrorCode = 202
	ErrCodeColumnNotFound        ErrorCode = 203
	ErrCodeColumnAlreadyExists   ErrorCode = 204

	// Indicator errors (300-399)
	ErrCodeIndicatorNotFound      ErrorCode = 300
	ErrCodeIndicatorAlreadyExists ErrorCode = 301
	ErrCodeIndicatorCalculation   ErrorCode = 302

	// Pipeline errors (600-699)
	ErrCodePipelineConfigError ErrorCode = 600
	ErrCodePipelineStepFailed  ErrorCode = 601
	ErrCodeVersionMismatch     ErrorCode = 602

	// Market data errors (700-799)
	ErrCodeMarketDataWriteFailed ErrorCode = 701
	ErrCodeMarketDataParseFailed ErrorCode = 702
	ErrCodeInvalidOutputFormat   ErrorCode = 703
)

var codeNames = map[ErrorCode]string{
	ErrCodeUnknown:                "Unknown",
	ErrCodeInvalidParameter:       "InvalidParameter",
	ErrCodeInvalidConfiguration:   "InvalidConfiguration",
	ErrCodeInvalidInput:           "InvalidInput",
	ErrCodeInvalidIndex:           "InvalidIndex",
	ErrCodeInsufficientData:       "InsufficientData",
	ErrCodeInvalidType:            "InvalidType",
	ErrCodeInvalidPeriod:          "InvalidPeriod",
	ErrCodeMissingParameter:       "MissingParameter",
	ErrCodeInvalidVersion:         "InvalidVersion",
	ErrCodeLengthMismatch:         "LengthMismatch",
	ErrCodeDataNotFound:           "DataNotFound",
	ErrCodeDataSourceUnavailable:  "DataSourceUnavailable",
	ErrCodeQueryFailed:            "QueryFailed",
	ErrCodeColumnNotFound:         "ColumnNotFound",
	ErrCodeColumnAlreadyExists:    "ColumnAlreadyExists",
	ErrCodeIndicatorNotFound:      "IndicatorNotFound",
	ErrCodeIndicatorAlreadyExists: "IndicatorAlreadyExists",
	ErrCodeIndicatorCalculation:   "IndicatorCalculation",
	ErrCodePipelineConfigError:    "PipelineConfigError",
	ErrCodePipelineStepFailed:     "PipelineStepFailed",
	ErrCodeVersionMismatch:        "VersionMismatch",
	ErrCodeMarketDataWriteFailed:  "MarketDataWriteFailed",
	ErrCodeMarketDataParseFailed:  "MarketDataParseFailed",
	ErrCodeInvalidOutputFormat:    "InvalidOutputFormat",
}

// String returns the code name, e.g. "ColumnNotFound".
func (c ErrorCode) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}

	return "Unknown"
}
